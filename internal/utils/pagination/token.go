package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EntryCursor is the position of the last entry of a page in the
// (entry_date DESC, created_at DESC, entry_id DESC) ordering.
type EntryCursor struct {
	EntryDate time.Time
	CreatedAt time.Time
	EntryID   string
}

// EncodeToken creates a base64 encoded token from an entry cursor.
func EncodeToken(c EntryCursor) string {
	tokenStr := strings.Join([]string{c.EntryDate.Format(timeFormat), c.CreatedAt.Format(timeFormat), c.EntryID}, "|")
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into an entry cursor.
func DecodeToken(token string) (EntryCursor, error) {
	var c EntryCursor
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return c, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 || parts[2] == "" {
		return c, fmt.Errorf("invalid pagination token format (split)")
	}

	if c.EntryDate, err = time.Parse(timeFormat, parts[0]); err != nil {
		return c, fmt.Errorf("invalid pagination token format (entry date parse): %w", err)
	}
	if c.CreatedAt, err = time.Parse(timeFormat, parts[1]); err != nil {
		return c, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	c.EntryID = parts[2]
	return c, nil
}

// Before reports whether an entry at (entryDate, createdAt, entryID) sorts after the
// cursor in the newest-first ordering, i.e. belongs to the next page.
func (c EntryCursor) Before(entryDate, createdAt time.Time, entryID string) bool {
	if !entryDate.Equal(c.EntryDate) {
		return entryDate.Before(c.EntryDate)
	}
	if !createdAt.Equal(c.CreatedAt) {
		return createdAt.Before(c.CreatedAt)
	}
	return entryID < c.EntryID
}
