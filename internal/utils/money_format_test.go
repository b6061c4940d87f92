package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "12.35", FormatAmount(decimal.RequireFromString("12.3456")))
	assert.Equal(t, "7.00", FormatAmount(decimal.NewFromInt(7)))
	assert.Equal(t, "-0.50", FormatAmount(decimal.RequireFromString("-0.5")))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "0.0673", FormatRate(decimal.RequireFromString("0.0673")))
	assert.Equal(t, "0.0400", FormatRate(decimal.RequireFromString("0.04")))
	assert.Equal(t, "6.73%", FormatPercent(decimal.RequireFromString("0.0673")))
}
