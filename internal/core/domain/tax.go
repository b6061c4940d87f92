package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// bracketStep is the gap between one bracket's upper bound and the next one's lower bound.
var bracketStep = decimal.RequireFromString("0.01")

// TaxBracket is one row of the progressive revenue-tax table. Bounds are inclusive.
type TaxBracket struct {
	Index       int             `json:"index"`
	Lower       decimal.Decimal `json:"lower"`
	Upper       decimal.Decimal `json:"upper"`
	NominalRate decimal.Decimal `json:"nominalRate"` // fraction, 0.073 for 7.3%
	Deduction   decimal.Decimal `json:"deduction"`
}

// DefaultTaxBrackets returns the commerce table of the modeled regime, ascending.
func DefaultTaxBrackets() []TaxBracket {
	row := func(i int, lower, upper, rate, deduction string) TaxBracket {
		return TaxBracket{
			Index:       i,
			Lower:       decimal.RequireFromString(lower),
			Upper:       decimal.RequireFromString(upper),
			NominalRate: decimal.RequireFromString(rate),
			Deduction:   decimal.RequireFromString(deduction),
		}
	}
	return []TaxBracket{
		row(1, "0", "180000.00", "0.04", "0"),
		row(2, "180000.01", "360000.00", "0.073", "5940"),
		row(3, "360000.01", "720000.00", "0.095", "13860"),
		row(4, "720000.01", "1800000.00", "0.107", "22500"),
		row(5, "1800000.01", "3600000.00", "0.143", "87300"),
		row(6, "3600000.01", "4800000.00", "0.19", "378000"),
	}
}

// ValidateTaxBrackets checks that the table partitions [0, top] into ascending,
// contiguous brackets with non-decreasing nominal rates.
func ValidateTaxBrackets(brackets []TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("tax bracket table is empty")
	}
	if !brackets[0].Lower.IsZero() {
		return fmt.Errorf("bracket %d: first lower bound must be 0, got %s", brackets[0].Index, brackets[0].Lower)
	}
	for i, b := range brackets {
		if b.Upper.LessThan(b.Lower) {
			return fmt.Errorf("bracket %d: upper %s below lower %s", b.Index, b.Upper, b.Lower)
		}
		if b.NominalRate.IsNegative() || b.Deduction.IsNegative() {
			return fmt.Errorf("bracket %d: rate and deduction must not be negative", b.Index)
		}
		if i == 0 {
			continue
		}
		prev := brackets[i-1]
		if b.Index <= prev.Index {
			return fmt.Errorf("bracket %d: index not ascending after %d", b.Index, prev.Index)
		}
		if want := prev.Upper.Add(bracketStep); !b.Lower.Equal(want) {
			return fmt.Errorf("bracket %d: lower bound %s must be %s", b.Index, b.Lower, want)
		}
		if b.NominalRate.LessThan(prev.NominalRate) {
			return fmt.Errorf("bracket %d: nominal rate %s below previous %s", b.Index, b.NominalRate, prev.NominalRate)
		}
	}
	return nil
}

// TaxComputation is the result of applying the bracket engine to a taxable base.
type TaxComputation struct {
	Base            decimal.Decimal `json:"base"`
	RBT12           decimal.Decimal `json:"rbt12"`
	Bracket         int             `json:"bracket"`
	EffectiveRate   decimal.Decimal `json:"effectiveRate"`
	Amount          decimal.Decimal `json:"amount"`
	AboveTopBracket bool            `json:"aboveTopBracket"`
}
