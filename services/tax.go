package services

import (
	"math"
	"strings"

	"sazonpos/pkg/apperr"
)

// DefaultTaxRate applies when the configured currency has no entry.
const DefaultTaxRate = 0.15

var taxRates = map[string]float64{
	"HNL": 0.15,
	"NIO": 0.15,
	"GTQ": 0.12,
	"CRC": 0.13,
	"SVC": 0.13,
	"MXN": 0.16,
}

// TaxRateFor returns the sales tax (ISV) rate for an ISO currency code.
func TaxRateFor(currency string) float64 {
	if r, ok := taxRates[strings.ToUpper(strings.TrimSpace(currency))]; ok {
		return r
	}
	return DefaultTaxRate
}

type TaxLine struct {
	UnitPrice   float64
	TaxIncluded bool
}

type TaxBreakdown struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"isv"`
	Total    float64 `json:"total"`
}

// CalculateTax sums net price and tax over lines. A tax-included price is split
// into net and tax; otherwise tax is added on top. Prices must be positive.
func CalculateTax(lines []TaxLine, rate float64) (TaxBreakdown, error) {
	if rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return TaxBreakdown{}, apperr.Validation("invalid tax rate")
	}

	var net, tax float64
	for _, l := range lines {
		p := l.UnitPrice
		if p <= 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return TaxBreakdown{}, apperr.Validation("price must be greater than 0")
		}
		if l.TaxIncluded {
			n := p / (1 + rate)
			net += n
			tax += p - n
		} else {
			net += p
			tax += p * rate
		}
	}
	return TaxBreakdown{Subtotal: net, Tax: tax, Total: net + tax}, nil
}
