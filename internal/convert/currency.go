package convert

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// usdRates holds units of each currency per US dollar.
var usdRates = map[string]float64{
	"USD": 1,
	"EUR": 0.91,
	"GBP": 0.79,
	"JPY": 151.62,
	"INR": 83.31,
	"CHF": 0.90,
	"RUB": 92.50,
}

// Currencies lists the supported currency codes in sorted order.
func Currencies() []string {
	return slices.Sorted(maps.Keys(usdRates))
}

// CurrencyResult is a formatted currency conversion.
type CurrencyResult struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Result string  `json:"result"`
	Quote  string  `json:"quote"`
}

// ConvertCurrency converts amount through US dollars and rounds to cents.
// Codes are case-insensitive.
func ConvertCurrency(amount float64, from, to string) (CurrencyResult, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)

	fromRate, ok := usdRates[from]
	if !ok {
		return CurrencyResult{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, from)
	}
	toRate, ok := usdRates[to]
	if !ok {
		return CurrencyResult{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, to)
	}

	result := strconv.FormatFloat(amount/fromRate*toRate, 'f', 2, 64)
	amountText := strconv.FormatFloat(amount, 'f', -1, 64)

	return CurrencyResult{
		Amount: amount,
		From:   from,
		To:     to,
		Result: result,
		Quote:  fmt.Sprintf("%s %s = %s %s", amountText, from, result, to),
	}, nil
}
