package convert

import (
	"errors"
	"slices"
	"testing"
)

func TestConvertCurrency(t *testing.T) {
	tests := []struct {
		name      string
		amount    float64
		from      string
		to        string
		want      string
		wantQuote string
	}{
		{name: "usd to eur", amount: 10, from: "USD", to: "EUR", want: "9.10", wantQuote: "10 USD = 9.10 EUR"},
		{name: "eur to jpy", amount: 100, from: "EUR", to: "JPY", want: "16661.54", wantQuote: "100 EUR = 16661.54 JPY"},
		{name: "same currency", amount: 2.5, from: "GBP", to: "GBP", want: "2.50", wantQuote: "2.5 GBP = 2.50 GBP"},
		{name: "lower case codes", amount: 1, from: "usd", to: "inr", want: "83.31", wantQuote: "1 USD = 83.31 INR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ConvertCurrency(tc.amount, tc.from, tc.to)
			if err != nil {
				t.Fatalf("converting: %v", err)
			}
			if got.Result != tc.want {
				t.Fatalf("expected result %q, got %q", tc.want, got.Result)
			}
			if got.Quote != tc.wantQuote {
				t.Fatalf("expected quote %q, got %q", tc.wantQuote, got.Quote)
			}
		})
	}
}

func TestConvertCurrencyUnknownCode(t *testing.T) {
	if _, err := ConvertCurrency(1, "USD", "XYZ"); !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("expected ErrUnknownCurrency, got %v", err)
	}
	if _, err := ConvertCurrency(1, "", "USD"); !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("expected ErrUnknownCurrency, got %v", err)
	}
}

func TestCurrencies(t *testing.T) {
	want := []string{"CHF", "EUR", "GBP", "INR", "JPY", "RUB", "USD"}
	if got := Currencies(); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
