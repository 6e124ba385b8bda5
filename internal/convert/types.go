package convert

// UnitRequest is the JSON body for POST /convert/units.
type UnitRequest struct {
	Value float64 `json:"value"`
	From  string  `json:"from"`
	To    string  `json:"to"`
}

// CurrencyRequest is the JSON body for POST /convert/currency.
type CurrencyRequest struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
}

// AgeRequest is the JSON body for POST /convert/age. Month is 1-based.
type AgeRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}
