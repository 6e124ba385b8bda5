package convert

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrUnknownUnit       = errors.New("unknown unit")
	ErrIncompatibleUnits = errors.New("incompatible units")
	ErrUnknownCurrency   = errors.New("unknown currency")
	ErrInvalidDate       = errors.New("invalid date")
	ErrFutureDate        = errors.New("date is in the future")
)

// Category groups units that convert into each other.
type Category string

const (
	Length      Category = "length"
	Weight      Category = "weight"
	Temperature Category = "temperature"
	Area        Category = "area"
)

type unit struct {
	category Category
	// factor converts one of this unit into the category's base unit
	// (metre, gram, square metre). Unused for temperature.
	factor float64
}

var units = map[string]unit{
	"mm": {Length, 0.001},
	"cm": {Length, 0.01},
	"m":  {Length, 1},
	"km": {Length, 1000},
	"in": {Length, 0.0254},
	"ft": {Length, 0.3048},
	"yd": {Length, 0.9144},
	"mi": {Length, 1609.344},

	"mg":  {Weight, 0.001},
	"g":   {Weight, 1},
	"kg":  {Weight, 1000},
	"oz":  {Weight, 28.349523125},
	"lb":  {Weight, 453.59237},
	"ton": {Weight, 907184.74},

	"°C": {Temperature, 0},
	"°F": {Temperature, 0},
	"K":  {Temperature, 0},

	"mm²": {Area, 1e-6},
	"cm²": {Area, 1e-4},
	"m²":  {Area, 1},
	"km²": {Area, 1e6},
	"in²": {Area, 0.00064516},
	"ft²": {Area, 0.09290304},
	"ac":  {Area, 4046.8564224},
}

var unitAliases = map[string]string{
	"C":   "°C",
	"F":   "°F",
	"mm2": "mm²",
	"cm2": "cm²",
	"m2":  "m²",
	"km2": "km²",
	"in2": "in²",
	"ft2": "ft²",
}

// Units lists the unit symbols of each category.
var Units = map[Category][]string{
	Length:      {"mm", "cm", "m", "km", "in", "ft", "yd", "mi"},
	Weight:      {"mg", "g", "kg", "oz", "lb", "ton"},
	Temperature: {"°C", "°F", "K"},
	Area:        {"mm²", "cm²", "m²", "km²", "in²", "ft²", "ac"},
}

// UnitResult is a formatted unit conversion.
type UnitResult struct {
	Category Category `json:"category"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	Value    float64  `json:"value"`
	Result   string   `json:"result"`
}

// ConvertUnit converts value between two units of the same category.
// Linear results print with six decimals below 0.01 and two otherwise;
// temperatures always print with two.
func ConvertUnit(value float64, from, to string) (UnitResult, error) {
	from, fu, err := lookupUnit(from)
	if err != nil {
		return UnitResult{}, err
	}
	to, tu, err := lookupUnit(to)
	if err != nil {
		return UnitResult{}, err
	}
	if fu.category != tu.category {
		return UnitResult{}, fmt.Errorf("%w: %s is %s, %s is %s", ErrIncompatibleUnits, from, fu.category, to, tu.category)
	}

	res := UnitResult{Category: fu.category, From: from, To: to, Value: value}

	if fu.category == Temperature {
		if from == to {
			res.Result = strconv.FormatFloat(value, 'f', -1, 64)
			return res, nil
		}
		res.Result = strconv.FormatFloat(fromKelvin(toKelvin(value, from), to), 'f', 2, 64)
		return res, nil
	}

	result := value * fu.factor / tu.factor
	precision := 2
	if result < 0.01 {
		precision = 6
	}
	res.Result = strconv.FormatFloat(result, 'f', precision, 64)
	return res, nil
}

func lookupUnit(symbol string) (string, unit, error) {
	if canonical, ok := unitAliases[symbol]; ok {
		symbol = canonical
	}
	u, ok := units[symbol]
	if !ok {
		return "", unit{}, fmt.Errorf("%w: %q", ErrUnknownUnit, symbol)
	}
	return symbol, u, nil
}

func toKelvin(v float64, from string) float64 {
	switch from {
	case "°C":
		return v + 273.15
	case "°F":
		return (v-32)*5/9 + 273.15
	}
	return v
}

func fromKelvin(k float64, to string) float64 {
	switch to {
	case "°C":
		return k - 273.15
	case "°F":
		return (k-273.15)*9/5 + 32
	}
	return k
}
