package plan

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency markers stripped from text cells. The mis-encoded forms show up
// when the sheet was saved through a latin-1 round trip.
var (
	secondaryMarkers = []string{"â‚¦", "₦", "NGN"}
	primaryMarkers   = append([]string{"Â£", "£", "GBP"}, secondaryMarkers...)
)

// Primary coerces a cell holding a primary-currency amount. It returns nil
// when the cell is empty or does not hold a number.
func Primary(v interface{}) *float64 {
	return coerce(v, primaryMarkers)
}

// Secondary coerces a cell holding a secondary-currency amount.
func Secondary(v interface{}) *float64 {
	return coerce(v, secondaryMarkers)
}

func coerce(v interface{}, markers []string) *float64 {
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return ptr(float64(n))
	case int8:
		return ptr(float64(n))
	case int16:
		return ptr(float64(n))
	case int32:
		return ptr(float64(n))
	case int64:
		return ptr(float64(n))
	case uint:
		return ptr(float64(n))
	case uint8:
		return ptr(float64(n))
	case uint16:
		return ptr(float64(n))
	case uint32:
		return ptr(float64(n))
	case uint64:
		return ptr(float64(n))
	case decimal.Decimal:
		return fromDecimal(n)
	case string:
		return parseText(n, markers)
	default:
		return parseText(fmt.Sprint(n), markers)
	}
}

func parseText(s string, markers []string) *float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	for _, m := range markers {
		s = strings.TrimSpace(strings.ReplaceAll(s, m, ""))
	}
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return fromDecimal(d)
}

// maxExponent bounds decimal exponents to what a float64 can hold. Converting
// anything larger expands a huge power of ten only to end up infinite.
const maxExponent = 400

func fromDecimal(d decimal.Decimal) *float64 {
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return nil
	}
	return finite(d.InexactFloat64())
}

func finite(f float64) *float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}

func ptr(f float64) *float64 {
	return &f
}
