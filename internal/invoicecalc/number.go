package invoicecalc

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is a lenient decimal. It decodes JSON numbers, numeric strings,
// null and garbage alike; anything that is not a finite number becomes 0.
// Strings are read the way a browser's parseFloat reads them: the longest
// leading numeric prefix wins, so "12abc" is 12 and "abc" is 0.
type Number struct {
	decimal.Decimal
}

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

func NewNumber(f float64) Number {
	return Number{decimal.NewFromFloat(f)}
}

func NumberFromInt(i int64) Number {
	return Number{decimal.NewFromInt(i)}
}

func NumberFromDecimal(d decimal.Decimal) Number {
	return Number{d}
}

// ParseNumber never fails; unparseable input yields 0.
func ParseNumber(s string) Number {
	m := numericPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return Number{}
	}
	m = strings.TrimPrefix(m, "+")
	if i := strings.IndexAny(m, "eE"); i > 0 && m[i-1] == '.' {
		m = m[:i-1] + m[i:]
	}
	m = strings.TrimSuffix(m, ".")
	// Out of float64 range counts as not finite.
	if f, err := strconv.ParseFloat(m, 64); err != nil || math.IsInf(f, 0) {
		return Number{}
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return Number{}
	}
	return Number{d}
}

func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.Decimal.String()), nil
}

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = Number{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*n = Number{}
			return nil
		}
		*n = ParseNumber(s)
		return nil
	}
	*n = ParseNumber(string(b))
	return nil
}
