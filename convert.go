package jsonvalue

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v2"

	"github.com/cybergodev/jsonvalue/internal"
)

// Scalar coercions shared by the typed getters of Object and Array. Each
// returns ok=false when the stored value cannot be read as the requested
// kind; getters turn that into ErrTypeMismatch, optional getters into the
// caller's default.

func coerceBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		switch {
		case strings.EqualFold(x, "true"):
			return true, true
		case strings.EqualFold(x, "false"):
			return false, true
		}
	}
	return false, false
}

func coerceNumber(v any) (Number, bool) {
	switch x := v.(type) {
	case Number:
		return x, x.IsValid()
	case string:
		n, err := StringToNumber(strings.TrimSpace(x))
		if err != nil {
			return Number{}, false
		}
		return n, true
	}
	return Number{}, false
}

func coerceInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case Number:
		return x.Int64(), x.IsValid()
	case string:
		d, _, err := apd.NewFromString(strings.TrimSpace(x))
		if err != nil || d.Form != apd.Finite {
			return 0, false
		}
		return decimalInt64(d), true
	}
	return 0, false
}

func coerceFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case Number:
		return x.Float64(), x.IsValid()
	case string:
		s := strings.TrimSpace(x)
		if !internal.IsDecimalLiteral(s) {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func coerceBigInt(v any) (*big.Int, bool) {
	switch x := v.(type) {
	case Number:
		return x.BigInt(), x.IsValid()
	case string:
		s := strings.TrimSpace(x)
		if internal.IsDecimalNotation(s) {
			d, _, err := apd.NewFromString(s)
			if err != nil || d.Form != apd.Finite {
				return nil, false
			}
			return decimalIntPart(d), true
		}
		bi, ok := new(big.Int).SetString(s, 10)
		return bi, ok
	}
	return nil, false
}

func coerceDecimal(v any) (*apd.Decimal, bool) {
	switch x := v.(type) {
	case Number:
		return x.Decimal(), x.IsValid()
	case string:
		d, _, err := apd.NewFromString(strings.TrimSpace(x))
		if err != nil || d.Form != apd.Finite {
			return nil, false
		}
		return d, true
	}
	return nil, false
}

// coerceString renders any stored value other than Null as text. Strings
// are returned unquoted, everything else as its JSON text.
func coerceString(v any) (string, bool) {
	switch x := v.(type) {
	case nil, nullValue:
		return "", false
	case string:
		return x, true
	}
	text, err := ValueToString(v)
	if err != nil {
		return "", false
	}
	return text, true
}

// StringToValue coerces a bare token: case-insensitive true, false and null
// become bool and Null, a token starting with a digit or '-' is tried as a
// number, anything else stays a string.
func StringToValue(s string) any {
	if s == "" {
		return s
	}
	switch {
	case strings.EqualFold(s, "true"):
		return true
	case strings.EqualFold(s, "false"):
		return false
	case strings.EqualFold(s, "null"):
		return Null
	}
	if internal.IsDigit(rune(s[0])) || s[0] == '-' {
		if n, err := StringToNumber(s); err == nil {
			return n
		}
	}
	return s
}
