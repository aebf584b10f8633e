package jsonvalue

import (
	"math"
	"math/big"
	"strconv"

	"github.com/cockroachdb/apd/v2"

	"github.com/cybergodev/jsonvalue/internal"
)

// NumberKind identifies the member of the numeric family a Number holds.
type NumberKind uint8

const (
	KindInt32 NumberKind = iota + 1
	KindInt64
	KindBigInt
	KindDouble
	KindDecimal
)

func (k NumberKind) String() string {
	switch k {
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindBigInt:
		return "big integer"
	case KindDouble:
		return "double"
	case KindDecimal:
		return "decimal"
	default:
		return "invalid number"
	}
}

// Number is the closed numeric variant of the value model. The zero Number
// is invalid; build one with the constructors below.
type Number struct {
	kind NumberKind
	i    int64
	f    float64
	big  *big.Int
	dec  *apd.Decimal
}

// decimalContext carries enough precision that increments and conversions
// of parsed decimals are exact.
var decimalContext = apd.BaseContext.WithPrecision(1000)

// Int32 returns an int32 Number.
func Int32(v int32) Number {
	return Number{kind: KindInt32, i: int64(v)}
}

// Int64 returns the narrowest integer Number holding v.
func Int64(v int64) Number {
	if v >= math.MinInt32 && v <= math.MaxInt32 {
		return Number{kind: KindInt32, i: v}
	}
	return Number{kind: KindInt64, i: v}
}

// Uint64 returns the narrowest integer Number holding v.
func Uint64(v uint64) Number {
	if v <= math.MaxInt64 {
		return Int64(int64(v))
	}
	return Number{kind: KindBigInt, big: new(big.Int).SetUint64(v)}
}

// BigInt returns the narrowest integer Number holding v. The argument is
// copied.
func BigInt(v *big.Int) Number {
	if v == nil {
		return Number{}
	}
	return narrowBig(new(big.Int).Set(v))
}

// narrowBig applies the bit-length ladder and takes ownership of v.
func narrowBig(v *big.Int) Number {
	switch {
	case v.BitLen() <= 31:
		return Number{kind: KindInt32, i: v.Int64()}
	case v.BitLen() <= 63:
		return Number{kind: KindInt64, i: v.Int64()}
	default:
		return Number{kind: KindBigInt, big: v}
	}
}

// Double returns a double Number. Non-finite values are representable here
// but are rejected when stored in a tree or written.
func Double(v float64) Number {
	return Number{kind: KindDouble, f: v}
}

// Decimal returns an arbitrary-precision decimal Number. The argument is
// copied.
func Decimal(v *apd.Decimal) Number {
	if v == nil {
		return Number{}
	}
	return Number{kind: KindDecimal, dec: new(apd.Decimal).Set(v)}
}

// Kind reports which member of the family n holds.
func (n Number) Kind() NumberKind {
	return n.kind
}

// IsValid reports whether n was built by a constructor.
func (n Number) IsValid() bool {
	return n.kind != 0
}

// IsInteger reports whether n holds one of the integer kinds.
func (n Number) IsInteger() bool {
	return n.kind == KindInt32 || n.kind == KindInt64 || n.kind == KindBigInt
}

// IsFinite reports whether n can be written as JSON.
func (n Number) IsFinite() bool {
	switch n.kind {
	case KindDouble:
		return !math.IsInf(n.f, 0) && !math.IsNaN(n.f)
	case KindDecimal:
		return n.dec.Form == apd.Finite
	case 0:
		return false
	}
	return true
}

// Int64 converts n to int64, truncating fractions and wrapping big values
// the way a narrowing cast does.
func (n Number) Int64() int64 {
	switch n.kind {
	case KindInt32, KindInt64:
		return n.i
	case KindBigInt:
		return n.big.Int64()
	case KindDouble:
		return int64(n.f)
	case KindDecimal:
		return decimalInt64(n.dec)
	}
	return 0
}

// Float64 converts n to float64, possibly losing precision.
func (n Number) Float64() float64 {
	switch n.kind {
	case KindInt32, KindInt64:
		return float64(n.i)
	case KindBigInt:
		f, _ := new(big.Float).SetInt(n.big).Float64()
		return f
	case KindDouble:
		return n.f
	case KindDecimal:
		f, err := n.dec.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	}
	return 0
}

// BigInt converts n to a new big.Int, truncating any fraction.
func (n Number) BigInt() *big.Int {
	switch n.kind {
	case KindInt32, KindInt64:
		return big.NewInt(n.i)
	case KindBigInt:
		return new(big.Int).Set(n.big)
	case KindDouble:
		if !n.IsFinite() {
			return new(big.Int)
		}
		bi, _ := big.NewFloat(n.f).Int(nil)
		return bi
	case KindDecimal:
		return decimalIntPart(n.dec)
	}
	return new(big.Int)
}

// Decimal converts n to a new apd.Decimal. Doubles convert through their
// shortest decimal representation.
func (n Number) Decimal() *apd.Decimal {
	switch n.kind {
	case KindInt32, KindInt64:
		return apd.New(n.i, 0)
	case KindBigInt:
		d, _, err := apd.NewFromString(n.big.String())
		if err != nil {
			return apd.New(0, 0)
		}
		return d
	case KindDouble:
		d, err := new(apd.Decimal).SetFloat64(n.f)
		if err != nil {
			return apd.New(0, 0)
		}
		return d
	case KindDecimal:
		return new(apd.Decimal).Set(n.dec)
	}
	return apd.New(0, 0)
}

// decimalIntPart truncates d toward zero.
func decimalIntPart(d *apd.Decimal) *big.Int {
	bi := new(big.Int).Set(&d.Coeff)
	switch {
	case d.Exponent > 0:
		bi.Mul(bi, pow10(int64(d.Exponent)))
	case d.Exponent < 0:
		if int64(-d.Exponent) > d.NumDigits() {
			return new(big.Int)
		}
		bi.Quo(bi, pow10(int64(-d.Exponent)))
	}
	if d.Negative {
		bi.Neg(bi)
	}
	return bi
}

// decimalInt64 is decimalIntPart(d).Int64() without building the integer
// when the low 64 bits are known to be zero: 10^64 is a multiple of 2^64,
// and a fraction-only value truncates to zero.
func decimalInt64(d *apd.Decimal) int64 {
	if d.Exponent >= 64 || (d.Exponent < 0 && int64(-d.Exponent) > d.NumDigits()) {
		return 0
	}
	return decimalIntPart(d).Int64()
}

func pow10(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil)
}

// Increment returns n+1 in the same kind. Int32 and Int64 results that
// overflow their kind move up the integer ladder instead of wrapping.
func (n Number) Increment() Number {
	switch n.kind {
	case KindInt32:
		return Int64(n.i + 1)
	case KindInt64:
		if n.i == math.MaxInt64 {
			return Number{kind: KindBigInt, big: new(big.Int).Add(big.NewInt(n.i), big.NewInt(1))}
		}
		return Number{kind: KindInt64, i: n.i + 1}
	case KindBigInt:
		return Number{kind: KindBigInt, big: new(big.Int).Add(n.big, big.NewInt(1))}
	case KindDouble:
		return Double(n.f + 1)
	case KindDecimal:
		sum := new(apd.Decimal)
		if _, err := decimalContext.Add(sum, n.dec, apd.New(1, 0)); err != nil {
			return n
		}
		return Number{kind: KindDecimal, dec: sum}
	}
	return n
}

// Cmp compares the exact numeric values of n and m across kinds.
func (n Number) Cmp(m Number) int {
	if n.IsInteger() && m.IsInteger() {
		if n.kind != KindBigInt && m.kind != KindBigInt {
			switch {
			case n.i < m.i:
				return -1
			case n.i > m.i:
				return 1
			}
			return 0
		}
		return n.BigInt().Cmp(m.BigInt())
	}
	if n.kind == KindDouble && m.kind == KindDouble {
		switch {
		case n.f < m.f:
			return -1
		case n.f > m.f:
			return 1
		}
		return 0
	}
	return n.Decimal().Cmp(m.Decimal())
}

// Equal reports whether n and m denote the same numeric value.
func (n Number) Equal(m Number) bool {
	if !n.IsValid() || !m.IsValid() || !n.IsFinite() || !m.IsFinite() {
		return false
	}
	return n.Cmp(m) == 0
}

// String returns the JSON text of n. Non-finite doubles render as "null".
func (n Number) String() string {
	switch n.kind {
	case KindInt32, KindInt64:
		return strconv.FormatInt(n.i, 10)
	case KindBigInt:
		return n.big.String()
	case KindDouble:
		return DoubleToString(n.f)
	case KindDecimal:
		if n.dec.Form != apd.Finite {
			return "null"
		}
		return internal.TrimFractionZeros(n.dec.String())
	}
	return "null"
}

// DoubleToString renders a float64 without a redundant fraction. Non-finite
// values render as "null".
func DoubleToString(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "null"
	}
	return internal.TrimFractionZeros(strconv.FormatFloat(f, 'g', -1, 64))
}

// NumberToString renders n as JSON text, failing for non-finite values.
func NumberToString(n Number) (string, error) {
	if err := checkNumber("number_to_string", n); err != nil {
		return "", err
	}
	return n.String(), nil
}

func checkNumber(op string, n Number) error {
	if !n.IsValid() {
		return newError(op, "", "uninitialized number", ErrInvalidNumber)
	}
	if !n.IsFinite() {
		return newError(op, "", "JSON does not allow non-finite numbers", ErrInvalidNumber)
	}
	return nil
}

// StringToNumber converts a numeric literal to the narrowest Number. Decimal
// notation yields a double unless the literal is long or the double is not
// finite, in which case it yields a decimal. Integer notation yields int32,
// int64 or big integer by bit length.
func StringToNumber(s string) (Number, error) {
	if s == "" || !(internal.IsDigit(rune(s[0])) || s[0] == '-') {
		return Number{}, newError("string_to_number", s, "not a valid number", ErrInvalidNumber)
	}
	if internal.IsDecimalNotation(s) {
		if !internal.IsDecimalLiteral(s) {
			return Number{}, newError("string_to_number", s, "not a valid decimal", ErrInvalidNumber)
		}
		if len(s) > internal.MaxDoubleLiteral {
			return parseDecimal(s)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return parseDecimal(s)
		}
		return Double(f), nil
	}
	if !internal.IsIntegerLiteral(s) {
		return Number{}, newError("string_to_number", s, "not a valid integer", ErrInvalidNumber)
	}
	bi, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Number{}, newError("string_to_number", s, "not a valid integer", ErrInvalidNumber)
	}
	return narrowBig(bi), nil
}

// parseDecimal reads a literal of valid decimal shape. apd keeps adjusted
// exponents within ±apd.MaxExponent, so only the range can fail here.
func parseDecimal(s string) (Number, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil || d.Form != apd.Finite {
		return Number{}, newError("string_to_number", s, "decimal exponent out of range", ErrInvalidNumber)
	}
	return Number{kind: KindDecimal, dec: d}, nil
}

// numberOf converts host numeric values to a Number.
func numberOf(v any) (Number, bool) {
	switch x := v.(type) {
	case Number:
		return x, x.IsValid()
	case int:
		return Int64(int64(x)), true
	case int8:
		return Int32(int32(x)), true
	case int16:
		return Int32(int32(x)), true
	case int32:
		return Int32(x), true
	case int64:
		return Int64(x), true
	case uint:
		return Uint64(uint64(x)), true
	case uint8:
		return Int32(int32(x)), true
	case uint16:
		return Int32(int32(x)), true
	case uint32:
		return Int64(int64(x)), true
	case uint64:
		return Uint64(x), true
	case float32:
		return Double(float64(x)), true
	case float64:
		return Double(x), true
	case *big.Int:
		if x == nil {
			return Number{}, false
		}
		return BigInt(x), true
	case *big.Float:
		if x == nil || x.IsInf() {
			return Number{}, false
		}
		d, _, err := apd.NewFromString(x.Text('g', -1))
		if err != nil {
			return Number{}, false
		}
		return Number{kind: KindDecimal, dec: d}, true
	case *apd.Decimal:
		if x == nil {
			return Number{}, false
		}
		return Decimal(x), true
	}
	return Number{}, false
}
