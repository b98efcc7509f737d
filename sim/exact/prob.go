package exact

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

const (
	// DefaultPrecision is the working precision in significant digits.
	DefaultPrecision = 32
	// MinPrecision and MaxPrecision bound the configurable working precision.
	MinPrecision = 4
	MaxPrecision = 1000

	// guardDigits are carried on top of the working precision inside
	// multi-step computations (powers, running sums) and dropped when a
	// value is handed back to the caller.
	guardDigits = 8
)

var decimalOne = decimal.NewFromInt(1)

// Prob is an exact probability or rate value.
// The zero value is 0.
type Prob struct {
	d decimal.Decimal
}

var (
	// Zero is the probability 0.
	Zero = Prob{d: decimal.Zero}
	// One is the probability 1.
	One = Prob{d: decimalOne}
)

// ParseProb parses a decimal string such as "0.1" or "1e-3".
// Negative values are rejected: every rate and probability in the engine is non-negative.
func ParseProb(s string) (Prob, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Prob{}, fmt.Errorf("parsing %q: %v: %w", s, err, ErrDomain)
	}
	if d.IsNegative() {
		return Prob{}, fmt.Errorf("value %s is negative: %w", s, ErrDomain)
	}
	return Prob{d: d}, nil
}

// NewProbFromFloat converts a configuration float to a Prob using the
// shortest decimal representation of f, so 0.1 becomes exactly 0.1 rather
// than the nearest binary fraction. Only configuration input goes through here.
func NewProbFromFloat(f float64) (Prob, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Prob{}, fmt.Errorf("value %v is not finite: %w", f, ErrDomain)
	}
	if f < 0 {
		return Prob{}, fmt.Errorf("value %v is negative: %w", f, ErrDomain)
	}
	return Prob{d: decimal.NewFromFloat(f)}, nil
}

// Add returns p+q exactly.
func (p Prob) Add(q Prob) Prob { return Prob{d: p.d.Add(q.d)} }

// Sub returns p-q exactly. The result may be negative; callers compare it
// against tolerances rather than feeding it back into probability arithmetic.
func (p Prob) Sub(q Prob) Prob { return Prob{d: p.d.Sub(q.d)} }

// MulInt returns p*n exactly.
func (p Prob) MulInt(n int) Prob { return Prob{d: p.d.Mul(decimal.NewFromInt(int64(n)))} }

// Abs returns |p|.
func (p Prob) Abs() Prob { return Prob{d: p.d.Abs()} }

// Cmp compares p and q: -1 if p < q, 0 if equal, +1 if p > q.
func (p Prob) Cmp(q Prob) int { return p.d.Cmp(q.d) }

// Equal reports whether p and q are numerically equal.
func (p Prob) Equal(q Prob) bool { return p.d.Equal(q.d) }

// LessThan reports whether p < q.
func (p Prob) LessThan(q Prob) bool { return p.d.LessThan(q.d) }

// GreaterThan reports whether p > q.
func (p Prob) GreaterThan(q Prob) bool { return p.d.GreaterThan(q.d) }

// IsZero reports whether p == 0.
func (p Prob) IsZero() bool { return p.d.IsZero() }

// InUnitInterval reports whether 0 <= p <= 1.
func (p Prob) InUnitInterval() bool {
	return !p.d.IsNegative() && p.d.LessThanOrEqual(decimalOne)
}

// Decimal exposes the underlying decimal.
func (p Prob) Decimal() decimal.Decimal { return p.d }

// String formats p without trailing zeros.
func (p Prob) String() string { return p.d.String() }

// Float64 narrows p to a native float. This is the reporting boundary: the
// engine never calls it while sampling.
func (p Prob) Float64() float64 {
	f, _ := p.d.Float64()
	return f
}

// Context fixes the working precision, in significant digits, of every
// rounded operation. The zero Context uses DefaultPrecision.
type Context struct {
	precision int32
}

// NewContext returns a Context with the given working precision.
func NewContext(precision int) (Context, error) {
	if precision < MinPrecision || precision > MaxPrecision {
		return Context{}, fmt.Errorf("precision %d outside [%d, %d]: %w", precision, MinPrecision, MaxPrecision, ErrDomain)
	}
	return Context{precision: int32(precision)}, nil
}

// Precision returns the working precision in significant digits.
func (c Context) Precision() int { return int(c.digits()) }

func (c Context) digits() int32 {
	if c.precision <= 0 {
		return DefaultPrecision
	}
	return c.precision
}

// Tolerance is one unit in the last place of a value near 1, i.e. 10^-precision.
func (c Context) Tolerance() Prob {
	return Prob{d: decimal.New(1, -c.digits())}
}

// Round rounds p to the working precision.
func (c Context) Round(p Prob) Prob {
	return Prob{d: roundSignificant(p.d, c.digits())}
}

// Mul returns a*b rounded to the working precision.
func (c Context) Mul(a, b Prob) Prob {
	return Prob{d: roundSignificant(a.d.Mul(b.d), c.digits())}
}

// Quo returns a/b rounded to the working precision.
func (c Context) Quo(a, b Prob) (Prob, error) {
	if b.IsZero() {
		return Prob{}, fmt.Errorf("division of %s by zero: %w", a, ErrDomain)
	}
	return Prob{d: c.quo(a.d, b.d, c.digits())}, nil
}

// Ratio returns num/den rounded to the working precision.
func (c Context) Ratio(num, den int) (Prob, error) {
	if num < 0 || den < 0 {
		return Prob{}, fmt.Errorf("ratio %d/%d has a negative term: %w", num, den, ErrDomain)
	}
	return c.Quo(Prob{d: decimal.NewFromInt(int64(num))}, Prob{d: decimal.NewFromInt(int64(den))})
}

// Complement returns 1-p. It is exact: p already has finitely many digits.
func (c Context) Complement(p Prob) Prob {
	return Prob{d: decimalOne.Sub(p.d)}
}

// Pow returns base^exp rounded to the working precision, with 0^0 = 1.
func (c Context) Pow(base Prob, exp int) (Prob, error) {
	if exp < 0 {
		return Prob{}, fmt.Errorf("negative exponent %d: %w", exp, ErrDomain)
	}
	return Prob{d: roundSignificant(c.powGuarded(base.d, exp), c.digits())}, nil
}

// powGuarded computes base^exp by repeated squaring, rounding every
// intermediate product to the guarded precision.
func (c Context) powGuarded(base decimal.Decimal, exp int) decimal.Decimal {
	digits := c.digits() + guardDigits
	result := decimalOne
	b := base
	for exp > 0 {
		if exp&1 == 1 {
			result = roundSignificant(result.Mul(b), digits)
		}
		exp >>= 1
		if exp > 0 {
			b = roundSignificant(b.Mul(b), digits)
		}
	}
	return result
}

func (c Context) guarded(d decimal.Decimal) decimal.Decimal {
	return roundSignificant(d, c.digits()+guardDigits)
}

// quo divides with enough fractional places to keep `digits` significant
// digits of the quotient, then rounds to exactly that many.
func (c Context) quo(a, b decimal.Decimal, digits int32) decimal.Decimal {
	if a.IsZero() {
		return decimal.Zero
	}
	places := digits + guardDigits - (magnitude(a) - magnitude(b)) + 1
	if places < 0 {
		places = 0
	}
	return roundSignificant(a.DivRound(b, places), digits)
}

// roundSignificant rounds d to the given number of significant digits.
func roundSignificant(d decimal.Decimal, digits int32) decimal.Decimal {
	if d.IsZero() {
		return d
	}
	return d.Round(digits - magnitude(d))
}

// magnitude is the position of the leading digit of d relative to the
// decimal point: 1 for 1.23, 3 for 123, -2 for 0.00123.
func magnitude(d decimal.Decimal) int32 {
	return int32(countDigits(d.Coefficient())) + d.Exponent()
}

func countDigits(x *big.Int) int {
	if x.Sign() == 0 {
		return 1
	}
	if x.IsInt64() {
		v := x.Int64()
		if v < 0 {
			v = -v
		}
		n := 0
		for v > 0 {
			v /= 10
			n++
		}
		return n
	}
	return len(new(big.Int).Abs(x).String())
}
