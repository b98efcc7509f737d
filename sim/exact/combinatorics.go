package exact

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Factorial returns x! exactly.
func Factorial(x int) (*big.Int, error) {
	if x < 0 {
		return nil, fmt.Errorf("factorial of %d: %w", x, ErrDomain)
	}
	// MulRange(1, 0) is the empty product 1.
	return new(big.Int).MulRange(1, int64(x)), nil
}

// BinomialCoefficient returns C(n,k) = n!/(k!(n-k)!) by exact integer division.
func BinomialCoefficient(n, k int) (*big.Int, error) {
	if err := checkBinomialArgs(n, k); err != nil {
		return nil, err
	}
	nFact, _ := Factorial(n)
	kFact, _ := Factorial(k)
	nkFact, _ := Factorial(n - k)
	return binomialFromFactorials(nFact, kFact, nkFact), nil
}

func binomialFromFactorials(nFact, kFact, nkFact *big.Int) *big.Int {
	denom := new(big.Int).Mul(kFact, nkFact)
	return new(big.Int).Quo(nFact, denom)
}

func checkBinomialArgs(n, k int) error {
	if n < 0 {
		return fmt.Errorf("binomial n=%d is negative: %w", n, ErrDomain)
	}
	if k < 0 || k > n {
		return fmt.Errorf("binomial k=%d outside [0, %d]: %w", k, n, ErrDomain)
	}
	return nil
}

func checkUnitInterval(name string, p Prob) error {
	if !p.InUnitInterval() {
		return fmt.Errorf("%s=%s outside [0, 1]: %w", name, p, ErrDomain)
	}
	return nil
}

// BinomialPointMass returns C(n,k) * p^k * (1-p)^(n-k) at the working precision.
//
// The combinatorial factor is exact, the powers are carried with guard digits
// and the product is rounded once at the end.
func (c Context) BinomialPointMass(n int, p Prob, k int) (Prob, error) {
	if err := checkBinomialArgs(n, k); err != nil {
		return Prob{}, err
	}
	if err := checkUnitInterval("p", p); err != nil {
		return Prob{}, err
	}
	coeff, _ := BinomialCoefficient(n, k)
	mass := c.pointMassGuarded(coeff, c.powGuarded(p.d, k), c.powGuarded(c.Complement(p).d, n-k))
	return Prob{d: roundSignificant(mass, c.digits())}, nil
}

// pointMassGuarded multiplies an exact coefficient by p^k and q^(n-k),
// keeping guard digits.
func (c Context) pointMassGuarded(coeff *big.Int, pPow, qPow decimal.Decimal) decimal.Decimal {
	if pPow.IsZero() || qPow.IsZero() {
		return decimal.Zero
	}
	return c.guarded(decimal.NewFromBigInt(coeff, 0).Mul(pPow).Mul(qPow))
}
