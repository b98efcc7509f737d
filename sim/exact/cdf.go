package exact

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// CDF is a cumulative binomial table.
//
// Index k+1 holds P(X <= k) for k in 0..n, index 0 holds 0, so a table for n
// trials has n+2 entries. Entries are non-decreasing.
type CDF struct {
	n         int
	entries   []Prob
	tolerance Prob
}

// N returns the number of trials the table was built for.
func (t CDF) N() int { return t.n }

// Len returns the number of entries, n+2.
func (t CDF) Len() int { return len(t.entries) }

// At returns entry i.
func (t CDF) At(i int) Prob { return t.entries[i] }

// Top returns the last entry, P(X <= n), which should be 1 within tolerance.
func (t CDF) Top() Prob { return t.entries[len(t.entries)-1] }

// Entries returns a copy of the table.
func (t CDF) Entries() []Prob {
	out := make([]Prob, len(t.entries))
	copy(out, t.entries)
	return out
}

// BuildCDF builds the cumulative binomial(n, p) table.
//
// The running sum is accumulated with guard digits and each stored entry is
// rounded to the working precision; rounding is monotone, so the table stays
// non-decreasing. The table is not renormalised: when the top entry misses 1
// by more than Tolerance the table is returned together with an error
// wrapping ErrPrecisionBudget.
func (c Context) BuildCDF(n int, p Prob) (CDF, error) {
	if n < 0 {
		return CDF{}, fmt.Errorf("cdf over %d trials: %w", n, ErrDomain)
	}
	if err := checkUnitInterval("p", p); err != nil {
		return CDF{}, err
	}

	facts := factorialTable(n)
	pPows := c.powerTable(p.d, n)
	qPows := c.powerTable(c.Complement(p).d, n)

	entries := make([]Prob, n+2)
	entries[0] = Zero
	sum := decimal.Zero
	for k := 0; k <= n; k++ {
		coeff := binomialFromFactorials(facts[n], facts[k], facts[n-k])
		sum = sum.Add(c.pointMassGuarded(coeff, pPows[k], qPows[n-k]))
		entries[k+1] = Prob{d: roundSignificant(sum, c.digits())}
	}

	table := CDF{n: n, entries: entries, tolerance: c.Tolerance()}
	if gap := c.Complement(table.Top()).Abs(); gap.GreaterThan(table.tolerance) {
		return table, fmt.Errorf("binomial(%d, %s) cdf tops out at %s (gap %s > %s): %w",
			n, p, table.Top(), gap, table.tolerance, ErrPrecisionBudget)
	}
	return table, nil
}

// factorialTable returns 0!..n!.
func factorialTable(n int) []*big.Int {
	facts := make([]*big.Int, n+1)
	facts[0] = big.NewInt(1)
	for i := 1; i <= n; i++ {
		facts[i] = new(big.Int).Mul(facts[i-1], big.NewInt(int64(i)))
	}
	return facts
}

// powerTable returns base^0..base^n with guard digits.
func (c Context) powerTable(base decimal.Decimal, n int) []decimal.Decimal {
	pows := make([]decimal.Decimal, n+1)
	pows[0] = decimalOne
	for i := 1; i <= n; i++ {
		pows[i] = c.guarded(pows[i-1].Mul(base))
	}
	return pows
}
