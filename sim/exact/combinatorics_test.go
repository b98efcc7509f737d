package exact

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestFactorial_KnownValues(t *testing.T) {
	tests := []struct {
		x    int
		want string
	}{
		{0, "1"},
		{1, "1"},
		{5, "120"},
		{20, "2432902008176640000"},
		{25, "15511210043330985984000000"},
	}
	for _, tt := range tests {
		got, err := Factorial(tt.x)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.String(), "%d!", tt.x)
	}
}

func TestFactorial_BeyondWordWidth(t *testing.T) {
	// 200! has 375 digits; no native integer type can hold it.
	got, err := Factorial(200)
	require.NoError(t, err)
	assert.Len(t, got.String(), 375)
}

func TestFactorial_Negative_DomainError(t *testing.T) {
	_, err := Factorial(-1)
	assert.True(t, errors.Is(err, ErrDomain), "got %v", err)
}

func TestBinomialCoefficient_SymmetryAndEdges(t *testing.T) {
	for n := 0; n <= 60; n++ {
		zero, err := BinomialCoefficient(n, 0)
		require.NoError(t, err)
		all, err := BinomialCoefficient(n, n)
		require.NoError(t, err)
		if zero.Cmp(big.NewInt(1)) != 0 || all.Cmp(big.NewInt(1)) != 0 {
			t.Fatalf("C(%d,0)=%s, C(%d,%d)=%s, want 1", n, zero, n, n, all)
		}
		for k := 0; k <= n; k++ {
			a, _ := BinomialCoefficient(n, k)
			b, _ := BinomialCoefficient(n, n-k)
			if a.Cmp(b) != 0 {
				t.Fatalf("C(%d,%d)=%s != C(%d,%d)=%s", n, k, a, n, n-k, b)
			}
		}
	}
}

func TestBinomialCoefficient_MatchesStdlib(t *testing.T) {
	got, err := BinomialCoefficient(100, 50)
	require.NoError(t, err)
	assert.Equal(t, "100891344545564193334812497256", got.String())
	assert.Equal(t, 0, got.Cmp(new(big.Int).Binomial(100, 50)))
}

func TestBinomialCoefficient_InvalidArgs(t *testing.T) {
	tests := []struct {
		name string
		n, k int
	}{
		{"k greater than n", 5, 6},
		{"negative k", 5, -1},
		{"negative n", -3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BinomialCoefficient(tt.n, tt.k)
			assert.True(t, errors.Is(err, ErrDomain), "got %v", err)
		})
	}
}

func TestBinomialPointMass_SumsToOne(t *testing.T) {
	ctx, err := NewContext(32)
	require.NoError(t, err)
	tests := []struct {
		n int
		p string
	}{
		{0, "0.5"},
		{1, "0.3"},
		{10, "0.1"},
		{49, "0.6"},
		{49, "0.0001"},
		{120, "0.35"},
	}
	for _, tt := range tests {
		p, err := ParseProb(tt.p)
		require.NoError(t, err)
		sum := Zero
		for k := 0; k <= tt.n; k++ {
			mass, err := ctx.BinomialPointMass(tt.n, p, k)
			require.NoError(t, err)
			sum = sum.Add(mass)
		}
		// Each of the n+1 masses is rounded once at the working precision.
		tol := ctx.Tolerance().MulInt(tt.n + 1)
		gap := sum.Sub(One).Abs()
		assert.False(t, gap.GreaterThan(tol), "n=%d p=%s: sum=%s", tt.n, tt.p, sum)
	}
}

func TestBinomialPointMass_MatchesFloatReference(t *testing.T) {
	// GIVEN a parameter set small enough for float64 to be accurate
	ctx, _ := NewContext(24)
	p, _ := ParseProb("0.1")
	ref := distuv.Binomial{N: 49, P: 0.1}

	// THEN every exact mass agrees with the float reference at the reporting boundary
	for k := 0; k <= 49; k++ {
		mass, err := ctx.BinomialPointMass(49, p, k)
		require.NoError(t, err)
		assert.InDelta(t, ref.Prob(float64(k)), mass.Float64(), 1e-12, "k=%d", k)
	}
}

func TestBinomialPointMass_DegenerateProbabilities(t *testing.T) {
	ctx := Context{}
	m, err := ctx.BinomialPointMass(7, Zero, 0)
	require.NoError(t, err)
	assert.True(t, m.Equal(One), "P(X=0 | p=0) = %s", m)

	m, err = ctx.BinomialPointMass(7, Zero, 3)
	require.NoError(t, err)
	assert.True(t, m.IsZero())

	m, err = ctx.BinomialPointMass(7, One, 7)
	require.NoError(t, err)
	assert.True(t, m.Equal(One), "P(X=n | p=1) = %s", m)
}

func TestBinomialPointMass_InvalidProbability(t *testing.T) {
	ctx := Context{}
	p, _ := ParseProb("1.5")
	_, err := ctx.BinomialPointMass(4, p, 2)
	assert.True(t, errors.Is(err, ErrDomain))

	_, err = ctx.BinomialPointMass(4, One, 5)
	assert.True(t, errors.Is(err, ErrDomain))
}
