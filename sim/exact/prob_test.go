package exact

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProbFromFloat_ShortestDecimal(t *testing.T) {
	// 0.1 has no exact binary representation; the conversion must not drag
	// the binary error into the decimal.
	p, err := NewProbFromFloat(0.1)
	require.NoError(t, err)
	assert.Equal(t, "0.1", p.String())
}

func TestNewProbFromFloat_Rejects(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), -0.5} {
		_, err := NewProbFromFloat(f)
		assert.True(t, errors.Is(err, ErrDomain), "value %v: got %v", f, err)
	}
}

func TestParseProb(t *testing.T) {
	p, err := ParseProb("0.25")
	require.NoError(t, err)
	assert.Equal(t, 0.25, p.Float64())

	_, err = ParseProb("abc")
	assert.True(t, errors.Is(err, ErrDomain))
	_, err = ParseProb("-0.1")
	assert.True(t, errors.Is(err, ErrDomain))
}

func TestNewContext_Bounds(t *testing.T) {
	_, err := NewContext(MinPrecision - 1)
	assert.True(t, errors.Is(err, ErrDomain))
	_, err = NewContext(MaxPrecision + 1)
	assert.True(t, errors.Is(err, ErrDomain))

	ctx, err := NewContext(12)
	require.NoError(t, err)
	assert.Equal(t, 12, ctx.Precision())
	assert.Equal(t, DefaultPrecision, Context{}.Precision())
}

func TestContext_RoundsToSignificantDigits(t *testing.T) {
	ctx, _ := NewContext(4)
	tests := []struct {
		in, want string
	}{
		{"0.000123456", "0.0001235"},
		{"0.987654", "0.9877"},
		{"123456", "123500"},
		{"0", "0"},
	}
	for _, tt := range tests {
		p, _ := ParseProb(tt.in)
		assert.Equal(t, tt.want, ctx.Round(p).String(), "round(%s)", tt.in)
	}
}

func TestContext_Ratio(t *testing.T) {
	ctx, _ := NewContext(10)
	third, err := ctx.Ratio(1, 3)
	require.NoError(t, err)
	assert.Equal(t, "0.3333333333", third.String())

	half, err := ctx.Ratio(5000, 10000)
	require.NoError(t, err)
	assert.Equal(t, "0.5", half.String())

	zero, err := ctx.Ratio(0, 7)
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	_, err = ctx.Ratio(1, 0)
	assert.True(t, errors.Is(err, ErrDomain))
}

func TestContext_Quo_RatioNormalisedRates(t *testing.T) {
	// GIVEN infection pressure 0.01*49 against removal pressure 0.1*1
	ctx := Context{}
	beta, _ := ParseProb("0.01")
	gamma, _ := ParseProb("0.1")
	a := beta.MulInt(49)
	b := gamma.MulInt(1)

	// WHEN normalised
	p, err := ctx.Quo(a, a.Add(b))
	require.NoError(t, err)

	// THEN p = 0.49/0.59
	assert.InDelta(t, 0.49/0.59, p.Float64(), 1e-15)
	assert.True(t, p.InUnitInterval())
}

func TestContext_Pow(t *testing.T) {
	ctx := Context{}
	half, _ := ParseProb("0.5")
	got, err := ctx.Pow(half, 3)
	require.NoError(t, err)
	assert.Equal(t, "0.125", got.String())

	got, err = ctx.Pow(Zero, 0)
	require.NoError(t, err)
	assert.True(t, got.Equal(One), "0^0 = %s", got)

	nine, _ := ParseProb("0.9")
	got, err = ctx.Pow(nine, 100)
	require.NoError(t, err)
	// 0.9^100 = 2.6561398887587477e-05
	assert.InDelta(t, 2.6561398887587477e-05, got.Float64(), 1e-18)

	_, err = ctx.Pow(half, -1)
	assert.True(t, errors.Is(err, ErrDomain))
}

func TestContext_Complement(t *testing.T) {
	p, _ := ParseProb("0.1")
	assert.Equal(t, "0.9", Context{}.Complement(p).String())
}
