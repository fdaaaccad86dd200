package poly_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaiNikhilTadepalli/NeuralSutra/poly"
)

func TestMul_Convolution(t *testing.T) {
	// (x + 2)(x + 3) = x^2 + 5x + 6
	got := poly.FromInts(1, 2).Mul(poly.FromInts(1, 3))
	assert.True(t, got.Equal(poly.FromInts(1, 5, 6)), "got %s", got.String("x"))
}

func TestMul_KeepsZeroSlots(t *testing.T) {
	// (x^2 + 1)(x^2 - 1) = x^4 - 1; the x^3..x^1 slots stay zero.
	got := poly.FromInts(1, 0, 1).Mul(poly.FromInts(1, 0, -1))
	require.Len(t, got, 5)
	assert.Equal(t, "x^4 - 1", got.String("x"))
}

func TestMul_Rational(t *testing.T) {
	a := poly.New(big.NewRat(1, 2), big.NewRat(3, 4), big.NewRat(5, 1))
	b := poly.New(big.NewRat(2, 3), big.NewRat(-1, 5))
	got := a.Mul(b)
	want := poly.New(big.NewRat(1, 3), big.NewRat(2, 5), big.NewRat(191, 60), big.NewRat(-1, 1))
	assert.True(t, got.Equal(want), "got %s", got.String("x"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, 1, poly.FromInts(0, 0, 2, 1).Normalize().Degree())
	assert.Equal(t, 0, poly.FromInts(0, 0).Normalize().Degree())
	assert.True(t, poly.Poly{}.Normalize().IsZero())
}

func TestAddSub(t *testing.T) {
	p := poly.FromInts(1, 0, 0)
	q := poly.FromInts(2, 1)
	assert.Equal(t, "x^2 + 2*x + 1", p.Add(q).String("x"))
	assert.Equal(t, "x^2 - 2*x - 1", p.Sub(q).String("x"))
	assert.True(t, p.Sub(p).IsZero())
}

func TestPow(t *testing.T) {
	got := poly.FromInts(1, 1).Pow(3)
	assert.True(t, got.Equal(poly.FromInts(1, 3, 3, 1)))
	assert.True(t, poly.FromInts(5, 7).Pow(0).Equal(poly.FromInts(1)))
}

func TestDerivative(t *testing.T) {
	got := poly.FromInts(3, 0, -2, 7).Derivative()
	assert.True(t, got.Equal(poly.FromInts(9, 0, -2)))
	assert.Empty(t, poly.FromInts(4).Derivative())
}

func TestDivMod(t *testing.T) {
	// x^2 + 5x + 7 = (x + 2)(x + 3) + 1
	q, r, err := poly.FromInts(1, 5, 7).DivMod(poly.FromInts(1, 2))
	require.NoError(t, err)
	assert.Equal(t, "x + 3", q.String("x"))
	assert.Equal(t, "1", r.String("x"))

	// 12x + 7 = 3/4 (16x + 8) + 1
	q, r, err = poly.FromInts(12, 7).DivMod(poly.FromInts(16, 8))
	require.NoError(t, err)
	assert.Equal(t, "3/4", q.String("x"))
	assert.Equal(t, "1", r.String("x"))

	_, _, err = poly.FromInts(1, 1).DivMod(poly.FromInts(0))
	assert.ErrorIs(t, err, poly.ErrZeroDivisor)
}

func TestDivMod_LowerDegreeNumerator(t *testing.T) {
	q, r, err := poly.FromInts(1, 1).DivMod(poly.FromInts(1, 0, 1))
	require.NoError(t, err)
	assert.True(t, q.IsZero())
	assert.Equal(t, "x + 1", r.String("x"))
}

func TestAntiderivative(t *testing.T) {
	// d/dx of the antiderivative gives back the input.
	p := poly.FromInts(3, 2, 1)
	got := p.Antiderivative()
	assert.Equal(t, "x^3 + x^2 + x", got.String("x"))
	assert.True(t, got.Derivative().Equal(p))
}

func TestEval(t *testing.T) {
	got := poly.FromInts(1, -3, 2).Eval(big.NewRat(1, 2))
	assert.Equal(t, 0, got.Cmp(big.NewRat(3, 4)))
}

func TestString(t *testing.T) {
	tests := []struct {
		p    poly.Poly
		want string
	}{
		{poly.FromInts(0), "0"},
		{poly.FromInts(-1, 0), "-x"},
		{poly.New(big.NewRat(-1, 2), big.NewRat(0, 1), big.NewRat(3, 1)), "-1/2*x^2 + 3"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.p.String("x"))
	}
}

func TestClone_NoAliasing(t *testing.T) {
	p := poly.FromInts(1, 2)
	q := p.Clone()
	q[0].SetInt64(9)
	assert.Equal(t, int64(1), p[0].Num().Int64())
}
