package gnarkbjj

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarArithmeticRoundTrip(t *testing.T) {
	g := New()
	a, err := g.RandomScalar(rand.Reader)
	require.NoError(t, err)
	b, err := g.RandomScalar(rand.Reader)
	require.NoError(t, err)

	sum := g.NewScalar().Add(a, b)
	back := g.NewScalar().Sub(sum, b)
	require.True(t, back.Equal(a))
}

func TestScalarMultAndEncoding(t *testing.T) {
	g := New()
	a, err := g.RandomScalar(rand.Reader)
	require.NoError(t, err)

	p := g.NewPoint().ScalarMult(a, g.Generator())
	require.False(t, p.IsIdentity())

	encoded := p.Bytes()
	decoded, err := g.NewPoint().SetBytes(encoded)
	require.NoError(t, err)
	require.True(t, decoded.Equal(p))
}

func TestIdentityPointIsIdentity(t *testing.T) {
	g := New()
	require.True(t, g.NewPoint().IsIdentity())
	require.False(t, g.Generator().IsIdentity())
}

func TestInvertZeroFails(t *testing.T) {
	g := New()
	zero := g.NewScalar()
	require.True(t, zero.IsZero())

	_, err := g.NewScalar().Invert(zero)
	require.Error(t, err)
}
