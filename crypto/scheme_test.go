package crypto

import (
	"testing"

	"github.com/drand/kyber/util/random"
	"github.com/stretchr/testify/require"
)

func TestSchemeSignVerify(t *testing.T) {
	s := New()

	priv := s.KeyGroup.Scalar().Pick(random.New())
	pub := s.KeyGroup.Point().Mul(priv, nil)

	msg := []byte("hello signer")
	sig, err := s.AuthScheme.Sign(priv, msg)
	require.NoError(t, err)

	require.NoError(t, s.AuthScheme.Verify(pub, msg, sig))
}

func TestSchemeRejectsTamperedMessage(t *testing.T) {
	s := New()

	priv := s.KeyGroup.Scalar().Pick(random.New())
	pub := s.KeyGroup.Point().Mul(priv, nil)

	sig, err := s.AuthScheme.Sign(priv, []byte("original"))
	require.NoError(t, err)

	require.Error(t, s.AuthScheme.Verify(pub, []byte("tampered"), sig))
}

func TestSchemeName(t *testing.T) {
	s := New()
	require.Equal(t, DefaultSchemeName, s.String())
}
