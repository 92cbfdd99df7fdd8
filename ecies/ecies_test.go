package ecies

import (
	"testing"

	"github.com/drand/kyber/util/random"
	"github.com/stretchr/testify/require"

	"github.com/drand/frost-signer/crypto"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	g := crypto.New().KeyGroup

	privA := g.Scalar().Pick(random.New())
	pubA := g.Point().Mul(privA, nil)
	privB := g.Scalar().Pick(random.New())
	pubB := g.Point().Mul(privB, nil)

	secretA, err := SharedSecret(g, privA, pubB)
	require.NoError(t, err)
	secretB, err := SharedSecret(g, privB, pubA)
	require.NoError(t, err)
	require.Equal(t, secretA, secretB, "static-static DH must agree on both sides")

	msg := []byte("a feldman share, 32 bytes-ish!!")
	ct, err := Encrypt(nil, secretA, msg)
	require.NoError(t, err)

	plain, err := Decrypt(nil, secretB, ct)
	require.NoError(t, err)
	require.Equal(t, msg, plain)
}

func TestSharedSecretIsReusableAcrossMessages(t *testing.T) {
	g := crypto.New().KeyGroup
	privA := g.Scalar().Pick(random.New())
	privB := g.Scalar().Pick(random.New())
	pubB := g.Point().Mul(privB, nil)
	pubA := g.Point().Mul(privA, nil)

	secret, err := SharedSecret(g, privA, pubB)
	require.NoError(t, err)

	ct1, err := Encrypt(nil, secret, []byte("share for key_id 0"))
	require.NoError(t, err)
	ct2, err := Encrypt(nil, secret, []byte("share for key_id 1"))
	require.NoError(t, err)

	require.NotEqual(t, ct1.Nonce, ct2.Nonce, "each message must get a fresh nonce")

	secretB, err := SharedSecret(g, privB, pubA)
	require.NoError(t, err)

	p1, err := Decrypt(nil, secretB, ct1)
	require.NoError(t, err)
	require.Equal(t, "share for key_id 0", string(p1))
}

func TestDecryptFailsWithWrongSecret(t *testing.T) {
	g := crypto.New().KeyGroup
	privA := g.Scalar().Pick(random.New())
	privB := g.Scalar().Pick(random.New())
	pubB := g.Point().Mul(privB, nil)

	secret, err := SharedSecret(g, privA, pubB)
	require.NoError(t, err)

	ct, err := Encrypt(nil, secret, []byte("secret share"))
	require.NoError(t, err)

	wrongSecret, err := SharedSecret(g, privB, pubB)
	require.NoError(t, err)

	_, err = Decrypt(nil, wrongSecret, ct)
	require.Error(t, err)
}
