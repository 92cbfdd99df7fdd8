package key

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/drand/frost-signer/crypto"
)

func TestNewKeyPairIsSelfSigned(t *testing.T) {
	p, err := NewKeyPair(1, nil)
	require.NoError(t, err)
	require.NoError(t, p.Public.ValidSignature())
}

func TestValidSignatureRejectsTamperedKey(t *testing.T) {
	p, err := NewKeyPair(1, nil)
	require.NoError(t, err)

	other, err := NewKeyPair(2, p.Public.Scheme)
	require.NoError(t, err)

	p.Public.Key = other.Public.Key
	require.Error(t, p.Public.ValidSignature())
}

func TestPublicKeysDualLookup(t *testing.T) {
	scheme := crypto.New()
	pks := NewPublicKeys()

	signer1, err := NewKeyPair(1, scheme)
	require.NoError(t, err)
	signer2, err := NewKeyPair(2, scheme)
	require.NoError(t, err)

	require.NoError(t, pks.Add(signer1.Public, []uint32{1}))
	require.NoError(t, pks.Add(signer2.Public, []uint32{2, 3}))

	id, ok := pks.BySignerID(2)
	require.True(t, ok)
	require.True(t, id.Key.Equal(signer2.Public.Key))

	id, ok = pks.ByKeyID(3)
	require.True(t, ok)
	require.True(t, id.Key.Equal(signer2.Public.Key))

	_, ok = pks.ByKeyID(99)
	require.False(t, ok)
}

func TestPublicKeysAddRejectsBadSignature(t *testing.T) {
	pks := NewPublicKeys()
	signer1, err := NewKeyPair(1, nil)
	require.NoError(t, err)

	signer1.Public.Signature = []byte("garbage")
	require.ErrorIs(t, pks.Add(signer1.Public, []uint32{1}), ErrInvalidIdentity)
}
