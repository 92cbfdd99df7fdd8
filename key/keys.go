// Package key holds the long-lived network identity every signer uses to
// authenticate protocol messages (package envelope) and to derive the
// pairwise shared secrets of the encrypted share channel (package ecies).
package key

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/drand/kyber"
	"github.com/drand/kyber/util/random"

	"github.com/drand/frost-signer/crypto"
)

// Pair is a signer's long-lived network private key and its self-signed
// public Identity.
type Pair struct {
	Private kyber.Scalar
	Public  *Identity
}

// Identity is the public half of a Pair: a signer_id, its network public
// key, and a signature binding the two together.
type Identity struct {
	SignerID  uint32
	Key       kyber.Point
	Signature []byte
	Scheme    *crypto.Scheme
}

// Hash returns the bytes that get signed/verified: the scheme name (to
// prevent scheme-confusion across deployments) followed by the signer_id and
// the marshaled public key.
func (i *Identity) Hash() []byte {
	var buf []byte
	buf = append(buf, []byte(i.Scheme.Name)...)
	var idBuf [4]byte
	binary.BigEndian.PutUint32(idBuf[:], i.SignerID)
	buf = append(buf, idBuf[:]...)
	keyBytes, _ := i.Key.MarshalBinary()
	buf = append(buf, keyBytes...)
	return buf
}

// ValidSignature reports whether Signature is a valid self-signature over
// Hash().
func (i *Identity) ValidSignature() error {
	return i.Scheme.AuthScheme.Verify(i.Key, i.Hash(), i.Signature)
}

// SelfSign signs the public identity with the private key, setting
// Public.Signature.
func (p *Pair) SelfSign() error {
	sig, err := p.Public.Scheme.AuthScheme.Sign(p.Private, p.Public.Hash())
	if err != nil {
		return err
	}
	p.Public.Signature = sig
	return nil
}

// NewKeyPair generates a fresh, self-signed network key pair for signerID
// under scheme. If scheme is nil, crypto.New() is used.
func NewKeyPair(signerID uint32, scheme *crypto.Scheme) (*Pair, error) {
	if scheme == nil {
		scheme = crypto.New()
	}

	priv := scheme.KeyGroup.Scalar().Pick(random.New())
	pub := scheme.KeyGroup.Point().Mul(priv, nil)

	p := &Pair{
		Private: priv,
		Public: &Identity{
			SignerID: signerID,
			Key:      pub,
			Scheme:   scheme,
		},
	}
	if err := p.SelfSign(); err != nil {
		return nil, err
	}
	return p, nil
}

// PublicKeys is the dual lookup view of spec.md §6: every participant's
// network identity, reachable both by signer_id and by key_id. key_id
// lookups are 1-based; see the key-id encoding quirk documented on
// ByKeyID.
type PublicKeys struct {
	signers map[uint32]*Identity
	keyIDs  map[uint32]*Identity
}

// NewPublicKeys returns an empty PublicKeys view.
func NewPublicKeys() *PublicKeys {
	return &PublicKeys{
		signers: make(map[uint32]*Identity),
		keyIDs:  make(map[uint32]*Identity),
	}
}

var ErrInvalidIdentity = errors.New("identity failed self-signature verification")

// Add registers id as the network identity for signerOwnedKeyIDs — the
// 1-based key_ids this signer owns — after checking its self-signature.
func (pk *PublicKeys) Add(id *Identity, signerOwnedKeyIDs []uint32) error {
	if err := id.ValidSignature(); err != nil {
		return fmt.Errorf("%w: signer %d: %w", ErrInvalidIdentity, id.SignerID, err)
	}
	pk.signers[id.SignerID] = id
	for _, kid := range signerOwnedKeyIDs {
		pk.keyIDs[kid] = id
	}
	return nil
}

// BySignerID looks up a participant's identity by signer_id.
func (pk *PublicKeys) BySignerID(signerID uint32) (*Identity, bool) {
	id, ok := pk.signers[signerID]
	return id, ok
}

// ByKeyID looks up a participant's identity by 1-based key_id. Callers
// holding a 0-based private-share destination (spec.md's "key-id encoding
// quirk": get_shares() emits dst_key_id 0-based) must add 1 before calling
// this, e.g. ByKeyID(dstKeyID + 1).
func (pk *PublicKeys) ByKeyID(keyID uint32) (*Identity, bool) {
	id, ok := pk.keyIDs[keyID]
	return id, ok
}
