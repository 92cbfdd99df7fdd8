package signer

import (
	"fmt"
	"io"
)

// PolyCommitment is the public material a party publishes for its secret
// polynomial: a Feldman commitment to each coefficient (serialized group
// points), keyed by party_id. Since every party in this scheme holds
// exactly one share, party_id and key_id coincide.
type PolyCommitment struct {
	PartyID uint32
	Commits [][]byte
}

// PublicNonce is one owned key's hiding/binding commitment pair for a
// signing iteration.
type PublicNonce struct {
	KeyID   uint32
	Hiding  []byte
	Binding []byte
}

// SignatureShare is one owned key's contribution to a Schnorr signature.
type SignatureShare struct {
	KeyID uint32
	Z     []byte
}

// DkgError explains why reconstructing the secret contribution from PartyID
// failed (bad ciphertext parse, failed Feldman verification, ...).
type DkgError struct {
	PartyID uint32
	Reason  string
}

func (e DkgError) Error() string {
	return fmt.Sprintf("party %d: %s", e.PartyID, e.Reason)
}

// CryptoSigner is the cryptographic capability of component A: polynomial
// commitments, private shares, secret reconstruction, nonces, and signature
// shares. A SigningRound only ever calls through this interface — package
// frost provides the concrete implementation(s).
type CryptoSigner interface {
	// ID returns this participant's signer_id.
	ID() uint32
	// KeyIDs returns the key_ids this signer owns.
	KeyIDs() []uint32
	// NumParties returns the total number of key shares in the scheme
	// (one party per key_id, so this equals total_keys).
	NumParties() uint32

	// PolyCommitments returns one commitment per owned key, generating
	// fresh polynomials on first call.
	PolyCommitments(rng io.Reader) ([]PolyCommitment, error)
	// ResetPolys discards and regenerates every owned polynomial.
	ResetPolys(rng io.Reader) error

	// Shares returns, for each owned key_id, the private share destined for
	// every key_id in the scheme. Destination keys are 0-based; see the
	// key-id encoding quirk documented on key.PublicKeys.ByKeyID.
	Shares() (map[uint32]map[uint32][]byte, error)

	// ComputeSecrets reconstructs this signer's secret contribution for
	// each owned key from decryptedShares (keyed by src party_id, then by
	// this signer's own key_id — both 1-based) and the full set of
	// PolyCommitments gathered this round (keyed by party_id). It returns
	// one DkgError per sender whose share failed to parse or verify.
	ComputeSecrets(decryptedShares map[uint32]map[uint32][]byte, commitments map[uint32]PolyCommitment) map[uint32]DkgError

	// GenNonces produces fresh public nonces, one per owned key. Each call
	// discards any nonces generated by a previous call.
	GenNonces(rng io.Reader) ([]PublicNonce, error)

	// Sign produces signature shares for this signer's owned keys against
	// the given quorum.
	Sign(msg []byte, signerIDs, keyIDs []uint32, nonces []PublicNonce) ([]SignatureShare, error)
	// SignTaproot is Sign with the group public key tweaked by merkleRoot
	// before the challenge and signature-share computation.
	SignTaproot(msg []byte, signerIDs, keyIDs []uint32, nonces []PublicNonce, merkleRoot []byte) ([]SignatureShare, error)
}
