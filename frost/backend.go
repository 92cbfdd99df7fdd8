// Package frost implements signer.CryptoSigner with a FROST threshold
// Schnorr scheme, generalized from a single-key-per-participant DKG to the
// spec's model where one signer may own several key_ids into one shared
// (threshold, total_keys) polynomial. Backend is monomorphized over the
// underlying group so the DKG/signing math never touches an interface
// satisfied at runtime — the group is fixed at the type level.
package frost

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/drand/frost-signer/curvegroup"
	"github.com/drand/frost-signer/signer"
)

var (
	errNoPolynomial   = errors.New("frost: polynomials have not been generated")
	errUnknownParty   = errors.New("frost: commitments missing for party")
	errBadCommitment  = errors.New("frost: commitment point did not parse")
	errShareNotParsed = errors.New("frost: share bytes did not parse as a scalar")
)

// nonceSecret is the private half of a PublicNonce, held only until the
// matching Sign/SignTaproot call consumes it.
type nonceSecret struct {
	d, e curvegroup.Scalar
}

// Backend is a CryptoSigner backed by curve group G.
type Backend[G curvegroup.Group] struct {
	group G

	id         uint32
	keyIDs     []uint32
	numSigners uint32
	numParties uint32
	threshold  uint32

	polys    map[uint32][]curvegroup.Scalar
	secrets  map[uint32]curvegroup.Scalar
	groupKey curvegroup.Point

	nonces map[uint32]nonceSecret
}

// New builds a Backend for a signer owning keyIDs (1-based) out of
// numParties total keys, with the given reconstruction threshold.
func New[G curvegroup.Group](group G, id uint32, keyIDs []uint32, numSigners, numParties, threshold uint32) *Backend[G] {
	owned := append([]uint32(nil), keyIDs...)
	return &Backend[G]{
		group:      group,
		id:         id,
		keyIDs:     owned,
		numSigners: numSigners,
		numParties: numParties,
		threshold:  threshold,
		secrets:    make(map[uint32]curvegroup.Scalar),
	}
}

func (b *Backend[G]) ID() uint32 { return b.id }
func (b *Backend[G]) KeyIDs() []uint32 { return append([]uint32(nil), b.keyIDs...) }
func (b *Backend[G]) NumParties() uint32 { return b.numParties }

// scalarFromUint32 returns the scalar with integer value n, the evaluation
// point convention used throughout this package's polynomial arithmetic.
// The value is built by double-and-add from the scalar one (obtained as
// u * u^-1 for a nonzero u), so it does not depend on the byte order a
// backend's SetBytes expects.
func (b *Backend[G]) scalarFromUint32(n uint32) curvegroup.Scalar {
	var buf [32]byte
	binary.BigEndian.PutUint32(buf[28:], 1)
	u, _ := b.group.NewScalar().SetBytes(buf[:])
	uInv, _ := b.group.NewScalar().Invert(u)
	one := b.group.NewScalar().Mul(u, uInv)

	s := b.group.NewScalar()
	for bit := 31; bit >= 0; bit-- {
		s = b.group.NewScalar().Add(s, s)
		if (n>>uint(bit))&1 == 1 {
			s = b.group.NewScalar().Add(s, one)
		}
	}
	return s
}

func (b *Backend[G]) evalPolynomial(coeffs []curvegroup.Scalar, x curvegroup.Scalar) curvegroup.Scalar {
	result := b.group.NewScalar().Set(coeffs[len(coeffs)-1])
	for i := len(coeffs) - 2; i >= 0; i-- {
		result = b.group.NewScalar().Mul(result, x)
		result = b.group.NewScalar().Add(result, coeffs[i])
	}
	return result
}

func (b *Backend[G]) decodePoint(raw []byte) (curvegroup.Point, error) {
	p, err := b.group.NewPoint().SetBytes(raw)
	if err != nil {
		return nil, errBadCommitment
	}
	return p, nil
}

// ResetPolys discards and regenerates every owned key's secret polynomial,
// invalidating any previously reconstructed secrets and group key.
func (b *Backend[G]) ResetPolys(rng io.Reader) error {
	polys := make(map[uint32][]curvegroup.Scalar, len(b.keyIDs))
	for _, k := range b.keyIDs {
		coeffs := make([]curvegroup.Scalar, b.threshold)
		for i := range coeffs {
			c, err := b.group.RandomScalar(rng)
			if err != nil {
				return err
			}
			coeffs[i] = c
		}
		polys[k] = coeffs
	}
	b.polys = polys
	b.secrets = make(map[uint32]curvegroup.Scalar)
	b.groupKey = nil
	return nil
}

// PolyCommitments returns a Feldman commitment for each owned key,
// generating the underlying polynomials on first call.
func (b *Backend[G]) PolyCommitments(rng io.Reader) ([]signer.PolyCommitment, error) {
	if b.polys == nil {
		if err := b.ResetPolys(rng); err != nil {
			return nil, err
		}
	}

	out := make([]signer.PolyCommitment, 0, len(b.keyIDs))
	for _, k := range b.keyIDs {
		coeffs := b.polys[k]
		commits := make([][]byte, len(coeffs))
		for i, c := range coeffs {
			p := b.group.NewPoint().ScalarMult(c, b.group.Generator())
			commits[i] = p.Bytes()
		}
		out = append(out, signer.PolyCommitment{PartyID: k, Commits: commits})
	}
	return out, nil
}

// Shares evaluates each owned key's polynomial at every key_id in the
// scheme. Per the wire encoding quirk, the returned destination index is
// 0-based (the real, 1-based key_id minus one); package signer adds the 1
// back before looking up the recipient or storing a self-contribution.
func (b *Backend[G]) Shares() (map[uint32]map[uint32][]byte, error) {
	if b.polys == nil {
		return nil, errNoPolynomial
	}

	out := make(map[uint32]map[uint32][]byte, len(b.keyIDs))
	for _, k := range b.keyIDs {
		coeffs := b.polys[k]
		dsts := make(map[uint32][]byte, b.numParties)
		for dst0 := uint32(0); dst0 < b.numParties; dst0++ {
			realDst := dst0 + 1
			share := b.evalPolynomial(coeffs, b.scalarFromUint32(realDst))
			dsts[dst0] = share.Bytes()
		}
		out[k] = dsts
	}
	return out, nil
}

func (b *Backend[G]) verifyShare(share curvegroup.Scalar, x uint32, pc signer.PolyCommitment) error {
	lhs := b.group.NewPoint().ScalarMult(share, b.group.Generator())

	rhs := b.group.NewPoint()
	xPow := b.scalarFromUint32(1)
	xScalar := b.scalarFromUint32(x)
	for _, raw := range pc.Commits {
		c, err := b.decodePoint(raw)
		if err != nil {
			return err
		}
		term := b.group.NewPoint().ScalarMult(xPow, c)
		rhs = b.group.NewPoint().Add(rhs, term)
		xPow = b.group.NewScalar().Mul(xPow, xScalar)
	}

	if !lhs.Equal(rhs) {
		return errors.New("frost: share failed Feldman verification")
	}
	return nil
}

// ComputeSecrets reconstructs this signer's secret for every owned key from
// decryptedShares, verifying each contribution against the sender's
// PolyCommitment, and derives the single group public key shared by every
// key_id in the scheme.
func (b *Backend[G]) ComputeSecrets(decryptedShares map[uint32]map[uint32][]byte, commitments map[uint32]signer.PolyCommitment) map[uint32]signer.DkgError {
	errs := make(map[uint32]signer.DkgError)

	groupKey := b.group.NewPoint()
	for _, pc := range commitments {
		if len(pc.Commits) == 0 {
			continue
		}
		c0, err := b.decodePoint(pc.Commits[0])
		if err != nil {
			continue
		}
		groupKey = b.group.NewPoint().Add(groupKey, c0)
	}
	b.groupKey = groupKey

	sums := make(map[uint32]curvegroup.Scalar, len(b.keyIDs))
	for _, k := range b.keyIDs {
		sums[k] = b.group.NewScalar()
	}

	for src, byDst := range decryptedShares {
		pc, havePC := commitments[src]
		for _, k := range b.keyIDs {
			raw, ok := byDst[k]
			if !ok {
				continue
			}

			shareScalar, err := b.group.NewScalar().SetBytes(raw)
			if err != nil {
				errs[src] = signer.DkgError{PartyID: src, Reason: errShareNotParsed.Error()}
				continue
			}
			if !havePC {
				errs[src] = signer.DkgError{PartyID: src, Reason: errUnknownParty.Error()}
				continue
			}
			if err := b.verifyShare(shareScalar, k, pc); err != nil {
				errs[src] = signer.DkgError{PartyID: src, Reason: err.Error()}
				continue
			}

			sums[k] = b.group.NewScalar().Add(sums[k], shareScalar)
		}
	}

	for _, k := range b.keyIDs {
		b.secrets[k] = sums[k]
	}
	return errs
}

// GroupKey returns the scheme's group public key, available once
// ComputeSecrets has run.
func (b *Backend[G]) GroupKey() curvegroup.Point {
	return b.groupKey
}
