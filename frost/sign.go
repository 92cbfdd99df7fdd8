package frost

import (
	"io"

	"github.com/drand/frost-signer/curvegroup"
	"github.com/drand/frost-signer/signer"
)

// GenNonces produces a fresh hiding/binding nonce pair for every owned key,
// discarding whatever GenNonces produced on a previous call.
func (b *Backend[G]) GenNonces(rng io.Reader) ([]signer.PublicNonce, error) {
	nonces := make(map[uint32]nonceSecret, len(b.keyIDs))
	out := make([]signer.PublicNonce, 0, len(b.keyIDs))

	for _, k := range b.keyIDs {
		d, err := b.group.RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		e, err := b.group.RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		nonces[k] = nonceSecret{d: d, e: e}

		hiding := b.group.NewPoint().ScalarMult(d, b.group.Generator())
		binding := b.group.NewPoint().ScalarMult(e, b.group.Generator())
		out = append(out, signer.PublicNonce{KeyID: k, Hiding: hiding.Bytes(), Binding: binding.Bytes()})
	}

	b.nonces = nonces
	return out, nil
}

func (b *Backend[G]) bindingFactors(msg []byte, nonces []signer.PublicNonce) (map[uint32]curvegroup.Scalar, error) {
	var commBytes []byte
	for _, n := range nonces {
		commBytes = append(commBytes, b.scalarFromUint32(n.KeyID).Bytes()...)
		commBytes = append(commBytes, n.Hiding...)
		commBytes = append(commBytes, n.Binding...)
	}

	factors := make(map[uint32]curvegroup.Scalar, len(nonces))
	for _, n := range nonces {
		rho, err := b.group.HashToScalar([]byte("rho"), msg, commBytes, b.scalarFromUint32(n.KeyID).Bytes())
		if err != nil {
			return nil, err
		}
		factors[n.KeyID] = rho
	}
	return factors, nil
}

func (b *Backend[G]) groupCommitment(nonces []signer.PublicNonce, factors map[uint32]curvegroup.Scalar) (curvegroup.Point, error) {
	R := b.group.NewPoint()
	for _, n := range nonces {
		hiding, err := b.decodePoint(n.Hiding)
		if err != nil {
			return nil, err
		}
		binding, err := b.decodePoint(n.Binding)
		if err != nil {
			return nil, err
		}
		rho := factors[n.KeyID]
		rhoE := b.group.NewPoint().ScalarMult(rho, binding)
		term := b.group.NewPoint().Add(hiding, rhoE)
		R = b.group.NewPoint().Add(R, term)
	}
	return R, nil
}

func (b *Backend[G]) lagrangeCoefficient(k uint32, nonces []signer.PublicNonce) curvegroup.Scalar {
	num := b.scalarFromUint32(1)
	den := b.scalarFromUint32(1)
	x := b.scalarFromUint32(k)

	for _, n := range nonces {
		if n.KeyID == k {
			continue
		}
		other := b.scalarFromUint32(n.KeyID)
		num = b.group.NewScalar().Mul(num, other)
		diff := b.group.NewScalar().Sub(other, x)
		den = b.group.NewScalar().Mul(den, diff)
	}

	denInv, _ := b.group.NewScalar().Invert(den)
	return b.group.NewScalar().Mul(num, denInv)
}

// tapTweak derives the BIP340-style tweak scalar binding the group key to
// merkleRoot, following the split this scheme's original implementation
// makes between a plain Schnorr signature and a taproot-tweaked one.
func (b *Backend[G]) tapTweak(merkleRoot []byte) (curvegroup.Scalar, error) {
	return b.group.HashToScalar([]byte("TapTweak"), b.groupKey.Bytes(), merkleRoot)
}

func (b *Backend[G]) sign(msg []byte, nonces []signer.PublicNonce, merkleRoot []byte) ([]signer.SignatureShare, error) {
	factors, err := b.bindingFactors(msg, nonces)
	if err != nil {
		return nil, err
	}
	R, err := b.groupCommitment(nonces, factors)
	if err != nil {
		return nil, err
	}

	effectiveGroupKey := b.groupKey
	tweak := b.group.NewScalar()
	if merkleRoot != nil {
		tweak, err = b.tapTweak(merkleRoot)
		if err != nil {
			return nil, err
		}
		tweakPoint := b.group.NewPoint().ScalarMult(tweak, b.group.Generator())
		effectiveGroupKey = b.group.NewPoint().Add(b.groupKey, tweakPoint)
	}

	c, err := b.group.HashToScalar(R.Bytes(), effectiveGroupKey.Bytes(), msg)
	if err != nil {
		return nil, err
	}

	shares := make([]signer.SignatureShare, 0, len(b.keyIDs))
	for _, k := range b.keyIDs {
		n, ok := b.nonces[k]
		if !ok {
			return nil, errNoPolynomial
		}
		secret, ok := b.secrets[k]
		if !ok {
			return nil, errNoPolynomial
		}

		tweakedSecret := b.group.NewScalar().Add(secret, tweak)
		lambda := b.lagrangeCoefficient(k, nonces)
		rho := factors[k]

		z := b.group.NewScalar().Mul(rho, n.e)
		z = b.group.NewScalar().Add(n.d, z)
		lambdaS := b.group.NewScalar().Mul(lambda, tweakedSecret)
		lambdaSC := b.group.NewScalar().Mul(lambdaS, c)
		z = b.group.NewScalar().Add(z, lambdaSC)

		shares = append(shares, signer.SignatureShare{KeyID: k, Z: z.Bytes()})
	}

	b.nonces = nil
	return shares, nil
}

// Sign produces signature shares for this signer's owned keys over msg.
// signerIDs is accepted to satisfy signer.CryptoSigner but is unused: the
// Lagrange interpolation and binding factors here are computed over
// key_ids, one polynomial-evaluation point per share, not over signer_ids.
func (b *Backend[G]) Sign(msg []byte, signerIDs, keyIDs []uint32, nonces []signer.PublicNonce) ([]signer.SignatureShare, error) {
	return b.sign(msg, nonces, nil)
}

// SignTaproot is Sign with the group public key tweaked by merkleRoot
// before the challenge and signature-share computation.
func (b *Backend[G]) SignTaproot(msg []byte, signerIDs, keyIDs []uint32, nonces []signer.PublicNonce, merkleRoot []byte) ([]signer.SignatureShare, error) {
	return b.sign(msg, nonces, merkleRoot)
}
