package signer

import (
	"crypto/rand"

	"github.com/drand/frost-signer/util"
)

// handleNonceRequest returns fresh nonces for every key this signer owns.
// Per spec.md §4.5 the signing responder does not gate on or mutate the DKG
// state machine — it runs identically whether a round is Idle or mid-DKG.
func (r *SigningRound[S]) handleNonceRequest(req NonceRequest) (*NonceResponse, error) {
	r.signID = req.SignID
	r.signIterID = req.SignIterID

	nonces, err := r.signer.GenNonces(rand.Reader)
	if err != nil {
		return nil, err
	}

	return &NonceResponse{
		DkgID:      req.DkgID,
		SignID:     req.SignID,
		SignIterID: req.SignIterID,
		SignerID:   r.self.Public.SignerID,
		KeyIDs:     r.signer.KeyIDs(),
		Nonces:     nonces,
	}, nil
}

// handleSignatureShareRequest produces this signer's signature shares over
// the flattened quorum of NonceResponses. It is gated on the sign iteration
// (SignID and SignIterID must match the last NonceRequest this signer
// answered) and on quorum membership (this signer's id must appear in
// SignerIDs); there is no DKG state-machine gate here, mirroring
// handleNonceRequest.
func (r *SigningRound[S]) handleSignatureShareRequest(req SignatureShareRequest) (*SignatureShareResponse, error) {
	if req.SignID != r.signID || req.SignIterID != r.signIterID {
		return nil, ErrInvalidSignatureShare
	}
	if !util.Contains(req.SignerIDs, r.self.Public.SignerID) {
		return nil, ErrInvalidSignatureShare
	}

	var signerIDs, keyIDs []uint32
	var nonces []PublicNonce
	for _, nr := range req.NonceResponses {
		if len(nr.KeyIDs) != len(nr.Nonces) {
			return nil, ErrInvalidNonceResponse
		}
		signerIDs = append(signerIDs, nr.SignerID)
		keyIDs = append(keyIDs, nr.KeyIDs...)
		nonces = append(nonces, nr.Nonces...)
	}

	var shares []SignatureShare
	var err error
	if req.IsTaproot {
		shares, err = r.signer.SignTaproot(req.Message, signerIDs, keyIDs, nonces, req.MerkleRoot)
	} else {
		shares, err = r.signer.Sign(req.Message, signerIDs, keyIDs, nonces)
	}
	if err != nil {
		return nil, err
	}

	return &SignatureShareResponse{
		DkgID:           req.DkgID,
		SignID:          req.SignID,
		SignIterID:      req.SignIterID,
		SignerID:        r.self.Public.SignerID,
		SignatureShares: shares,
	}, nil
}
