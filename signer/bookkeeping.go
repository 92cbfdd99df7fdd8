package signer

import (
	"github.com/drand/frost-signer/ecies"
	"github.com/drand/frost-signer/util"
)

func (r *SigningRound[S]) resetDkg(dkgID uint64) {
	r.dkgID = dkgID
	r.commitments = make(map[uint32]PolyCommitment)
	r.decryptedShares = make(map[uint32]map[uint32][]byte)
	r.invalidPrivateShares = make(map[uint32]bool)
	r.dkgEndEmitted = false
}

// storeCommitments records the commitments carried by a DkgPublicShares
// message. Later arrivals for the same party_id overwrite earlier ones
// (last-writer-wins), matching the coordinator's own at-least-once delivery.
func (r *SigningRound[S]) storeCommitments(shares []PartyCommitment) {
	for _, s := range shares {
		r.commitments[s.PartyID] = s.Commitment
	}
}

// publicSharesDone mirrors the completion predicate of the same name: true
// only while gathering public shares, once every party_id has contributed.
func (r *SigningRound[S]) publicSharesDone() bool {
	return r.state == DkgPublicGather && uint32(len(r.commitments)) == r.numParties
}

// canDkgEnd reports whether every party's private-share contribution has
// been accounted for, successfully or not. It keys off len(decryptedShares),
// not len(invalidPrivateShares)/a separate tracking set: every party whose
// contribution was processed this round gets a decryptedShares entry — even
// an empty one, if every ciphertext from that party failed to decrypt — so
// a party that forges every ciphertext still unblocks DkgEnd instead of
// stalling the round forever.
func (r *SigningRound[S]) canDkgEnd() bool {
	return r.state == DkgPrivateGather && uint32(len(r.decryptedShares)) == r.numParties
}

// buildPrivateShares asks the crypto capability for this signer's private
// shares and turns them into a DkgPrivateShares message. Shares destined for
// a key_id this signer itself owns are not encrypted and sent out — they are
// inserted into decryptedShares directly, so that reconstruction only ever
// waits on the other num_parties-1 senders (spec.md scenario S1).
func (r *SigningRound[S]) buildPrivateShares() (*DkgPrivateShares, error) {
	raw, err := r.signer.Shares()
	if err != nil {
		return nil, err
	}

	ownKeyIDs := r.signer.KeyIDs()
	msg := &DkgPrivateShares{
		DkgID:    r.dkgID,
		SignerID: r.self.Public.SignerID,
	}

	for src, byDst := range raw {
		ps := PartyShares{SrcPartyID: src, Ciphertexts: make(map[uint32]ecies.Ciphertext)}
		for dst0, shareBytes := range byDst {
			dst := dst0 + 1

			if util.Contains(ownKeyIDs, dst) {
				if _, ok := r.decryptedShares[src]; !ok {
					r.decryptedShares[src] = make(map[uint32][]byte)
				}
				r.decryptedShares[src][dst] = shareBytes
				continue
			}

			peer, ok := r.peers.ByKeyID(dst)
			if !ok {
				return nil, ErrInvalidPartyID
			}
			sharedSecret, err := ecies.SharedSecret(r.self.Public.Scheme.KeyGroup, r.self.Private, peer.Key)
			if err != nil {
				return nil, err
			}
			ct, err := ecies.Encrypt(nil, sharedSecret, shareBytes)
			if err != nil {
				return nil, err
			}
			ps.Ciphertexts[dst] = *ct
		}
		msg.Shares = append(msg.Shares, ps)
	}

	return msg, nil
}

// storePrivateShares decrypts every ciphertext addressed to a key_id this
// signer owns. Per spec.md §4.3, a (possibly empty) decryptedShares entry is
// inserted for every src_party_id processed regardless of outcome, so
// canDkgEnd's len(decryptedShares) count advances even for a sender whose
// ciphertexts all fail to decrypt; a decryption failure additionally marks
// that src_party_id as offending. The dst_key_id encoding here is already
// the real, 1-based id (see buildPrivateShares).
func (r *SigningRound[S]) storePrivateShares(senderSignerID uint32, shares []PartyShares) error {
	sender, ok := r.peers.BySignerID(senderSignerID)
	if !ok {
		return ErrInvalidPartyID
	}

	sharedSecret, err := ecies.SharedSecret(r.self.Public.Scheme.KeyGroup, r.self.Private, sender.Key)
	if err != nil {
		return err
	}

	ownKeyIDs := r.signer.KeyIDs()
	for _, ps := range shares {
		if _, ok := r.decryptedShares[ps.SrcPartyID]; !ok {
			r.decryptedShares[ps.SrcPartyID] = make(map[uint32][]byte)
		}
		for dst, ct := range ps.Ciphertexts {
			if !util.Contains(ownKeyIDs, dst) {
				continue
			}
			plain, err := ecies.Decrypt(nil, sharedSecret, &ct)
			if err != nil {
				r.invalidPrivateShares[ps.SrcPartyID] = true
				continue
			}
			r.decryptedShares[ps.SrcPartyID][dst] = plain
		}
	}

	return nil
}

func (r *SigningRound[S]) offendingSenders() []uint32 {
	out := make([]uint32, 0, len(r.invalidPrivateShares))
	for id := range r.invalidPrivateShares {
		out = append(out, id)
	}
	sortUint32s(out)
	return out
}

// finishDkg calls ComputeSecrets, folds any reconstruction errors into
// invalid_private_shares, and builds the DkgEnd this signer emits exactly
// once per round.
func (r *SigningRound[S]) finishDkg() *DkgEnd {
	dkgErrs := r.signer.ComputeSecrets(r.decryptedShares, r.commitments)
	for partyID := range dkgErrs {
		r.invalidPrivateShares[partyID] = true
	}

	offenders := r.offendingSenders()
	status := DkgStatus{Success: len(offenders) == 0}
	if !status.Success {
		status.Diagnostic = newInvalidDkgPrivateShares(offenders).Error()
		status.OffendingSenders = offenders
	}

	r.dkgEndEmitted = true
	return &DkgEnd{
		DkgID:    r.dkgID,
		SignerID: r.self.Public.SignerID,
		Status:   status,
	}
}
