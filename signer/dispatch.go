package signer

import (
	"crypto/rand"

	"github.com/drand/frost-signer/envelope"
)

// ProcessInboundMessages feeds every Packet in batch through the dispatcher
// in order and returns every outbound Packet produced, signed under this
// signer's network key.
func (r *SigningRound[S]) ProcessInboundMessages(batch []Packet) []Packet {
	var out []Packet
	for _, pkt := range batch {
		out = append(out, r.dispatch(pkt)...)
	}
	return out
}

func (r *SigningRound[S]) sign(msg Message) Packet {
	return Packet{Sig: envelope.Sign(r.self, msg), Msg: msg}
}

// verifySender checks a peer-originated message's envelope signature.
// Coordinator-originated messages (DkgBegin, DkgPrivateBegin, NonceRequest,
// SignatureShareRequest) carry no signer_id and are not verified here —
// authenticating the coordinator itself is out of scope.
func (r *SigningRound[S]) verifySender(signerID uint32, msg Message, sig []byte) error {
	sender, ok := r.peers.BySignerID(signerID)
	if !ok {
		return ErrInvalidPartyID
	}
	return envelope.Verify(sender, msg, sig)
}

// dispatch routes pkt to its handler. The four DKG message types additionally
// run through checkCompletion afterward: spec.md §4.4 requires the
// (public_shares_done, can_dkg_end) predicates to be evaluated after every
// DKG handler, not just the ones that obviously complete a phase, so that
// e.g. DkgPublicGather->DkgPrivateDistribute fires the moment the last
// commitment arrives rather than waiting for a later message. NonceRequest
// and SignatureShareRequest are exempt: the signing responder (component F)
// is orthogonal to this state machine per spec.md §4.5 and checkCompletion
// would be a no-op for it anyway (its predicates only ever reference the DKG
// states).
func (r *SigningRound[S]) dispatch(pkt Packet) []Packet {
	switch msg := pkt.Msg.(type) {
	case DkgBegin:
		return append(r.onDkgBegin(msg), r.checkCompletion()...)
	case DkgPrivateBegin:
		return append(r.onDkgPrivateBegin(msg), r.checkCompletion()...)
	case DkgPublicShares:
		if err := r.verifySender(msg.SignerID, pkt.Msg, pkt.Sig); err != nil {
			r.log.Warnw("dropping dkg public shares with bad signature", "signer_id", msg.SignerID, "err", err)
			return nil
		}
		return append(r.onDkgPublicShares(msg), r.checkCompletion()...)
	case DkgPrivateShares:
		if err := r.verifySender(msg.SignerID, pkt.Msg, pkt.Sig); err != nil {
			r.log.Warnw("dropping dkg private shares with bad signature", "signer_id", msg.SignerID, "err", err)
			return nil
		}
		return append(r.onDkgPrivateShares(msg), r.checkCompletion()...)
	case NonceRequest:
		return r.onNonceRequest(msg)
	case SignatureShareRequest:
		return r.onSignatureShareRequest(msg)
	default:
		r.log.Warnw("dropping message with no handler", "type", pkt.Msg.Type())
		return nil
	}
}

// checkCompletion evaluates the two §4.4 completion predicates and advances
// the state machine when one holds. publicSharesDone and canDkgEnd are each
// gated on the state they apply to (DkgPublicGather, DkgPrivateGather), so
// at most one of them can be true at a time.
func (r *SigningRound[S]) checkCompletion() []Packet {
	if r.publicSharesDone() {
		if err := r.transition(DkgPrivateDistribute); err != nil {
			r.log.Errorw("cannot auto-advance to private distribute", "err", err)
		}
		return nil
	}

	if r.canDkgEnd() && !r.dkgEndEmitted {
		end := r.finishDkg()
		if err := r.transition(Idle); err != nil {
			r.log.Errorw("cannot return to idle", "err", err)
		}
		return []Packet{r.sign(*end)}
	}

	return nil
}

func (r *SigningRound[S]) onDkgBegin(msg DkgBegin) []Packet {
	if err := r.transition(DkgPublicDistribute); err != nil {
		r.log.Errorw("cannot start dkg", "err", err)
		return nil
	}
	r.resetDkg(msg.DkgID)

	if err := r.signer.ResetPolys(rand.Reader); err != nil {
		r.log.Errorw("failed to reset polynomials", "err", err)
		return nil
	}
	commitments, err := r.signer.PolyCommitments(rand.Reader)
	if err != nil {
		r.log.Errorw("failed to generate poly commitments", "err", err)
		return nil
	}

	parties := make([]PartyCommitment, 0, len(commitments))
	for _, c := range commitments {
		parties = append(parties, PartyCommitment{PartyID: c.PartyID, Commitment: c})
	}
	r.storeCommitments(parties)

	out := DkgPublicShares{DkgID: r.dkgID, SignerID: r.self.Public.SignerID, Shares: parties}
	if err := r.transition(DkgPublicGather); err != nil {
		r.log.Errorw("cannot move to gather", "err", err)
		return nil
	}
	return []Packet{r.sign(out)}
}

func (r *SigningRound[S]) onDkgPublicShares(msg DkgPublicShares) []Packet {
	if r.state != DkgPublicGather {
		r.log.Warnw("dropping dkg public shares outside gather", "state", r.state.String())
		return nil
	}
	if _, ok := r.peers.BySignerID(msg.SignerID); !ok {
		r.log.Warnw("dropping dkg public shares from unknown signer", "signer_id", msg.SignerID)
		return nil
	}
	for _, share := range msg.Shares {
		if uint32(len(share.Commitment.Commits)) != r.threshold {
			r.log.Warnw("dropping dkg public shares with bad commitment length",
				"signer_id", msg.SignerID, "party_id", share.PartyID, "err", ErrInvalidDkgPublicShares)
			return nil
		}
	}
	r.storeCommitments(msg.Shares)
	return nil
}

// onDkgPrivateBegin moves DkgPrivateDistribute->DkgPrivateGather. The only
// edge into DkgPrivateDistribute is the auto-advance in checkCompletion once
// publicSharesDone(), so a DkgPrivateBegin that arrives before every
// commitment is in (state still DkgPublicGather) is correctly rejected by
// transition as a BadStateChange rather than accepted against a partial
// commitment set.
func (r *SigningRound[S]) onDkgPrivateBegin(msg DkgPrivateBegin) []Packet {
	if msg.DkgID != r.dkgID {
		r.log.Warnw("dropping dkg private begin for stale round", "dkg_id", msg.DkgID)
		return nil
	}
	if err := r.transition(DkgPrivateGather); err != nil {
		r.log.Errorw("cannot move to private gather", "err", err)
		return nil
	}

	out, err := r.buildPrivateShares()
	if err != nil {
		r.log.Errorw("failed to build private shares", "err", err)
		return nil
	}

	return []Packet{r.sign(*out)}
}

func (r *SigningRound[S]) onDkgPrivateShares(msg DkgPrivateShares) []Packet {
	if r.state != DkgPrivateGather {
		r.log.Warnw("dropping dkg private shares outside gather", "state", r.state.String())
		return nil
	}
	if err := r.storePrivateShares(msg.SignerID, msg.Shares); err != nil {
		r.log.Warnw("dropping dkg private shares", "signer_id", msg.SignerID, "err", err)
		return nil
	}
	return nil
}

func (r *SigningRound[S]) onNonceRequest(msg NonceRequest) []Packet {
	resp, err := r.handleNonceRequest(msg)
	if err != nil {
		r.log.Errorw("failed to handle nonce request", "err", err)
		return nil
	}
	return []Packet{r.sign(*resp)}
}

func (r *SigningRound[S]) onSignatureShareRequest(msg SignatureShareRequest) []Packet {
	resp, err := r.handleSignatureShareRequest(msg)
	if err != nil {
		r.log.Errorw("failed to handle signature share request", "err", err)
		return nil
	}
	return []Packet{r.sign(*resp)}
}
