package signer

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ErrInvalidPartyID is returned when a message names a party_id or
// signer_id this signer has no PublicKeys entry for.
var ErrInvalidPartyID = errors.New("signer: invalid party id")

// ErrInvalidDkgPublicShares marks a DkgPublicShares message carrying a
// commitment whose length does not match the threshold; the dispatcher logs
// it and drops the message. Commitment points are not parsed here.
var ErrInvalidDkgPublicShares = errors.New("signer: invalid dkg public shares")

// ErrInvalidNonceResponse is returned when a NonceResponse in a
// SignatureShareRequest carries a different number of key_ids than nonces.
// Its key_ids are not checked against the keys the sender owns.
var ErrInvalidNonceResponse = errors.New("signer: invalid nonce response")

// ErrInvalidSignatureShare is returned when a SignatureShareRequest is for a
// sign iteration other than the last one this signer issued nonces for, or
// does not list this signer in its SignerIDs.
var ErrInvalidSignatureShare = errors.New("signer: invalid signature share")

// InvalidDkgPrivateShares reports every sender whose private share failed to
// decrypt or verify this round. OffendingSenders drives invalid_private_shares
// bookkeeping and the DkgEnd diagnostic.
type InvalidDkgPrivateShares struct {
	OffendingSenders []uint32
	Err              error
}

func newInvalidDkgPrivateShares(offenders []uint32) *InvalidDkgPrivateShares {
	var merr *multierror.Error
	for _, id := range offenders {
		merr = multierror.Append(merr, fmt.Errorf("party %d: invalid private share", id))
	}
	var err error
	if merr != nil {
		err = merr.ErrorOrNil()
	}
	return &InvalidDkgPrivateShares{OffendingSenders: offenders, Err: err}
}

func (e *InvalidDkgPrivateShares) Error() string {
	if e.Err == nil {
		return "signer: invalid dkg private shares"
	}
	return e.Err.Error()
}

func (e *InvalidDkgPrivateShares) Unwrap() error {
	return e.Err
}

// BadStateChange reports an attempted transition the state machine graph
// does not allow.
type BadStateChange struct {
	From State
	To   State
}

func (e *BadStateChange) Error() string {
	return fmt.Sprintf("signer: invalid state change %s -> %s", e.From, e.To)
}
