package signer

import (
	"github.com/drand/frost-signer/key"
	"github.com/drand/frost-signer/log"
)

// State is a node in the signer state machine of component D.
type State int

const (
	Idle State = iota
	DkgPublicDistribute
	DkgPublicGather
	DkgPrivateDistribute
	DkgPrivateGather
	SignGather
	Signed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case DkgPublicDistribute:
		return "DkgPublicDistribute"
	case DkgPublicGather:
		return "DkgPublicGather"
	case DkgPrivateDistribute:
		return "DkgPrivateDistribute"
	case DkgPrivateGather:
		return "DkgPrivateGather"
	case SignGather:
		return "SignGather"
	case Signed:
		return "Signed"
	default:
		return "Unknown"
	}
}

// transitions is the state machine graph. DkgPublicGather->DkgPublicDistribute
// and DkgPrivateDistribute->DkgPublicDistribute are restart edges: the
// coordinator may re-issue DkgBegin mid-round to recover from a stalled
// party, and onDkgBegin takes them when a DkgBegin arrives in either state
// (see Open Questions in DESIGN.md).
// SignGather and Signed are likewise declared and reachable only on paper:
// the signing responder (signing.go) is orthogonal to this state machine and
// never calls transition, so no handler ever drives Idle->SignGather.
var transitions = map[State]map[State]bool{
	Idle:                 {DkgPublicDistribute: true, SignGather: true},
	DkgPublicDistribute:  {DkgPublicGather: true},
	DkgPublicGather:      {DkgPrivateDistribute: true, DkgPublicDistribute: true},
	DkgPrivateDistribute: {DkgPrivateGather: true, DkgPublicDistribute: true},
	DkgPrivateGather:     {Idle: true},
	SignGather:           {Signed: true},
}

func isValidTransition(from, to State) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	return allowed[to]
}

// SigningRound is one signer's view of the state machine: the crypto
// capability S plus the bookkeeping needed to drive it from messages.
type SigningRound[S CryptoSigner] struct {
	log log.Logger

	signer S
	self   *key.Pair
	peers  *key.PublicKeys

	state State
	dkgID uint64

	threshold  uint32
	numSigners uint32
	numParties uint32

	commitments          map[uint32]PolyCommitment
	decryptedShares      map[uint32]map[uint32][]byte
	invalidPrivateShares map[uint32]bool
	dkgEndEmitted        bool

	signID     uint64
	signIterID uint64
}

// New builds an idle SigningRound around the given crypto capability.
func New[S CryptoSigner](l log.Logger, cryptoSigner S, self *key.Pair, peers *key.PublicKeys, threshold, numSigners, numParties uint32) *SigningRound[S] {
	return &SigningRound[S]{
		log:        l,
		signer:     cryptoSigner,
		self:       self,
		peers:      peers,
		state:      Idle,
		threshold:  threshold,
		numSigners: numSigners,
		numParties: numParties,
	}
}

// State returns the round's current state.
func (r *SigningRound[S]) State() State {
	return r.state
}

func (r *SigningRound[S]) transition(to State) error {
	if !isValidTransition(r.state, to) {
		return &BadStateChange{From: r.state, To: to}
	}
	r.log.Debugw("state transition", "from", r.state.String(), "to", to.String())
	r.state = to
	return nil
}
