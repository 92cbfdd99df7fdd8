// Package kyberfrost wires frost.Backend to the edwards25519 curve via
// package kyberedwards.
package kyberfrost

import (
	"github.com/drand/frost-signer/curvegroup/kyberedwards"
	"github.com/drand/frost-signer/frost"
	"github.com/drand/frost-signer/signer"
)

// Backend is a FROST signer over edwards25519.
type Backend = frost.Backend[*kyberedwards.Group]

// New builds an edwards25519-backed FROST signer for a participant owning
// keyIDs out of numParties total keys.
func New(id uint32, keyIDs []uint32, numSigners, numParties, threshold uint32) *Backend {
	return frost.New(kyberedwards.New(), id, keyIDs, numSigners, numParties, threshold)
}

var _ signer.CryptoSigner = (*Backend)(nil)
