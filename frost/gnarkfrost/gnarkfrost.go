// Package gnarkfrost wires frost.Backend to the BabyJubJub curve via
// package gnarkbjj.
package gnarkfrost

import (
	"github.com/drand/frost-signer/curvegroup/gnarkbjj"
	"github.com/drand/frost-signer/frost"
	"github.com/drand/frost-signer/signer"
)

// Backend is a FROST signer over BabyJubJub.
type Backend = frost.Backend[*gnarkbjj.Group]

// New builds a BabyJubJub-backed FROST signer for a participant owning
// keyIDs out of numParties total keys.
func New(id uint32, keyIDs []uint32, numSigners, numParties, threshold uint32) *Backend {
	return frost.New(gnarkbjj.New(), id, keyIDs, numSigners, numParties, threshold)
}

var _ signer.CryptoSigner = (*Backend)(nil)
