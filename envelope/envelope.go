// Package envelope signs and verifies the canonical byte encoding of
// protocol messages with a signer's network key (spec.md §4.1).
package envelope

import (
	"fmt"

	"github.com/drand/frost-signer/key"
)

// Canonical is implemented by every protocol message variant (package
// signer) so envelope never needs to know their concrete shape.
type Canonical interface {
	CanonicalBytes() []byte
}

// Sign signs msg's canonical bytes with pair's private key. Per spec.md
// §4.1/§7, signing is infallible in practice: a signer that cannot produce a
// signature cannot participate correctly, so Sign panics instead of
// returning an error callers would have no sane way to recover from.
func Sign(pair *key.Pair, msg Canonical) []byte {
	sig, err := pair.Public.Scheme.AuthScheme.Sign(pair.Private, msg.CanonicalBytes())
	if err != nil {
		panic(fmt.Sprintf("envelope: signing failed, signer cannot participate: %v", err))
	}
	return sig
}

// Verify checks sig against msg's canonical bytes under sender's network
// public key.
func Verify(sender *key.Identity, msg Canonical, sig []byte) error {
	return sender.Scheme.AuthScheme.Verify(sender.Key, msg.CanonicalBytes(), sig)
}
