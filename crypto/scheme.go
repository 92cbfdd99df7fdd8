// Package crypto bundles the kyber group and signature scheme used to
// authenticate a signer's network identity and the protocol messages it
// sends (the envelope layer, package envelope, signs against this scheme).
package crypto

import (
	"crypto/cipher"

	"github.com/drand/kyber"
	"github.com/drand/kyber/group/edwards25519"
	"github.com/drand/kyber/sign"
	"github.com/drand/kyber/sign/schnorr"
	"github.com/drand/kyber/util/random"
)

// Scheme bundles the group used for network keys with the schnorr signature
// scheme used to self-sign identities and to authenticate protocol messages.
// It is not meant to be marshaled: construct it with New.
type Scheme struct {
	// Name identifies the scheme; it is hashed into every signed message to
	// avoid scheme-confusion attacks between deployments.
	Name string
	// KeyGroup is the group network identities and message signatures live in.
	KeyGroup kyber.Group
	// AuthScheme signs and verifies network identities and protocol messages.
	AuthScheme sign.Scheme
}

type schnorrSuite struct {
	kyber.Group
}

func (s *schnorrSuite) RandomStream() cipher.Stream {
	return random.New()
}

// DefaultSchemeName identifies the edwards25519 schnorr scheme used by this
// signer.
const DefaultSchemeName = "frost-signer-ed25519-schnorr"

// New instantiates the default scheme: edwards25519 with kyber's schnorr
// signature scheme, used both for static-static ECIES key agreement
// (package ecies) and for envelope authentication (package envelope).
func New() *Scheme {
	keyGroup := edwards25519.NewBlakeSHA256Ed25519()
	authScheme := schnorr.NewScheme(&schnorrSuite{keyGroup})

	return &Scheme{
		Name:       DefaultSchemeName,
		KeyGroup:   keyGroup,
		AuthScheme: authScheme,
	}
}

func (s *Scheme) String() string {
	if s == nil {
		return ""
	}
	return s.Name
}
