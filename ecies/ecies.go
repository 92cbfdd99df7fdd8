// Package ecies implements the encrypted share channel of spec.md §4.2: a
// static-static Diffie-Hellman shared secret, HKDF-derived into an AES-256-GCM
// key, used to encrypt the private DKG shares exchanged between signers.
package ecies

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"errors"
	"hash"

	"github.com/drand/kyber"
	"golang.org/x/crypto/hkdf"

	"github.com/drand/frost-signer/entropy"
)

// DefaultHash is the hash function used to derive the AES key from the
// shared secret.
var DefaultHash = sha256.New

// Ciphertext is an authenticated ciphertext produced by Encrypt.
type Ciphertext struct {
	Nonce      []byte
	Ciphertext []byte
}

// SharedSecret computes the static-static Diffie-Hellman point for the
// ordered pair (priv, peerPub) and returns its marshaled bytes. Unlike
// drand's ephemeral-static ECIES, this point depends only on the two
// signers' long-lived network keys, so it is computed once per ordered pair
// and reused for every key_id ciphertext exchanged with that peer in a
// round (spec.md §4.2).
func SharedSecret(g kyber.Group, priv kyber.Scalar, peerPub kyber.Point) ([]byte, error) {
	dh := g.Point().Mul(priv, peerPub)
	return dh.MarshalBinary()
}

func deriveKey(fn func() hash.Hash, sharedSecret []byte) ([]byte, error) {
	if fn == nil {
		fn = DefaultHash
	}
	reader := hkdf.New(fn, sharedSecret, nil, nil)
	key := make([]byte, 32)
	n, err := reader.Read(key)
	if err != nil {
		return nil, err
	} else if n != len(key) {
		return nil, errors.New("ecies: not enough bytes read from the shared secret")
	}
	return key, nil
}

// Encrypt derives an AES-256-GCM key from sharedSecret via HKDF and seals
// msg under a fresh random nonce.
func Encrypt(fn func() hash.Hash, sharedSecret, msg []byte) (*Ciphertext, error) {
	key, err := deriveKey(fn, sharedSecret)
	if err != nil {
		return nil, err
	}

	nonce, err := entropy.GetRandom(nil, 12)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Ciphertext{
		Nonce:      nonce,
		Ciphertext: aesgcm.Seal(nil, nonce, msg, nil),
	}, nil
}

// Decrypt reverses Encrypt, returning an error if the shared secret is wrong
// or the ciphertext has been tampered with.
func Decrypt(fn func() hash.Hash, sharedSecret []byte, ct *Ciphertext) ([]byte, error) {
	key, err := deriveKey(fn, sharedSecret)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return aesgcm.Open(nil, ct.Nonce, ct.Ciphertext, nil)
}
