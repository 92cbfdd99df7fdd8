package signer

import (
	"bytes"
	"testing"

	"github.com/drand/frost-signer/ecies"
)

func TestCanonicalBytesDetectsTampering(t *testing.T) {
	a := DkgPublicShares{
		DkgID:    1,
		SignerID: 2,
		Shares: []PartyCommitment{
			{PartyID: 2, Commitment: PolyCommitment{PartyID: 2, Commits: [][]byte{{1, 2, 3}}}},
		},
	}
	b := a
	b.SignerID = 3

	if bytes.Equal(a.CanonicalBytes(), b.CanonicalBytes()) {
		t.Error("differing SignerID must produce differing canonical bytes")
	}
}

func TestPartySharesCanonicalBytesOrderIndependent(t *testing.T) {
	ps1 := PartyShares{
		SrcPartyID: 1,
		Ciphertexts: map[uint32]ecies.Ciphertext{
			2: {Nonce: []byte("n2"), Ciphertext: []byte("c2")},
			3: {Nonce: []byte("n3"), Ciphertext: []byte("c3")},
		},
	}
	ps2 := PartyShares{
		SrcPartyID:  1,
		Ciphertexts: map[uint32]ecies.Ciphertext{},
	}
	ps2.Ciphertexts[3] = ps1.Ciphertexts[3]
	ps2.Ciphertexts[2] = ps1.Ciphertexts[2]

	var buf1, buf2 bytes.Buffer
	ps1.canonicalBytes(&buf1)
	ps2.canonicalBytes(&buf2)

	if !bytes.Equal(buf1.Bytes(), buf2.Bytes()) {
		t.Error("canonical bytes must not depend on map iteration order")
	}
}

func TestMessageTypeTags(t *testing.T) {
	cases := []struct {
		msg  Message
		want MessageType
	}{
		{DkgBegin{}, MsgDkgBegin},
		{DkgPrivateBegin{}, MsgDkgPrivateBegin},
		{DkgPublicShares{}, MsgDkgPublicShares},
		{DkgPrivateShares{}, MsgDkgPrivateShares},
		{DkgEnd{}, MsgDkgEnd},
		{NonceRequest{}, MsgNonceRequest},
		{NonceResponse{}, MsgNonceResponse},
		{SignatureShareRequest{}, MsgSignatureShareRequest},
		{SignatureShareResponse{}, MsgSignatureShareResponse},
	}
	for _, c := range cases {
		if c.msg.Type() != c.want {
			t.Errorf("%T.Type() = %v, want %v", c.msg, c.msg.Type(), c.want)
		}
	}
}
