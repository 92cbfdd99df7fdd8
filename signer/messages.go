package signer

import (
	"bytes"
	"encoding/binary"

	"github.com/drand/frost-signer/ecies"
)

// MessageType tags the payload carried by a Packet. It is the first byte of
// every CanonicalBytes encoding; dispatch routes on the concrete Go type.
type MessageType uint8

const (
	MsgDkgBegin MessageType = iota
	MsgDkgPrivateBegin
	MsgDkgPublicShares
	MsgDkgPrivateShares
	MsgDkgEnd
	MsgNonceRequest
	MsgNonceResponse
	MsgSignatureShareRequest
	MsgSignatureShareResponse
)

// Message is anything the dispatcher can route and the envelope package can
// sign: a type tag plus a deterministic byte encoding of its content.
type Message interface {
	Type() MessageType
	CanonicalBytes() []byte
}

// Packet is a signed Message as it travels to or from the coordinator.
type Packet struct {
	Sig []byte
	Msg Message
}

func putUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func putUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func putBytes(buf *bytes.Buffer, b []byte) {
	putUint32(buf, uint32(len(b)))
	buf.Write(b)
}

func putUint32Slice(buf *bytes.Buffer, vs []uint32) {
	putUint32(buf, uint32(len(vs)))
	for _, v := range vs {
		putUint32(buf, v)
	}
}

// DkgBegin instructs every signer to discard any in-flight round and start a
// fresh one, identified by DkgID.
type DkgBegin struct {
	DkgID uint64
}

func (m DkgBegin) Type() MessageType { return MsgDkgBegin }

func (m DkgBegin) CanonicalBytes() []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(MsgDkgBegin))
	putUint64(&buf, m.DkgID)
	return buf.Bytes()
}

// DkgPrivateBegin instructs every signer, already in DkgPrivateDistribute
// once all public commitments have been gathered, to send its private shares
// and move to DkgPrivateGather.
type DkgPrivateBegin struct {
	DkgID uint64
}

func (m DkgPrivateBegin) Type() MessageType { return MsgDkgPrivateBegin }

func (m DkgPrivateBegin) CanonicalBytes() []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(MsgDkgPrivateBegin))
	putUint64(&buf, m.DkgID)
	return buf.Bytes()
}

// PartyCommitment pairs a party_id with the PolyCommitment it published.
type PartyCommitment struct {
	PartyID    uint32
	Commitment PolyCommitment
}

func (pc PartyCommitment) canonicalBytes(buf *bytes.Buffer) {
	putUint32(buf, pc.PartyID)
	putUint32(buf, pc.Commitment.PartyID)
	putUint32(buf, uint32(len(pc.Commitment.Commits)))
	for _, c := range pc.Commitment.Commits {
		putBytes(buf, c)
	}
}

// DkgPublicShares is broadcast once per signer, carrying the PolyCommitment
// for every key_id that signer owns.
type DkgPublicShares struct {
	DkgID    uint64
	SignerID uint32
	Shares   []PartyCommitment
}

func (m DkgPublicShares) Type() MessageType { return MsgDkgPublicShares }

func (m DkgPublicShares) CanonicalBytes() []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(MsgDkgPublicShares))
	putUint64(&buf, m.DkgID)
	putUint32(&buf, m.SignerID)
	putUint32(&buf, uint32(len(m.Shares)))
	for _, s := range m.Shares {
		s.canonicalBytes(&buf)
	}
	return buf.Bytes()
}

// PartyShares carries one owned key's private shares, encrypted individually
// per destination key_id. The map is keyed by the real, 1-based key_id: the
// 0-based index from CryptoSigner.Shares has already been incremented (see
// the key-id encoding quirk on key.PublicKeys.ByKeyID).
type PartyShares struct {
	SrcPartyID  uint32
	Ciphertexts map[uint32]ecies.Ciphertext
}

func (ps PartyShares) canonicalBytes(buf *bytes.Buffer) {
	putUint32(buf, ps.SrcPartyID)
	dsts := make([]uint32, 0, len(ps.Ciphertexts))
	for dst := range ps.Ciphertexts {
		dsts = append(dsts, dst)
	}
	sortUint32s(dsts)
	putUint32(buf, uint32(len(dsts)))
	for _, dst := range dsts {
		ct := ps.Ciphertexts[dst]
		putUint32(buf, dst)
		putBytes(buf, ct.Nonce)
		putBytes(buf, ct.Ciphertext)
	}
}

func sortUint32s(vs []uint32) {
	for i := 1; i < len(vs); i++ {
		for j := i; j > 0 && vs[j-1] > vs[j]; j-- {
			vs[j-1], vs[j] = vs[j], vs[j-1]
		}
	}
}

// DkgPrivateShares is broadcast once per signer, carrying that signer's
// private shares for every key_id in the scheme except the ones it owns
// itself, which it keeps locally.
type DkgPrivateShares struct {
	DkgID    uint64
	SignerID uint32
	Shares   []PartyShares
}

func (m DkgPrivateShares) Type() MessageType { return MsgDkgPrivateShares }

func (m DkgPrivateShares) CanonicalBytes() []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(MsgDkgPrivateShares))
	putUint64(&buf, m.DkgID)
	putUint32(&buf, m.SignerID)
	putUint32(&buf, uint32(len(m.Shares)))
	for _, s := range m.Shares {
		s.canonicalBytes(&buf)
	}
	return buf.Bytes()
}

// DkgStatus reports whether this signer's reconstruction succeeded, and if
// not, which senders were at fault.
type DkgStatus struct {
	Success          bool
	Diagnostic       string
	OffendingSenders []uint32
}

// DkgEnd is emitted exactly once per round, when every commitment and
// private share this signer needs has arrived.
type DkgEnd struct {
	DkgID    uint64
	SignerID uint32
	Status   DkgStatus
}

func (m DkgEnd) Type() MessageType { return MsgDkgEnd }

func (m DkgEnd) CanonicalBytes() []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(MsgDkgEnd))
	putUint64(&buf, m.DkgID)
	putUint32(&buf, m.SignerID)
	if m.Status.Success {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
	putBytes(&buf, []byte(m.Status.Diagnostic))
	putUint32Slice(&buf, m.Status.OffendingSenders)
	return buf.Bytes()
}

// NonceRequest asks every signer in the quorum for fresh nonces.
type NonceRequest struct {
	DkgID      uint64
	SignID     uint64
	SignIterID uint64
}

func (m NonceRequest) Type() MessageType { return MsgNonceRequest }

func (m NonceRequest) CanonicalBytes() []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(MsgNonceRequest))
	putUint64(&buf, m.DkgID)
	putUint64(&buf, m.SignID)
	putUint64(&buf, m.SignIterID)
	return buf.Bytes()
}

// NonceResponse carries one signer's fresh public nonces, one per owned key.
type NonceResponse struct {
	DkgID      uint64
	SignID     uint64
	SignIterID uint64
	SignerID   uint32
	KeyIDs     []uint32
	Nonces     []PublicNonce
}

func (m NonceResponse) Type() MessageType { return MsgNonceResponse }

func (m NonceResponse) CanonicalBytes() []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(MsgNonceResponse))
	putUint64(&buf, m.DkgID)
	putUint64(&buf, m.SignID)
	putUint64(&buf, m.SignIterID)
	putUint32(&buf, m.SignerID)
	putUint32Slice(&buf, m.KeyIDs)
	putUint32(&buf, uint32(len(m.Nonces)))
	for _, n := range m.Nonces {
		putUint32(&buf, n.KeyID)
		putBytes(&buf, n.Hiding)
		putBytes(&buf, n.Binding)
	}
	return buf.Bytes()
}

// SignatureShareRequest asks the quorum to produce signature shares over
// Message, given the NonceResponses gathered for this sign iteration.
type SignatureShareRequest struct {
	DkgID          uint64
	SignID         uint64
	SignIterID     uint64
	SignerIDs      []uint32
	NonceResponses []NonceResponse
	Message        []byte
	IsTaproot      bool
	MerkleRoot     []byte
}

func (m SignatureShareRequest) Type() MessageType { return MsgSignatureShareRequest }

func (m SignatureShareRequest) CanonicalBytes() []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(MsgSignatureShareRequest))
	putUint64(&buf, m.DkgID)
	putUint64(&buf, m.SignID)
	putUint64(&buf, m.SignIterID)
	putUint32Slice(&buf, m.SignerIDs)
	putUint32(&buf, uint32(len(m.NonceResponses)))
	for _, nr := range m.NonceResponses {
		buf.Write(nr.CanonicalBytes())
	}
	putBytes(&buf, m.Message)
	if m.IsTaproot {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
	putBytes(&buf, m.MerkleRoot)
	return buf.Bytes()
}

// SignatureShareResponse carries one signer's signature shares, one per
// owned key participating in this sign iteration.
type SignatureShareResponse struct {
	DkgID           uint64
	SignID          uint64
	SignIterID      uint64
	SignerID        uint32
	SignatureShares []SignatureShare
}

func (m SignatureShareResponse) Type() MessageType { return MsgSignatureShareResponse }

func (m SignatureShareResponse) CanonicalBytes() []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(MsgSignatureShareResponse))
	putUint64(&buf, m.DkgID)
	putUint64(&buf, m.SignID)
	putUint64(&buf, m.SignIterID)
	putUint32(&buf, m.SignerID)
	putUint32(&buf, uint32(len(m.SignatureShares)))
	for _, s := range m.SignatureShares {
		putUint32(&buf, s.KeyID)
		putBytes(&buf, s.Z)
	}
	return buf.Bytes()
}
