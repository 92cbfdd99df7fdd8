package signer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/drand/frost-signer/crypto"
	"github.com/drand/frost-signer/ecies"
	"github.com/drand/frost-signer/envelope"
	"github.com/drand/frost-signer/frost/kyberfrost"
	"github.com/drand/frost-signer/key"
	"github.com/drand/frost-signer/testlogger"
)

type constellation struct {
	rounds []*SigningRound[*kyberfrost.Backend]
}

func buildConstellation(t *testing.T, n int, threshold uint32) *constellation {
	t.Helper()

	scheme := crypto.New()
	peers := key.NewPublicKeys()
	pairs := make([]*key.Pair, n)

	for i := 0; i < n; i++ {
		signerID := uint32(i + 1)
		pair, err := key.NewKeyPair(signerID, scheme)
		require.NoError(t, err)
		pairs[i] = pair
		require.NoError(t, peers.Add(pair.Public, []uint32{signerID}))
	}

	rounds := make([]*SigningRound[*kyberfrost.Backend], n)
	for i := 0; i < n; i++ {
		signerID := uint32(i + 1)
		backend := kyberfrost.New(signerID, []uint32{signerID}, uint32(n), uint32(n), threshold)
		rounds[i] = New(testlogger.New(t), backend, pairs[i], peers, threshold, uint32(n), uint32(n))
	}

	return &constellation{rounds: rounds}
}

// runDkg drives every round through DkgBegin -> DkgEnd, applying corrupt to
// each outbound DkgPrivateShares packet before it is delivered (identity
// function for a clean run). It returns each round's terminal DkgEnd.
func (c *constellation) runDkg(t *testing.T, corrupt func(from, to int, pkt Packet) Packet) []DkgEnd {
	t.Helper()
	n := len(c.rounds)

	publicPkts := make([]Packet, n)
	for i, r := range c.rounds {
		out := r.ProcessInboundMessages([]Packet{{Msg: DkgBegin{DkgID: 1}}})
		require.Len(t, out, 1)
		publicPkts[i] = out[0]
	}

	for i, r := range c.rounds {
		var inbound []Packet
		for j, pkt := range publicPkts {
			if i == j {
				continue
			}
			inbound = append(inbound, pkt)
		}
		replies := r.ProcessInboundMessages(inbound)
		require.Empty(t, replies)
	}

	privatePkts := make([]Packet, n)
	for i, r := range c.rounds {
		out := r.ProcessInboundMessages([]Packet{{Msg: DkgPrivateBegin{DkgID: 1}}})
		require.Len(t, out, 1)
		privatePkts[i] = out[0]
	}

	ends := make([]*DkgEnd, n)
	for i, r := range c.rounds {
		var inbound []Packet
		for j, pkt := range privatePkts {
			if i == j {
				continue
			}
			if corrupt != nil {
				pkt = corrupt(j, i, pkt)
			}
			inbound = append(inbound, pkt)
		}
		replies := r.ProcessInboundMessages(inbound)
		require.Len(t, replies, 1)
		end, ok := replies[0].Msg.(DkgEnd)
		require.True(t, ok)
		ends[i] = &end
	}

	out := make([]DkgEnd, n)
	for i, e := range ends {
		out[i] = *e
	}
	return out
}

func TestDkgHappyPathAllSignersSucceed(t *testing.T) {
	c := buildConstellation(t, 3, 2)
	ends := c.runDkg(t, nil)

	for _, end := range ends {
		require.True(t, end.Status.Success, "diagnostic: %s", end.Status.Diagnostic)
	}
	for _, r := range c.rounds {
		require.Equal(t, Idle, r.State())
	}
}

func TestDkgCorruptedPrivateShareIsAttributedToSender(t *testing.T) {
	c := buildConstellation(t, 3, 2)

	corrupt := func(from, to int, pkt Packet) Packet {
		if from != 1 { // signer 2 (index 1) sends corrupted shares
			return pkt
		}
		dps := pkt.Msg.(DkgPrivateShares)
		corrupted := dps
		corrupted.Shares = append([]PartyShares(nil), dps.Shares...)

		// Flip a byte in every ciphertext so AEAD authentication fails. The
		// maps are copied so the original packet is left intact, and signer 2
		// signs the corrupted message itself so it passes envelope checks.
		for i := range corrupted.Shares {
			cts := make(map[uint32]ecies.Ciphertext, len(corrupted.Shares[i].Ciphertexts))
			for dst, ct := range corrupted.Shares[i].Ciphertexts {
				tampered := ct
				tampered.Ciphertext = append([]byte(nil), ct.Ciphertext...)
				if len(tampered.Ciphertext) > 0 {
					tampered.Ciphertext[0] ^= 0xFF
				}
				cts[dst] = tampered
			}
			corrupted.Shares[i].Ciphertexts = cts
		}
		return Packet{Sig: envelope.Sign(c.rounds[from].self, corrupted), Msg: corrupted}
	}

	ends := c.runDkg(t, corrupt)

	for i, end := range ends {
		if i == 1 {
			continue // signer 2's own view of its own shares is untouched
		}
		require.False(t, end.Status.Success)
		require.Contains(t, end.Status.OffendingSenders, uint32(2))
	}
}

// runSign drives a 2-of-n quorum through NonceRequest/NonceResponse and
// SignatureShareRequest/SignatureShareResponse once DKG has already
// completed on c.
func (c *constellation) runSign(t *testing.T, quorum []int, msg []byte, merkleRoot []byte) []SignatureShareResponse {
	t.Helper()

	var nonceResponses []NonceResponse
	for _, idx := range quorum {
		out := c.rounds[idx].ProcessInboundMessages([]Packet{{Msg: NonceRequest{DkgID: 1, SignID: 7, SignIterID: 1}}})
		require.Len(t, out, 1)
		nr, ok := out[0].Msg.(NonceResponse)
		require.True(t, ok)
		nonceResponses = append(nonceResponses, nr)
	}

	var signerIDs []uint32
	for _, nr := range nonceResponses {
		signerIDs = append(signerIDs, nr.SignerID)
	}

	req := SignatureShareRequest{
		DkgID:          1,
		SignID:         7,
		SignIterID:     1,
		SignerIDs:      signerIDs,
		NonceResponses: nonceResponses,
		Message:        msg,
		IsTaproot:      merkleRoot != nil,
		MerkleRoot:     merkleRoot,
	}

	var responses []SignatureShareResponse
	for _, idx := range quorum {
		out := c.rounds[idx].ProcessInboundMessages([]Packet{{Msg: req}})
		require.Len(t, out, 1)
		resp, ok := out[0].Msg.(SignatureShareResponse)
		require.True(t, ok)
		responses = append(responses, resp)
	}
	return responses
}

func TestSignHappyPathProducesOneShareResponsePerQuorumMember(t *testing.T) {
	c := buildConstellation(t, 3, 2)
	ends := c.runDkg(t, nil)
	for _, end := range ends {
		require.True(t, end.Status.Success)
	}

	responses := c.runSign(t, []int{0, 1}, []byte("message to sign"), nil)
	require.Len(t, responses, 2)
	for _, resp := range responses {
		require.Len(t, resp.SignatureShares, 1)
	}
}

func TestSignatureShareRequestRejectsNonQuorumMember(t *testing.T) {
	c := buildConstellation(t, 3, 2)
	_ = c.runDkg(t, nil)

	// Signer 3 (index 2) never issued a nonce for this sign iteration, so
	// its signer_id is absent from SignerIDs.
	r := c.rounds[2]
	r.dkgID, r.signID, r.signIterID = 1, 7, 1

	req := SignatureShareRequest{
		DkgID:      1,
		SignID:     7,
		SignIterID: 1,
		SignerIDs:  []uint32{1, 2},
		Message:    []byte("x"),
	}
	out := r.ProcessInboundMessages([]Packet{{Msg: req}})
	require.Empty(t, out)
	require.Equal(t, Idle, r.State())
}

func TestSignTaprootProducesDifferentSharesThanPlainSign(t *testing.T) {
	c := buildConstellation(t, 3, 2)
	ends := c.runDkg(t, nil)
	for _, end := range ends {
		require.True(t, end.Status.Success)
	}

	msg := []byte("taproot spend")
	plain := c.runSign(t, []int{0, 1}, msg, nil)
	taproot := c.runSign(t, []int{0, 1}, msg, []byte("merkle-root"))

	require.NotEqual(t, plain[0].SignatureShares[0].Z, taproot[0].SignatureShares[0].Z)
}
