package octaindex

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// Bech32m human-readable prefixes, one per identifier type. The prefix
// doubles as a type tag in text form, mirroring the binary header bits.
const (
	HRPGalactic = "g3d1"
	HRPIndex    = "i3d1"
	HRPRoute    = "r3d1"
	HRPHilbert  = "h3d1"
)

func encodeText(hrp string, raw []byte) (string, error) {
	conv, err := bech32.ConvertBits(raw, 8, 5, true)
	if err != nil {
		return "", &TextError{Reason: "bit regroup failed", cause: err}
	}
	s, err := bech32.EncodeM(hrp, conv)
	if err != nil {
		return "", &TextError{Reason: "bech32m encode failed", cause: err}
	}
	return s, nil
}

func decodeText(hrp string, s string, wantLen int) ([]byte, error) {
	gotHRP, data, version, err := bech32.DecodeGeneric(s)
	if err != nil {
		return nil, &TextError{Reason: "bech32m decode failed", cause: err}
	}
	if version != bech32.VersionM {
		return nil, &TextError{Reason: "not a bech32m string"}
	}
	if gotHRP != hrp {
		return nil, &TextError{Reason: fmt.Sprintf("wrong prefix: expected %q, got %q", hrp, gotHRP)}
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, &TextError{Reason: "bit regroup failed", cause: err}
	}
	if len(raw) != wantLen {
		return nil, &TextError{Reason: fmt.Sprintf("wrong payload length: expected %d bytes, got %d", wantLen, len(raw))}
	}
	return raw, nil
}

// EncodeText renders the key as a Bech32m string with the i3d1 prefix.
func (id Index64) EncodeText() (string, error) {
	return encodeText(HRPIndex, binary.BigEndian.AppendUint64(nil, id.value))
}

// DecodeIndex64Text parses a Bech32m-encoded Index64.
func DecodeIndex64Text(s string) (Index64, error) {
	raw, err := decodeText(HRPIndex, s, 8)
	if err != nil {
		return Index64{}, err
	}
	return Index64FromBits(binary.BigEndian.Uint64(raw))
}

// EncodeText renders the key as a Bech32m string with the r3d1 prefix.
func (r Route64) EncodeText() (string, error) {
	return encodeText(HRPRoute, binary.BigEndian.AppendUint64(nil, r.value))
}

// DecodeRoute64Text parses a Bech32m-encoded Route64.
func DecodeRoute64Text(s string) (Route64, error) {
	raw, err := decodeText(HRPRoute, s, 8)
	if err != nil {
		return Route64{}, err
	}
	return Route64FromBits(binary.BigEndian.Uint64(raw))
}

// EncodeText renders the key as a Bech32m string with the h3d1 prefix.
func (id Hilbert64) EncodeText() (string, error) {
	return encodeText(HRPHilbert, binary.BigEndian.AppendUint64(nil, id.value))
}

// DecodeHilbert64Text parses a Bech32m-encoded Hilbert64.
func DecodeHilbert64Text(s string) (Hilbert64, error) {
	raw, err := decodeText(HRPHilbert, s, 8)
	if err != nil {
		return Hilbert64{}, err
	}
	return Hilbert64FromBits(binary.BigEndian.Uint64(raw))
}

// EncodeText renders the ID as a Bech32m string with the g3d1 prefix.
func (g Galactic128) EncodeText() (string, error) {
	return encodeText(HRPGalactic, g.AppendBytes(nil))
}

// DecodeGalactic128Text parses a Bech32m-encoded Galactic128.
func DecodeGalactic128Text(s string) (Galactic128, error) {
	raw, err := decodeText(HRPGalactic, s, 16)
	if err != nil {
		return Galactic128{}, err
	}
	return Galactic128FromBytes(raw)
}
