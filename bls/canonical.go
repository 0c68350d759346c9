package bls

import (
	"bytes"
	"encoding/hex"
	"errors"

	"github.com/spaolacci/murmur3"

	"github.com/f3rmion/pointkey/merkle"
)

const hexPrefix = "0x"

var errMissingPrefix = errors.New("missing 0x prefix")

// The helpers below are shared by every wrapper kind. Each wrapper feeds them
// the output of its own canonicalBytes accessor and nothing else.

func checkLength(data []byte, want int) error {
	if len(data) != want {
		return lengthError(want, len(data))
	}
	return nil
}

func encodeHex(canonical []byte) string {
	return hexPrefix + hex.EncodeToString(canonical)
}

func appendHex(dst, canonical []byte) []byte {
	dst = append(dst, hexPrefix...)
	return hex.AppendEncode(dst, canonical)
}

// decodeHex strips the 0x prefix and decodes the remainder. Length is not
// checked here; that belongs to the binary path.
func decodeHex(text []byte) ([]byte, error) {
	rest, ok := bytes.CutPrefix(text, []byte(hexPrefix))
	if !ok {
		return nil, hexError(errMissingPrefix)
	}
	out := make([]byte, hex.DecodedLen(len(rest)))
	if _, err := hex.Decode(out, rest); err != nil {
		return nil, hexError(err)
	}
	return out, nil
}

func hash64(canonical []byte) uint64 {
	return murmur3.Sum64(canonical)
}

func treeRoot(h merkle.Hasher, canonical []byte) [32]byte {
	return merkle.VectorRoot(h, canonical)
}

// DecodeHex decodes a 0x-prefixed hex string into bytes, reporting failures
// as KindHex decode errors. It performs no length check.
func DecodeHex(s string) ([]byte, error) {
	return decodeHex([]byte(s))
}
