package bls

import (
	"github.com/f3rmion/pointkey/merkle"
)

// GenericPublicKey is a BLS public key that is generic across some backend
// G1 point T.
//
// It provides identity, encoding and commitment behaviour while deferring all
// curve arithmetic to T. Values are immutable once constructed; use
// [PublicKeyFromPoint] for points produced by a trusted derivation and
// [DeserializePublicKey] for anything else. The zero value holds no key and
// must not be used.
//
// A *GenericPublicKey is safe for concurrent read-only use. For map keys, use
// the array returned by Serialize.
type GenericPublicKey[T any, P PublicKeyPoint[T]] struct {
	// point performs the actual cryptographic operations.
	point T
}

// PublicKeyFromPoint wraps an already-valid point without validation.
func PublicKeyFromPoint[T any, P PublicKeyPoint[T]](point T) *GenericPublicKey[T, P] {
	return &GenericPublicKey[T, P]{point: point}
}

// DeserializePublicKey decodes a compressed public key, validating length,
// curve membership and subgroup membership.
func DeserializePublicKey[T any, P PublicKeyPoint[T]](data []byte) (*GenericPublicKey[T, P], error) {
	if err := checkLength(data, PublicKeyLength); err != nil {
		return nil, err
	}
	var point T
	if err := P(&point).Deserialize(data); err != nil {
		return nil, pointError(err)
	}
	return &GenericPublicKey[T, P]{point: point}, nil
}

// ParsePublicKey decodes the 0x-prefixed hex form produced by HexString.
func ParsePublicKey[T any, P PublicKeyPoint[T]](s string) (*GenericPublicKey[T, P], error) {
	data, err := decodeHex([]byte(s))
	if err != nil {
		return nil, err
	}
	return DeserializePublicKey[T, P](data)
}

// canonicalBytes is the single source of the key's identity.
func (k *GenericPublicKey[T, P]) canonicalBytes() [PublicKeyLength]byte {
	return P(&k.point).Serialize()
}

// Point returns a copy of the underlying backend point.
func (k *GenericPublicKey[T, P]) Point() T {
	return k.point
}

// Serialize returns the compressed encoding of the key.
func (k *GenericPublicKey[T, P]) Serialize() [PublicKeyLength]byte {
	return k.canonicalBytes()
}

// HexString returns Serialize as a 0x-prefixed lowercase hex string.
func (k *GenericPublicKey[T, P]) HexString() string {
	b := k.canonicalBytes()
	return encodeHex(b[:])
}

// String implements fmt.Stringer and never exposes the backend representation.
func (k *GenericPublicKey[T, P]) String() string {
	return k.HexString()
}

// Equal reports whether k and other encode to the same bytes.
// Two nil keys are equal; a nil key never equals a non-nil one.
func (k *GenericPublicKey[T, P]) Equal(other *GenericPublicKey[T, P]) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.canonicalBytes() == other.canonicalBytes()
}

// Hash64 returns a 64-bit hash of the canonical bytes. Equal keys always
// hash equally, in any process and with any backend.
func (k *GenericPublicKey[T, P]) Hash64() uint64 {
	b := k.canonicalBytes()
	return hash64(b[:])
}

// HashTreeRoot returns the SHA-256 tree-hash root of the canonical bytes
// as a fixed-length byte vector.
func (k *GenericPublicKey[T, P]) HashTreeRoot() [32]byte {
	return k.HashTreeRootWith(merkle.Default)
}

// HashTreeRootWith is HashTreeRoot with a caller-chosen node hasher.
func (k *GenericPublicKey[T, P]) HashTreeRootWith(h merkle.Hasher) [32]byte {
	b := k.canonicalBytes()
	return treeRoot(h, b[:])
}

// SizeSSZ returns the fixed encoded size.
func (k *GenericPublicKey[T, P]) SizeSSZ() int {
	return PublicKeyLength
}

// MarshalSSZ returns the compressed encoding.
func (k *GenericPublicKey[T, P]) MarshalSSZ() ([]byte, error) {
	b := k.canonicalBytes()
	return b[:], nil
}

// MarshalSSZTo appends the compressed encoding to dst.
func (k *GenericPublicKey[T, P]) MarshalSSZTo(dst []byte) ([]byte, error) {
	b := k.canonicalBytes()
	return append(dst, b[:]...), nil
}

// UnmarshalSSZ decodes a compressed encoding into a zero key.
func (k *GenericPublicKey[T, P]) UnmarshalSSZ(data []byte) error {
	decoded, err := DeserializePublicKey[T, P](data)
	if err != nil {
		return err
	}
	*k = *decoded
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (k *GenericPublicKey[T, P]) MarshalBinary() ([]byte, error) {
	return k.MarshalSSZ()
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (k *GenericPublicKey[T, P]) UnmarshalBinary(data []byte) error {
	return k.UnmarshalSSZ(data)
}

// MarshalText implements encoding.TextMarshaler. JSON and YAML encoders
// use it, so keys appear as 0x-prefixed hex strings.
func (k *GenericPublicKey[T, P]) MarshalText() ([]byte, error) {
	b := k.canonicalBytes()
	return appendHex(nil, b[:]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Once the hex is decoded
// it fails exactly like the binary path.
func (k *GenericPublicKey[T, P]) UnmarshalText(text []byte) error {
	data, err := decodeHex(text)
	if err != nil {
		return err
	}
	return k.UnmarshalSSZ(data)
}
