package bls

import (
	"github.com/f3rmion/pointkey/merkle"
)

// GenericSignature is a BLS signature that is generic across some backend
// G2 point T. It mirrors [GenericPublicKey] at [SignatureLength] bytes.
type GenericSignature[T any, P SignaturePoint[T]] struct {
	point T
}

// SignatureFromPoint wraps an already-valid point without validation.
func SignatureFromPoint[T any, P SignaturePoint[T]](point T) *GenericSignature[T, P] {
	return &GenericSignature[T, P]{point: point}
}

// DeserializeSignature decodes a compressed signature, validating length,
// curve membership and subgroup membership.
func DeserializeSignature[T any, P SignaturePoint[T]](data []byte) (*GenericSignature[T, P], error) {
	if err := checkLength(data, SignatureLength); err != nil {
		return nil, err
	}
	var point T
	if err := P(&point).Deserialize(data); err != nil {
		return nil, pointError(err)
	}
	return &GenericSignature[T, P]{point: point}, nil
}

// ParseSignature decodes the 0x-prefixed hex form produced by HexString.
func ParseSignature[T any, P SignaturePoint[T]](s string) (*GenericSignature[T, P], error) {
	data, err := decodeHex([]byte(s))
	if err != nil {
		return nil, err
	}
	return DeserializeSignature[T, P](data)
}

// canonicalBytes is the single source of the signature's identity.
func (s *GenericSignature[T, P]) canonicalBytes() [SignatureLength]byte {
	return P(&s.point).Serialize()
}

// Point returns a copy of the underlying backend point.
func (s *GenericSignature[T, P]) Point() T {
	return s.point
}

// Serialize returns the compressed encoding of the signature.
func (s *GenericSignature[T, P]) Serialize() [SignatureLength]byte {
	return s.canonicalBytes()
}

// HexString returns Serialize as a 0x-prefixed lowercase hex string.
func (s *GenericSignature[T, P]) HexString() string {
	b := s.canonicalBytes()
	return encodeHex(b[:])
}

// String implements fmt.Stringer and never exposes the backend representation.
func (s *GenericSignature[T, P]) String() string {
	return s.HexString()
}

// Equal reports whether s and other encode to the same bytes.
func (s *GenericSignature[T, P]) Equal(other *GenericSignature[T, P]) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.canonicalBytes() == other.canonicalBytes()
}

// Hash64 returns a 64-bit hash of the canonical bytes.
func (s *GenericSignature[T, P]) Hash64() uint64 {
	b := s.canonicalBytes()
	return hash64(b[:])
}

// HashTreeRoot returns the SHA-256 tree-hash root of the canonical bytes.
func (s *GenericSignature[T, P]) HashTreeRoot() [32]byte {
	return s.HashTreeRootWith(merkle.Default)
}

// HashTreeRootWith is HashTreeRoot with a caller-chosen node hasher.
func (s *GenericSignature[T, P]) HashTreeRootWith(h merkle.Hasher) [32]byte {
	b := s.canonicalBytes()
	return treeRoot(h, b[:])
}

// SizeSSZ returns the fixed encoded size.
func (s *GenericSignature[T, P]) SizeSSZ() int {
	return SignatureLength
}

// MarshalSSZ returns the compressed encoding.
func (s *GenericSignature[T, P]) MarshalSSZ() ([]byte, error) {
	b := s.canonicalBytes()
	return b[:], nil
}

// MarshalSSZTo appends the compressed encoding to dst.
func (s *GenericSignature[T, P]) MarshalSSZTo(dst []byte) ([]byte, error) {
	b := s.canonicalBytes()
	return append(dst, b[:]...), nil
}

// UnmarshalSSZ decodes a compressed encoding into a zero signature.
func (s *GenericSignature[T, P]) UnmarshalSSZ(data []byte) error {
	decoded, err := DeserializeSignature[T, P](data)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *GenericSignature[T, P]) MarshalBinary() ([]byte, error) {
	return s.MarshalSSZ()
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *GenericSignature[T, P]) UnmarshalBinary(data []byte) error {
	return s.UnmarshalSSZ(data)
}

// MarshalText implements encoding.TextMarshaler.
func (s *GenericSignature[T, P]) MarshalText() ([]byte, error) {
	b := s.canonicalBytes()
	return appendHex(nil, b[:]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *GenericSignature[T, P]) UnmarshalText(text []byte) error {
	data, err := decodeHex(text)
	if err != nil {
		return err
	}
	return s.UnmarshalSSZ(data)
}
