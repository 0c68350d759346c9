package circl

import (
	"errors"
	"fmt"

	"github.com/cloudflare/circl/ecc/bls12381"

	"github.com/f3rmion/pointkey/bls"
)

// Domain separation tags for mapping uniform bytes onto the curve.
// They match the gnark backend's tags.
const (
	UniformG1DST = "POINTKEY_UNIFORM_BLS12381G1_XMD:SHA-256_SSWU_RO_"
	UniformG2DST = "POINTKEY_UNIFORM_BLS12381G2_XMD:SHA-256_SSWU_RO_"
)

var (
	errInfinity = errors.New("public key is the point at infinity")
	errSubgroup = errors.New("point is not in the prime-order subgroup")
)

// G1Point represents a point in the BLS12-381 G1 subgroup.
// It implements [bls.PublicKeyPoint] by wrapping circl's G1.
//
// circl keeps points in projective coordinates, so many in-memory values
// share one encoding; Serialize normalises through BytesCompressed.
type G1Point struct {
	inner bls12381.G1
}

// Serialize returns the 48-byte ZCash compressed encoding.
func (p *G1Point) Serialize() [bls.PublicKeyLength]byte {
	var out [bls.PublicKeyLength]byte
	copy(out[:], p.inner.BytesCompressed())
	return out
}

// Deserialize sets p from a compressed encoding.
// Returns an error if the data is not exactly 48 bytes, does not encode a
// curve point, encodes the point at infinity, or lies outside G1.
func (p *G1Point) Deserialize(data []byte) error {
	if len(data) != bls.PublicKeyLength {
		return fmt.Errorf("expected %d bytes, got %d", bls.PublicKeyLength, len(data))
	}
	var q bls12381.G1
	if err := q.SetBytes(data); err != nil {
		return err
	}
	if q.IsIdentity() {
		return errInfinity
	}
	if !q.IsOnG1() {
		return errSubgroup
	}
	p.inner = q
	return nil
}

// SetUniform maps arbitrary bytes to a valid G1 point by hashing to the curve.
func (p *G1Point) SetUniform(seed []byte) error {
	p.inner.Hash(seed, []byte(UniformG1DST))
	return nil
}

// G2Point represents a point in the BLS12-381 G2 subgroup.
// It implements [bls.SignaturePoint] by wrapping circl's G2.
type G2Point struct {
	inner bls12381.G2
}

// Serialize returns the 96-byte ZCash compressed encoding.
func (p *G2Point) Serialize() [bls.SignatureLength]byte {
	var out [bls.SignatureLength]byte
	copy(out[:], p.inner.BytesCompressed())
	return out
}

// Deserialize sets p from a compressed encoding.
// Returns an error if the data is not exactly 96 bytes or is not a point
// in G2.
func (p *G2Point) Deserialize(data []byte) error {
	if len(data) != bls.SignatureLength {
		return fmt.Errorf("expected %d bytes, got %d", bls.SignatureLength, len(data))
	}
	var q bls12381.G2
	if err := q.SetBytes(data); err != nil {
		return err
	}
	if !q.IsOnG2() {
		return errSubgroup
	}
	p.inner = q
	return nil
}

// SetUniform maps arbitrary bytes to a valid G2 point by hashing to the curve.
func (p *G2Point) SetUniform(seed []byte) error {
	p.inner.Hash(seed, []byte(UniformG2DST))
	return nil
}

// PublicKey is a BLS public key backed by circl.
type PublicKey = bls.GenericPublicKey[G1Point, *G1Point]

// Signature is a BLS signature backed by circl.
type Signature = bls.GenericSignature[G2Point, *G2Point]

// DeserializePublicKey decodes and validates a compressed public key.
func DeserializePublicKey(data []byte) (*PublicKey, error) {
	return bls.DeserializePublicKey[G1Point](data)
}

// ParsePublicKey decodes and validates a 0x-prefixed hex public key.
func ParsePublicKey(s string) (*PublicKey, error) {
	return bls.ParsePublicKey[G1Point](s)
}

// DeserializeSignature decodes and validates a compressed signature.
func DeserializeSignature(data []byte) (*Signature, error) {
	return bls.DeserializeSignature[G2Point](data)
}

// ParseSignature decodes and validates a 0x-prefixed hex signature.
func ParseSignature(s string) (*Signature, error) {
	return bls.ParseSignature[G2Point](s)
}
