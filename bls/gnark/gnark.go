package gnark

import (
	"errors"
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/f3rmion/pointkey/bls"
)

// Domain separation tags for mapping uniform bytes onto the curve.
// They are shared with the circl backend so both produce the same points.
const (
	UniformG1DST = "POINTKEY_UNIFORM_BLS12381G1_XMD:SHA-256_SSWU_RO_"
	UniformG2DST = "POINTKEY_UNIFORM_BLS12381G2_XMD:SHA-256_SSWU_RO_"
)

var (
	errInfinity = errors.New("public key is the point at infinity")
	errSubgroup = errors.New("point is not in the prime-order subgroup")
)

// G1Point represents a point in the BLS12-381 G1 subgroup.
// It implements [bls.PublicKeyPoint] by wrapping gnark-crypto's G1Affine.
//
// Points are held in affine coordinates, so the canonical encoding is
// computed directly from (x, y) without normalisation.
type G1Point struct {
	inner bls12381.G1Affine
}

// Serialize returns the 48-byte ZCash compressed encoding.
func (p *G1Point) Serialize() [bls.PublicKeyLength]byte {
	return p.inner.Bytes()
}

// Deserialize sets p from a compressed encoding.
// Returns an error if the data is not exactly 48 bytes, does not encode a
// curve point, encodes the point at infinity, or lies outside G1.
func (p *G1Point) Deserialize(data []byte) error {
	if len(data) != bls12381.SizeOfG1AffineCompressed {
		return fmt.Errorf("expected %d bytes, got %d", bls12381.SizeOfG1AffineCompressed, len(data))
	}
	var q bls12381.G1Affine
	// SetBytes checks the subgroup; IsInSubGroup below keeps that guarantee
	// independent of library defaults.
	if _, err := q.SetBytes(data); err != nil {
		return err
	}
	if q.IsInfinity() {
		return errInfinity
	}
	if !q.IsInSubGroup() {
		return errSubgroup
	}
	p.inner = q
	return nil
}

// SetUniform maps arbitrary bytes to a valid G1 point by hashing to the
// curve. It is the canonicalisation used for randomized test instances.
func (p *G1Point) SetUniform(seed []byte) error {
	q, err := bls12381.HashToG1(seed, []byte(UniformG1DST))
	if err != nil {
		return err
	}
	p.inner = q
	return nil
}

// Affine returns the underlying gnark-crypto point.
func (p *G1Point) Affine() bls12381.G1Affine {
	return p.inner
}

// G2Point represents a point in the BLS12-381 G2 subgroup.
// It implements [bls.SignaturePoint] by wrapping gnark-crypto's G2Affine.
//
// The point at infinity is accepted: it is the encoding of an empty
// aggregate signature.
type G2Point struct {
	inner bls12381.G2Affine
}

// Serialize returns the 96-byte ZCash compressed encoding.
func (p *G2Point) Serialize() [bls.SignatureLength]byte {
	return p.inner.Bytes()
}

// Deserialize sets p from a compressed encoding.
// Returns an error if the data is not exactly 96 bytes or is not a point
// in G2.
func (p *G2Point) Deserialize(data []byte) error {
	if len(data) != bls12381.SizeOfG2AffineCompressed {
		return fmt.Errorf("expected %d bytes, got %d", bls12381.SizeOfG2AffineCompressed, len(data))
	}
	var q bls12381.G2Affine
	if _, err := q.SetBytes(data); err != nil {
		return err
	}
	if !q.IsInSubGroup() {
		return errSubgroup
	}
	p.inner = q
	return nil
}

// SetUniform maps arbitrary bytes to a valid G2 point by hashing to the curve.
func (p *G2Point) SetUniform(seed []byte) error {
	q, err := bls12381.HashToG2(seed, []byte(UniformG2DST))
	if err != nil {
		return err
	}
	p.inner = q
	return nil
}

// Affine returns the underlying gnark-crypto point.
func (p *G2Point) Affine() bls12381.G2Affine {
	return p.inner
}

// PublicKey is a BLS public key backed by gnark-crypto.
type PublicKey = bls.GenericPublicKey[G1Point, *G1Point]

// Signature is a BLS signature backed by gnark-crypto.
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
