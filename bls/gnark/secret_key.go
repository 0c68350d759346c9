package gnark

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/f3rmion/pointkey/bls"
)

// SecretKeyLength is the size of a big-endian encoded secret key.
const SecretKeyLength = fr.Bytes

// SignatureDST is the proof-of-possession ciphersuite tag used by Ethereum
// consensus signatures.
const SignatureDST = "BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_"

var errZeroSecret = errors.New("secret key is zero")

// SecretKey is a BLS secret key: a non-zero scalar modulo the BLS12-381
// group order. It is the trusted source of points for [bls.PublicKeyFromPoint]
// and [bls.SignatureFromPoint].
type SecretKey struct {
	scalar fr.Element
}

// RandomSecretKey generates a secret key using the provided random source.
// Reads 64 bytes per attempt so the reduction modulo the group order has
// negligible bias.
func RandomSecretKey(r io.Reader) (*SecretKey, error) {
	var buf [64]byte
	n := new(big.Int)
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, err
		}
		n.SetBytes(buf[:])
		n.Mod(n, fr.Modulus())
		if n.Sign() != 0 {
			break
		}
	}
	sk := &SecretKey{}
	sk.scalar.SetBigInt(n)
	return sk, nil
}

// SecretKeyFromBytes decodes a 32-byte big-endian secret key.
// Returns an error if the value is zero or not below the group order.
func SecretKeyFromBytes(data []byte) (*SecretKey, error) {
	if len(data) != SecretKeyLength {
		return nil, fmt.Errorf("secret key must be %d bytes, got %d", SecretKeyLength, len(data))
	}
	sk := &SecretKey{}
	if err := sk.scalar.SetBytesCanonical(data); err != nil {
		return nil, fmt.Errorf("invalid secret key: %w", err)
	}
	if sk.scalar.IsZero() {
		return nil, errZeroSecret
	}
	return sk, nil
}

// Serialize returns the secret key as 32 big-endian bytes.
func (sk *SecretKey) Serialize() [SecretKeyLength]byte {
	return sk.scalar.Bytes()
}

// PublicKey derives the public key sk*G1.
func (sk *SecretKey) PublicKey() *PublicKey {
	var s big.Int
	sk.scalar.BigInt(&s)

	_, _, g1, _ := bls12381.Generators()
	var p G1Point
	p.inner.ScalarMultiplication(&g1, &s)
	return bls.PublicKeyFromPoint[G1Point](p)
}

// Sign returns sk*H(msg), where H hashes onto G2 under [SignatureDST].
func (sk *SecretKey) Sign(msg []byte) (*Signature, error) {
	h, err := bls12381.HashToG2(msg, []byte(SignatureDST))
	if err != nil {
		return nil, fmt.Errorf("failed to hash message to G2: %w", err)
	}
	var s big.Int
	sk.scalar.BigInt(&s)

	var p G2Point
	p.inner.ScalarMultiplication(&h, &s)
	return bls.SignatureFromPoint[G2Point](p), nil
}
