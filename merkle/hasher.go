package merkle

import (
	sha256 "github.com/minio/sha256-simd"
	"golang.org/x/crypto/blake2b"
)

// Hasher defines the node hash used when merkleizing chunks.
// Different implementations can provide different hash functions
// and domain separation schemes.
type Hasher interface {
	// Hash returns the digest of the concatenation of data.
	Hash(data ...[]byte) [32]byte
}

// SHA256Hasher implements Hasher using SHA-256.
// This is the consensus hasher and the default everywhere.
type SHA256Hasher struct{}

// Hash implements Hasher.Hash.
func (h *SHA256Hasher) Hash(data ...[]byte) [32]byte {
	if len(data) == 1 {
		return sha256.Sum256(data[0])
	}
	hasher := sha256.New()
	for _, d := range data {
		hasher.Write(d)
	}
	var out [32]byte
	copy(out[:], hasher.Sum(nil))
	return out
}

// Blake2bHasher implements Hasher using Blake2b-256 with domain separation.
// Roots produced with it are not consensus roots; use it for local
// commitments that must never collide with SHA-256 tree hashes.
//
// Domain separation format: prefix + input
type Blake2bHasher struct {
	// Prefix is the domain separation prefix.
	// Default: "POINTKEY-TREEHASH-BLAKE2B-v1"
	Prefix string
}

// NewBlake2bHasher creates a Blake2bHasher with the default prefix.
func NewBlake2bHasher() *Blake2bHasher {
	return &Blake2bHasher{
		Prefix: "POINTKEY-TREEHASH-BLAKE2B-v1",
	}
}

// Hash implements Hasher.Hash.
func (h *Blake2bHasher) Hash(data ...[]byte) [32]byte {
	hasher, _ := blake2b.New256(nil)
	hasher.Write([]byte(h.Prefix))
	for _, d := range data {
		hasher.Write(d)
	}
	var out [32]byte
	copy(out[:], hasher.Sum(nil))
	return out
}

// Default is the hasher used when callers do not choose one.
var Default Hasher = &SHA256Hasher{}
