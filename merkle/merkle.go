package merkle

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// ChunkSize is the width in bytes of a Merkle leaf.
const ChunkSize = 32

// Pack splits b into ChunkSize leaves, right-padding the last one with zeros.
// An empty input yields no chunks.
func Pack(b []byte) [][ChunkSize]byte {
	chunks := make([][ChunkSize]byte, (len(b)+ChunkSize-1)/ChunkSize)
	for i := range chunks {
		copy(chunks[i][:], b[i*ChunkSize:])
	}
	return chunks
}

// Merkleize computes the root of a binary tree whose leaves are chunks,
// padded with zero chunks up to the next power of two of limit.
// Returns an error if there are more chunks than limit allows.
func Merkleize(h Hasher, chunks [][ChunkSize]byte, limit uint64) ([ChunkSize]byte, error) {
	if limit < uint64(len(chunks)) {
		return [ChunkSize]byte{}, fmt.Errorf("merkle: %d chunks exceed limit %d", len(chunks), limit)
	}
	depth := 0
	if limit > 1 {
		depth = bits.Len64(limit - 1)
	}

	// zero holds the root of an all-zero subtree at the current depth.
	var zero [ChunkSize]byte
	layer := chunks
	for d := 0; d < depth; d++ {
		next := make([][ChunkSize]byte, (len(layer)+1)/2)
		for i := range next {
			left := layer[2*i]
			right := zero
			if 2*i+1 < len(layer) {
				right = layer[2*i+1]
			}
			next[i] = h.Hash(left[:], right[:])
		}
		layer = next
		zero = h.Hash(zero[:], zero[:])
	}
	if len(layer) == 0 {
		return zero, nil
	}
	return layer[0], nil
}

// MixInLength hashes root together with n encoded as a 32-byte little-endian
// integer, producing the root of a variable-length list.
func MixInLength(h Hasher, root [ChunkSize]byte, n int) [ChunkSize]byte {
	var length [ChunkSize]byte
	binary.LittleEndian.PutUint64(length[:8], uint64(n))
	return h.Hash(root[:], length[:])
}

// VectorRoot returns the root of a fixed-length byte vector. The leaf count
// is fixed by len(b), so two inputs of equal length always share a tree shape.
func VectorRoot(h Hasher, b []byte) [ChunkSize]byte {
	chunks := Pack(b)
	// limit == len(chunks) cannot overflow.
	root, _ := Merkleize(h, chunks, uint64(len(chunks)))
	return root
}
