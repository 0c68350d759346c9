// Package merkle computes tree-hash commitments over fixed-width leaves.
//
// Serialized data is split into 32-byte chunks ([Pack]), the chunks are
// combined pairwise by a [Hasher] up to a power-of-two width ([Merkleize]),
// and list roots additionally commit to their length ([MixInLength]).
// With [SHA256Hasher] the result matches the SSZ hash_tree_root rule used for
// consensus-state roots.
package merkle
