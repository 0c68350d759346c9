// Package bls defines a backend-independent wrapper for BLS12-381 keys and
// signatures.
//
// Different curve libraries keep the same mathematical point in different
// in-memory forms (affine, Jacobian, projective). The rest of a consensus
// client only ever needs one identity per key, so this package wraps a
// backend point and derives every protocol-facing behaviour from the point's
// canonical compressed encoding:
//
//   - [PublicKeyPoint] and [SignaturePoint]: the capability contract a backend
//     point type must satisfy (Serialize and a validating Deserialize)
//   - [GenericPublicKey] and [GenericSignature]: the wrappers, instantiated
//     once per backend
//
// # Canonical bytes
//
// Equality, [GenericPublicKey.Hash64], the binary and SSZ codecs, the tree
// hash, the text form and String all read the same canonical byte array.
// Two wrappers are equal exactly when their encodings are equal, whichever
// backend produced them.
//
// # Implementing a backend
//
// To plug a curve library into the wrappers:
//
//  1. Create a G1 point type with Serialize() [PublicKeyLength]byte and a
//     pointer-receiver Deserialize([]byte) error
//  2. Create a G2 point type the same way with [SignatureLength]
//  3. Declare aliases such as
//     type PublicKey = bls.GenericPublicKey[G1Point, *G1Point]
//
// See the gnark and circl packages for complete implementations.
//
// # Security Considerations
//
// Deserialize is the only entry point for untrusted bytes. Implementations
// must:
//
//   - Reject encodings that are not exactly the canonical length
//   - Reject encodings of points that are not on the curve
//   - Reject points outside the prime-order subgroup
//   - Never return a partially initialised point on error
package bls
