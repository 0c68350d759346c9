package bls

const (
	// PublicKeyLength is the size of a compressed G1 point.
	PublicKeyLength = 48
	// SignatureLength is the size of a compressed G2 point.
	SignatureLength = 96
)

// PublicKeyPoint is implemented by a backend's G1 point so that it can be
// held by a [GenericPublicKey].
//
// The constraint is written over the pointer type so that the wrapper can
// call Deserialize on a zero value of T; T itself is stored by value.
//
// Implementations must not retain or alias the byte slice passed to
// Deserialize, and must leave the receiver unchanged when it returns an error.
type PublicKeyPoint[T any] interface {
	*T
	// Serialize returns the canonical compressed encoding. It depends only on
	// the mathematical value of the point, never on its representation.
	Serialize() [PublicKeyLength]byte
	// Deserialize sets the receiver from a compressed encoding.
	// Returns an error if the data has the wrong length, is not a point on
	// the curve, or is not in the prime-order subgroup.
	Deserialize(data []byte) error
}

// SignaturePoint is implemented by a backend's G2 point so that it can be
// held by a [GenericSignature]. It has the same obligations as
// [PublicKeyPoint] at [SignatureLength].
type SignaturePoint[T any] interface {
	*T
	// Serialize returns the canonical compressed encoding.
	Serialize() [SignatureLength]byte
	// Deserialize sets the receiver from a compressed encoding.
	// Returns an error if the data is not a valid subgroup point.
	Deserialize(data []byte) error
}
