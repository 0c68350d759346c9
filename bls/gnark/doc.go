// Package gnark provides the default BLS12-381 backend for the [bls]
// wrappers, built on gnark-crypto.
//
// [G1Point] wraps gnark-crypto's G1Affine and satisfies
// [bls.PublicKeyPoint]; [G2Point] wraps G2Affine and satisfies
// [bls.SignaturePoint]. The aliases [PublicKey] and [Signature] are the
// wrapper instantiations the rest of the module uses.
//
// # Usage
//
//	sk, _ := gnark.RandomSecretKey(rand.Reader)
//	pk := sk.PublicKey()
//	fmt.Println(pk.HexString())
//
//	decoded, err := gnark.ParsePublicKey(pk.HexString())
//	if err != nil { ... }
//	decoded.Equal(pk) // true
//
// # Security
//
// Deserialize rejects encodings of the wrong length, points that are not on
// the curve, and points outside the prime-order subgroup. gnark-crypto's
// SetBytes performs the subgroup check by default; Deserialize asserts it
// again explicitly. Public keys at infinity are rejected.
package gnark
