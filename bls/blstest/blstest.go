// Package blstest builds random, valid keys and signatures for property and
// fuzz tests. It must only be imported from tests.
//
// Instances are made by reading N random bytes and mapping them onto the
// curve with the backend's SetUniform, so every value is a valid point and
// round-trips through the untrusted decode path. This path is separate from
// Deserialize and cannot hide decode failures.
package blstest

import (
	"io"
	"math/rand"
	"reflect"

	"github.com/f3rmion/pointkey/bls"
)

// UniformPublicKeyPoint is a [bls.PublicKeyPoint] that can also map
// arbitrary bytes to a valid point.
type UniformPublicKeyPoint[T any] interface {
	bls.PublicKeyPoint[T]
	SetUniform(seed []byte) error
}

// UniformSignaturePoint is a [bls.SignaturePoint] that can also map
// arbitrary bytes to a valid point.
type UniformSignaturePoint[T any] interface {
	bls.SignaturePoint[T]
	SetUniform(seed []byte) error
}

// PublicKey returns a random valid public key drawn from r.
func PublicKey[T any, P UniformPublicKeyPoint[T]](r io.Reader) (*bls.GenericPublicKey[T, P], error) {
	var seed [bls.PublicKeyLength]byte
	if _, err := io.ReadFull(r, seed[:]); err != nil {
		return nil, err
	}
	var point T
	if err := P(&point).SetUniform(seed[:]); err != nil {
		return nil, err
	}
	return bls.PublicKeyFromPoint[T, P](point), nil
}

// Signature returns a random valid signature drawn from r.
func Signature[T any, P UniformSignaturePoint[T]](r io.Reader) (*bls.GenericSignature[T, P], error) {
	var seed [bls.SignatureLength]byte
	if _, err := io.ReadFull(r, seed[:]); err != nil {
		return nil, err
	}
	var point T
	if err := P(&point).SetUniform(seed[:]); err != nil {
		return nil, err
	}
	return bls.SignatureFromPoint[T, P](point), nil
}

// PublicKeyValues fills args with random public keys. It has the signature
// of testing/quick's Config.Values.
func PublicKeyValues[T any, P UniformPublicKeyPoint[T]](args []reflect.Value, r *rand.Rand) {
	for i := range args {
		k, err := PublicKey[T, P](r)
		if err != nil {
			panic(err)
		}
		args[i] = reflect.ValueOf(k)
	}
}

// SignatureValues fills args with random signatures. It has the signature
// of testing/quick's Config.Values.
func SignatureValues[T any, P UniformSignaturePoint[T]](args []reflect.Value, r *rand.Rand) {
	for i := range args {
		s, err := Signature[T, P](r)
		if err != nil {
			panic(err)
		}
		args[i] = reflect.ValueOf(s)
	}
}
