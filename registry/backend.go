package registry

import (
	"fmt"

	"github.com/f3rmion/pointkey/bls/circl"
	"github.com/f3rmion/pointkey/bls/gnark"
)

// Backend names accepted by BackendDecoder.
const (
	BackendGnark = "gnark"
	BackendCircl = "circl"
)

// BackendDecoder returns the untrusted decode path of the named backend.
func BackendDecoder(name string) (DecodeFunc, error) {
	switch name {
	case BackendGnark, "":
		return Decoder(gnark.DeserializePublicKey), nil
	case BackendCircl:
		return Decoder(circl.DeserializePublicKey), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}
