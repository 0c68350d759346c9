package bls_test

import (
	"crypto/rand"
	stdsha256 "crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"testing/quick"

	"gopkg.in/yaml.v3"

	"github.com/f3rmion/pointkey/bls"
	"github.com/f3rmion/pointkey/bls/blstest"
	"github.com/f3rmion/pointkey/bls/gnark"
	"github.com/f3rmion/pointkey/merkle"
)

// g1GeneratorHex is the compressed encoding of the BLS12-381 G1 generator.
const g1GeneratorHex = "0x97f1d3a73197d7942695638c4fa9ac0fc3688c4f9774b905a14e3a3f171bac586c55e83ff97a1aeffb3af00adb22c6bb"

// Compressed G1 encodings that must not decode.
const (
	// x = 1: x^3 + 4 is not a square in Fp.
	g1NotOnCurveHex = "0x800000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000001"
	// x = 4: on E(Fp) but outside the prime-order subgroup.
	g1OutsideSubgroupHex = "0x800000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000004"
	// x = 4 + p: the same point with a coordinate that is not reduced.
	g1NonCanonicalHex = "0x9a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaaf"
)

func mustDecodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func randomPublicKey(t *testing.T) *gnark.PublicKey {
	t.Helper()
	pk, err := blstest.PublicKey[gnark.G1Point, *gnark.G1Point](rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	return pk
}

func TestDeserializePublicKey(t *testing.T) {
	t.Run("KnownVector", func(t *testing.T) {
		data := mustDecodeHex(t, g1GeneratorHex)
		pk, err := gnark.DeserializePublicKey(data)
		if err != nil {
			t.Fatal(err)
		}
		got := pk.Serialize()
		if string(got[:]) != string(data) {
			t.Error("serialize(deserialize(b)) != b")
		}
		if pk.HexString() != g1GeneratorHex {
			t.Errorf("hex = %s, want %s", pk.HexString(), g1GeneratorHex)
		}
	})

	t.Run("ZeroBytesRejected", func(t *testing.T) {
		pk, err := gnark.DeserializePublicKey(make([]byte, bls.PublicKeyLength))
		if !errors.Is(err, bls.ErrInvalidPoint) {
			t.Fatalf("expected ErrInvalidPoint, got %v", err)
		}
		if pk != nil {
			t.Error("failed decode returned a key")
		}
	})

	t.Run("AllOnesRejected", func(t *testing.T) {
		data := make([]byte, bls.PublicKeyLength)
		for i := range data {
			data[i] = 0xff
		}
		_, err := gnark.DeserializePublicKey(data)
		if !errors.Is(err, bls.ErrInvalidPoint) {
			t.Fatalf("expected ErrInvalidPoint, got %v", err)
		}
	})

	t.Run("InfinityRejected", func(t *testing.T) {
		data := make([]byte, bls.PublicKeyLength)
		data[0] = 0xc0
		_, err := gnark.DeserializePublicKey(data)
		if !errors.Is(err, bls.ErrInvalidPoint) {
			t.Fatalf("expected ErrInvalidPoint, got %v", err)
		}
	})

	t.Run("WrongLength", func(t *testing.T) {
		valid := mustDecodeHex(t, g1GeneratorHex)
		for _, data := range [][]byte{nil, valid[:47], append(valid, 0)} {
			_, err := gnark.DeserializePublicKey(data)
			if !errors.Is(err, bls.ErrInvalidLength) {
				t.Fatalf("len %d: expected ErrInvalidLength, got %v", len(data), err)
			}
			var de *bls.DecodeError
			if !errors.As(err, &de) || de.Want != bls.PublicKeyLength || de.Got != len(data) {
				t.Errorf("len %d: unexpected error detail %#v", len(data), de)
			}
		}
	})

	for _, tc := range []struct {
		name string
		hex  string
	}{
		{"NotOnCurve", g1NotOnCurveHex},
		{"OutsideSubgroup", g1OutsideSubgroupHex},
		{"NonCanonicalX", g1NonCanonicalHex},
	} {
		t.Run(tc.name, func(t *testing.T) {
			pk, err := gnark.DeserializePublicKey(mustDecodeHex(t, tc.hex))
			if !errors.Is(err, bls.ErrInvalidPoint) {
				t.Fatalf("expected ErrInvalidPoint, got %v", err)
			}
			if pk != nil {
				t.Error("failed decode returned a key")
			}
		})
	}
}

func TestPublicKeyHex(t *testing.T) {
	pk, err := gnark.ParsePublicKey(g1GeneratorHex)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("Format", func(t *testing.T) {
		s := pk.HexString()
		if !strings.HasPrefix(s, "0x") {
			t.Fatal("missing 0x prefix")
		}
		if len(s) != 2+2*bls.PublicKeyLength {
			t.Errorf("hex length = %d", len(s))
		}
		if s != strings.ToLower(s) {
			t.Error("hex is not lowercase")
		}
		if got := fmt.Sprintf("%v", pk); got != s {
			t.Errorf("debug form = %s, want %s", got, s)
		}
		if pk.String() != s {
			t.Error("String differs from HexString")
		}
	})

	t.Run("Roundtrip", func(t *testing.T) {
		restored, err := gnark.ParsePublicKey(pk.HexString())
		if err != nil {
			t.Fatal(err)
		}
		if !restored.Equal(pk) {
			t.Error("hex roundtrip failed")
		}
	})

	t.Run("UppercaseAccepted", func(t *testing.T) {
		upper := "0x" + strings.ToUpper(g1GeneratorHex[2:])
		restored, err := gnark.ParsePublicKey(upper)
		if err != nil {
			t.Fatal(err)
		}
		if restored.HexString() != g1GeneratorHex {
			t.Error("output hex is not canonical lowercase")
		}
	})

	t.Run("MissingPrefix", func(t *testing.T) {
		_, err := gnark.ParsePublicKey(g1GeneratorHex[2:])
		if !errors.Is(err, bls.ErrInvalidHex) {
			t.Fatalf("expected ErrInvalidHex, got %v", err)
		}
	})

	t.Run("NotHex", func(t *testing.T) {
		_, err := gnark.ParsePublicKey("0x" + strings.Repeat("zz", bls.PublicKeyLength))
		if !errors.Is(err, bls.ErrInvalidHex) {
			t.Fatalf("expected ErrInvalidHex, got %v", err)
		}
	})

	t.Run("ShortHexIsLengthError", func(t *testing.T) {
		_, err := gnark.ParsePublicKey(g1GeneratorHex[:len(g1GeneratorHex)-2])
		if !errors.Is(err, bls.ErrInvalidLength) {
			t.Fatalf("expected ErrInvalidLength, got %v", err)
		}
	})

	t.Run("ZeroHexIsPointError", func(t *testing.T) {
		_, err := gnark.ParsePublicKey("0x" + strings.Repeat("00", bls.PublicKeyLength))
		if !errors.Is(err, bls.ErrInvalidPoint) {
			t.Fatalf("expected ErrInvalidPoint, got %v", err)
		}
	})
}

func TestPublicKeyEquality(t *testing.T) {
	cfg := &quick.Config{
		MaxCount: 25,
		Values:   blstest.PublicKeyValues[gnark.G1Point, *gnark.G1Point],
	}

	t.Run("EqualIffSerializeEqual", func(t *testing.T) {
		f := func(x, y *gnark.PublicKey) bool {
			return x.Equal(y) == (x.Serialize() == y.Serialize())
		}
		if err := quick.Check(f, cfg); err != nil {
			t.Error(err)
		}
	})

	t.Run("DecodedCopyIsEqual", func(t *testing.T) {
		f := func(x *gnark.PublicKey) bool {
			b := x.Serialize()
			y, err := gnark.DeserializePublicKey(b[:])
			if err != nil {
				return false
			}
			return x.Equal(y) && y.Equal(x) &&
				x.Hash64() == y.Hash64() &&
				x.HashTreeRoot() == y.HashTreeRoot()
		}
		if err := quick.Check(f, cfg); err != nil {
			t.Error(err)
		}
	})

	t.Run("MapKey", func(t *testing.T) {
		a := randomPublicKey(t)
		b := a.Serialize()
		decoded, err := gnark.DeserializePublicKey(b[:])
		if err != nil {
			t.Fatal(err)
		}
		seen := map[[bls.PublicKeyLength]byte]bool{a.Serialize(): true}
		if !seen[decoded.Serialize()] {
			t.Error("equal keys produced different map keys")
		}
	})

	t.Run("Nil", func(t *testing.T) {
		var a, b *gnark.PublicKey
		if !a.Equal(b) {
			t.Error("nil keys should be equal")
		}
		if a.Equal(randomPublicKey(t)) {
			t.Error("nil key equals non-nil key")
		}
	})

	t.Run("CopyIsIndependent", func(t *testing.T) {
		a := randomPublicKey(t)
		c := *a
		if !c.Equal(a) {
			t.Error("copied key differs")
		}
		if err := c.UnmarshalText([]byte(g1GeneratorHex)); err != nil {
			t.Fatal(err)
		}
		if a.HexString() == g1GeneratorHex {
			t.Error("decoding into a copy changed the original")
		}
	})
}

func TestPublicKeyTreeHash(t *testing.T) {
	pk, err := gnark.ParsePublicKey(g1GeneratorHex)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("TwoChunkRule", func(t *testing.T) {
		b := pk.Serialize()
		var chunks [64]byte
		copy(chunks[:], b[:])
		want := stdsha256.Sum256(chunks[:])
		if pk.HashTreeRoot() != want {
			t.Error("tree root does not match sha256(chunk0 || chunk1)")
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		if pk.HashTreeRoot() != pk.HashTreeRoot() {
			t.Error("tree root changed between calls")
		}
	})

	t.Run("DistinctKeys", func(t *testing.T) {
		other := randomPublicKey(t)
		if other.Equal(pk) {
			t.Skip("random key collided with generator")
		}
		if other.HashTreeRoot() == pk.HashTreeRoot() {
			t.Error("distinct keys share a tree root")
		}
	})

	t.Run("CustomHasher", func(t *testing.T) {
		h := merkle.NewBlake2bHasher()
		if pk.HashTreeRootWith(h) == pk.HashTreeRoot() {
			t.Error("blake2b root equals sha256 root")
		}
		if pk.HashTreeRootWith(h) != pk.HashTreeRootWith(h) {
			t.Error("blake2b root is not deterministic")
		}
	})
}

func TestPublicKeyCodecs(t *testing.T) {
	pk := randomPublicKey(t)

	t.Run("SSZ", func(t *testing.T) {
		if pk.SizeSSZ() != bls.PublicKeyLength {
			t.Fatalf("SizeSSZ = %d", pk.SizeSSZ())
		}
		enc, err := pk.MarshalSSZ()
		if err != nil {
			t.Fatal(err)
		}
		if len(enc) != bls.PublicKeyLength {
			t.Fatalf("encoded length = %d", len(enc))
		}
		prefix := []byte{0xaa}
		appended, err := pk.MarshalSSZTo(prefix)
		if err != nil {
			t.Fatal(err)
		}
		if string(appended[1:]) != string(enc) || appended[0] != 0xaa {
			t.Error("MarshalSSZTo did not append the encoding")
		}

		var decoded gnark.PublicKey
		if err := decoded.UnmarshalSSZ(enc); err != nil {
			t.Fatal(err)
		}
		if !decoded.Equal(pk) {
			t.Error("ssz roundtrip failed")
		}
		if err := decoded.UnmarshalSSZ(enc[:40]); !errors.Is(err, bls.ErrInvalidLength) {
			t.Errorf("expected ErrInvalidLength, got %v", err)
		}
	})

	t.Run("Binary", func(t *testing.T) {
		enc, err := pk.MarshalBinary()
		if err != nil {
			t.Fatal(err)
		}
		var decoded gnark.PublicKey
		if err := decoded.UnmarshalBinary(enc); err != nil {
			t.Fatal(err)
		}
		if !decoded.Equal(pk) {
			t.Error("binary roundtrip failed")
		}
	})

	t.Run("JSON", func(t *testing.T) {
		type record struct {
			Pubkey *gnark.PublicKey `json:"pubkey"`
		}
		data, err := json.Marshal(record{Pubkey: pk})
		if err != nil {
			t.Fatal(err)
		}
		want := `{"pubkey":"` + pk.HexString() + `"}`
		if string(data) != want {
			t.Fatalf("json = %s, want %s", data, want)
		}

		var decoded record
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatal(err)
		}
		if !decoded.Pubkey.Equal(pk) {
			t.Error("json roundtrip failed")
		}

		bad := `{"pubkey":"0x` + strings.Repeat("00", bls.PublicKeyLength) + `"}`
		if err := json.Unmarshal([]byte(bad), &decoded); !errors.Is(err, bls.ErrInvalidPoint) {
			t.Errorf("expected ErrInvalidPoint, got %v", err)
		}
	})

	t.Run("YAML", func(t *testing.T) {
		type record struct {
			Pubkey *gnark.PublicKey `yaml:"pubkey"`
		}
		data, err := yaml.Marshal(record{Pubkey: pk})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), pk.HexString()) {
			t.Fatalf("yaml does not contain hex form: %s", data)
		}

		var decoded record
		if err := yaml.Unmarshal(data, &decoded); err != nil {
			t.Fatal(err)
		}
		if !decoded.Pubkey.Equal(pk) {
			t.Error("yaml roundtrip failed")
		}

		if err := yaml.Unmarshal([]byte("pubkey: 0x1234\n"), &decoded); err == nil {
			t.Error("expected error for short key")
		}
	})
}

func TestConcurrentDeserialize(t *testing.T) {
	const workers = 16
	keys := make([]*gnark.PublicKey, workers)
	for i := range keys {
		keys[i] = randomPublicKey(t)
	}

	results := make([]*gnark.PublicKey, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b := keys[i].Serialize()
			results[i], errs[i] = gnark.DeserializePublicKey(b[:])
		}(i)
	}
	wg.Wait()

	for i := range keys {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if !results[i].Equal(keys[i]) {
			t.Errorf("worker %d decoded a different key", i)
		}
	}
}
