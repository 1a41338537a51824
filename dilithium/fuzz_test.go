package dilithium

import (
	"testing"

	pqcrypt "github.com/qsafelabs/pqcrypt-go"
	"github.com/qsafelabs/pqcrypt-go/utils"
)

// FuzzVerify feeds arbitrary signature bytes to the verifier. It must never
// panic and must reject everything that is not a genuine signature.
func FuzzVerify(f *testing.F) {
	f.Add([]byte{})
	f.Add(make([]byte, 64))
	f.Add(make([]byte, 4*64+4*256))

	engine, err := New(2, utils.NewDeterministicRNG([]byte("fuzz")))
	if err != nil {
		f.Fatal(err)
	}
	kp, err := engine.GenerateKeyPair()
	if err != nil {
		f.Fatal(err)
	}

	f.Fuzz(func(t *testing.T, sigBytes []byte) {
		if engine.Verify([]byte("fuzz message"), &pqcrypt.Signature{Signature: sigBytes}, kp.PublicKey) {
			t.Fatal("fuzzer forged a signature")
		}
	})
}

// FuzzDetectLevel must never panic on arbitrary key material.
func FuzzDetectLevel(f *testing.F) {
	f.Add([]byte{})
	f.Add(make([]byte, 1064))
	f.Add(make([]byte, 2072))

	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = DetectLevel(data)
	})
}
