package lwe

import (
	"testing"

	"github.com/qsafelabs/pqcrypt-go/core"
	"github.com/qsafelabs/pqcrypt-go/utils"
)

// FuzzDecrypt feeds arbitrary ciphertext bytes to the stream decrypter.
// It must never panic; malformed input may only produce an error.
func FuzzDecrypt(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0, 0, 0, 0})
	f.Add([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	f.Add(make([]byte, 520))
	f.Add(make([]byte, 4+516))

	engine, err := New(core.LightLatticeParams, utils.NewDeterministicRNG([]byte("fuzz")))
	if err != nil {
		f.Fatal(err)
	}
	kp, err := engine.GenerateKeyPair()
	if err != nil {
		f.Fatal(err)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = engine.Decrypt(data, kp.PrivateKey)
	})
}

// FuzzDecodePublicKey exercises the public key decoder bounds checks.
func FuzzDecodePublicKey(f *testing.F) {
	f.Add([]byte{})
	f.Add(make([]byte, 4))
	f.Add(make([]byte, 4*128*128+4*128))

	f.Fuzz(func(t *testing.T, data []byte) {
		_, _, _ = decodePublicKey(data, 128)
	})
}
