package dilithium

import (
	"errors"
	"testing"

	pqcrypt "github.com/qsafelabs/pqcrypt-go"
)

func TestDecodePublicKeyTruncated(t *testing.T) {
	e := testEngine(t, 2)
	kp, err := e.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	for _, cut := range []int{0, 4, e.params.SeedSize, e.PublicKeySize() - 1} {
		if _, _, err := e.decodePublicKey(kp.PublicKey[:cut]); !errors.Is(err, pqcrypt.ErrInvalidKeyFormat) {
			t.Errorf("decodePublicKey(%d bytes) error = %v, want ErrInvalidKeyFormat", cut, err)
		}
	}
}

func TestDecodePrivateKeyTruncated(t *testing.T) {
	e := testEngine(t, 2)
	kp, err := e.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	for _, cut := range []int{0, e.params.SeedSize, e.PrivateKeySize() / 2, e.PrivateKeySize() - 1} {
		if _, _, _, _, err := e.decodePrivateKey(kp.PrivateKey[:cut]); !errors.Is(err, pqcrypt.ErrInvalidKeyFormat) {
			t.Errorf("decodePrivateKey(%d bytes) error = %v, want ErrInvalidKeyFormat", cut, err)
		}
	}
}

func TestDecodeSignatureWrongLength(t *testing.T) {
	e := testEngine(t, 2)
	for _, size := range []int{0, 4, e.SignatureSize() - 1, e.SignatureSize() + 1} {
		if _, _, err := e.decodeSignature(make([]byte, size)); !errors.Is(err, pqcrypt.ErrInvalidSignatureFormat) {
			t.Errorf("decodeSignature(%d bytes) error = %v, want ErrInvalidSignatureFormat", size, err)
		}
	}
}

func TestSignatureEncodingPreservesChallengeSign(t *testing.T) {
	e := testEngine(t, 2)
	c := make([]int32, e.params.N)
	z := make([]int32, e.params.N)
	c[0], c[1], c[63] = -1, 1, -1
	z[0] = 123456

	decC, decZ, err := e.decodeSignature(e.encodeSignature(c, z))
	if err != nil {
		t.Fatalf("decodeSignature failed: %v", err)
	}
	if decC[0] != -1 || decC[1] != 1 || decC[63] != -1 {
		t.Errorf("challenge signs lost: got %d %d %d", decC[0], decC[1], decC[63])
	}
	if decZ[0] != 123456 {
		t.Errorf("z[0] = %d, want 123456", decZ[0])
	}
	for i := e.challengeSize; i < e.params.N; i++ {
		if decC[i] != 0 {
			t.Fatalf("challenge padding at %d = %d, want 0", i, decC[i])
		}
	}
}
