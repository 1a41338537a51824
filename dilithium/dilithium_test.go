package dilithium

import (
	"bytes"
	"errors"
	"testing"

	pqcrypt "github.com/qsafelabs/pqcrypt-go"
	"github.com/qsafelabs/pqcrypt-go/utils"
)

func testEngine(t *testing.T, level int) *Engine {
	t.Helper()
	engine, err := New(level, utils.NewDeterministicRNG([]byte("dilithium test")))
	if err != nil {
		t.Fatalf("New(%d) failed: %v", level, err)
	}
	return engine
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	for _, level := range []int{0, 1, 4, 6, -2} {
		if _, err := New(level, nil); err == nil {
			t.Errorf("New(%d) accepted unknown level", level)
		}
	}
}

func TestRoundtripAllLevels(t *testing.T) {
	msg := []byte("lattice signature roundtrip")
	for _, level := range []int{2, 3, 5} {
		e := testEngine(t, level)
		kp, err := e.GenerateKeyPair()
		if err != nil {
			t.Fatalf("level %d: GenerateKeyPair failed: %v", level, err)
		}
		sig, err := e.Sign(msg, kp.PrivateKey)
		if err != nil {
			t.Fatalf("level %d: Sign failed: %v", level, err)
		}
		if !e.Verify(msg, sig, kp.PublicKey) {
			t.Errorf("level %d: valid signature rejected", level)
		}
	}
}

func TestSizesByLevel(t *testing.T) {
	cases := []struct {
		level            int
		pubSize, privSize, sigSize int
	}{
		// seed + 4n + pad / seed + 12n + pad / 4*min(n,64) + 4n
		{2, 32 + 4*256 + 8, 32 + 12*256 + 8, 4*64 + 4*256},
		{3, 48 + 4*512 + 12, 48 + 12*512 + 12, 4*64 + 4*512},
		{5, 64 + 4*768 + 20, 64 + 12*768 + 20, 4*64 + 4*768},
	}
	for _, c := range cases {
		e := testEngine(t, c.level)
		kp, err := e.GenerateKeyPair()
		if err != nil {
			t.Fatal(err)
		}
		if len(kp.PublicKey) != c.pubSize || e.PublicKeySize() != c.pubSize {
			t.Errorf("level %d: public key = %d bytes, want %d", c.level, len(kp.PublicKey), c.pubSize)
		}
		if len(kp.PrivateKey) != c.privSize || e.PrivateKeySize() != c.privSize {
			t.Errorf("level %d: private key = %d bytes, want %d", c.level, len(kp.PrivateKey), c.privSize)
		}
		sig, err := e.Sign([]byte("m"), kp.PrivateKey)
		if err != nil {
			t.Fatal(err)
		}
		if len(sig.Signature) != c.sigSize || e.SignatureSize() != c.sigSize {
			t.Errorf("level %d: signature = %d bytes, want %d", c.level, len(sig.Signature), c.sigSize)
		}
	}
}

func TestLevelPadding(t *testing.T) {
	for _, level := range []int{2, 3, 5} {
		e := testEngine(t, level)
		kp, err := e.GenerateKeyPair()
		if err != nil {
			t.Fatal(err)
		}
		pad := kp.PublicKey[len(kp.PublicKey)-e.params.PadSize:]
		for i, b := range pad {
			if b != byte(level) {
				t.Errorf("level %d: pad byte %d = %d, want %d", level, i, b, level)
			}
		}
	}
}

func TestDetectLevel(t *testing.T) {
	for _, level := range []int{2, 3, 5} {
		e := testEngine(t, level)
		kp, err := e.GenerateKeyPair()
		if err != nil {
			t.Fatal(err)
		}
		got, err := DetectLevel(kp.PublicKey)
		if err != nil {
			t.Fatalf("DetectLevel failed for level %d: %v", level, err)
		}
		if got != level {
			t.Errorf("DetectLevel = %d, want %d", got, level)
		}
	}
	if _, err := DetectLevel(make([]byte, 100)); !errors.Is(err, pqcrypt.ErrInvalidKeyFormat) {
		t.Errorf("DetectLevel(garbage) error = %v, want ErrInvalidKeyFormat", err)
	}
}

func TestVerifyRejectsDifferentMessage(t *testing.T) {
	e := testEngine(t, 2)
	kp, _ := e.GenerateKeyPair()
	sig, err := e.Sign([]byte("original message"), kp.PrivateKey)
	if err != nil {
		t.Fatal(err)
	}
	if e.Verify([]byte("different message"), sig, kp.PublicKey) {
		t.Error("signature for a different message accepted")
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	e := testEngine(t, 2)
	kp, _ := e.GenerateKeyPair()
	msg := []byte("tamper target")
	sig, err := e.Sign(msg, kp.PrivateKey)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(sig.Signature); i += 31 {
		tampered := &pqcrypt.Signature{Signature: append([]byte(nil), sig.Signature...)}
		tampered.Signature[i] ^= 0x01
		if e.Verify(msg, tampered, kp.PublicKey) {
			t.Fatalf("verification passed with signature byte %d flipped", i)
		}
	}
}

func TestVerifyRejectsWrongPublicKey(t *testing.T) {
	e := testEngine(t, 2)
	kp1, _ := e.GenerateKeyPair()
	kp2, _ := e.GenerateKeyPair()
	msg := []byte("hello")
	sig, err := e.Sign(msg, kp1.PrivateKey)
	if err != nil {
		t.Fatal(err)
	}
	if e.Verify(msg, sig, kp2.PublicKey) {
		t.Error("verification passed with unrelated public key")
	}
}

func TestVerifyNeverErrorsOnMalformedInput(t *testing.T) {
	e := testEngine(t, 2)
	kp, _ := e.GenerateKeyPair()
	msg := []byte("m")

	if e.Verify(msg, nil, kp.PublicKey) {
		t.Error("nil signature accepted")
	}
	if e.Verify(msg, &pqcrypt.Signature{}, kp.PublicKey) {
		t.Error("empty signature accepted")
	}
	if e.Verify(msg, &pqcrypt.Signature{Signature: make([]byte, 64)}, kp.PublicKey) {
		t.Error("short signature accepted")
	}
	sig, _ := e.Sign(msg, kp.PrivateKey)
	if e.Verify(msg, sig, nil) {
		t.Error("nil public key accepted")
	}
	if e.Verify(msg, sig, kp.PublicKey[:40]) {
		t.Error("short public key accepted")
	}
	if e.Verify(nil, sig, kp.PublicKey) {
		t.Error("nil message accepted")
	}
}

func TestSignRejectsBadInput(t *testing.T) {
	e := testEngine(t, 2)
	kp, _ := e.GenerateKeyPair()

	if _, err := e.Sign(nil, kp.PrivateKey); !errors.Is(err, pqcrypt.ErrInvalidInput) {
		t.Errorf("Sign(nil message) error = %v, want ErrInvalidInput", err)
	}
	if _, err := e.Sign([]byte("m"), nil); !errors.Is(err, pqcrypt.ErrInvalidInput) {
		t.Errorf("Sign(nil key) error = %v, want ErrInvalidInput", err)
	}
	if _, err := e.Sign([]byte("m"), kp.PrivateKey[:64]); !errors.Is(err, pqcrypt.ErrInvalidKeyFormat) {
		t.Errorf("Sign(short key) error = %v, want ErrInvalidKeyFormat", err)
	}
}

func TestExpandSeedDeterministic(t *testing.T) {
	e := testEngine(t, 2)
	seed := utils.Hash([]byte("expand"), e.params.SeedSize)
	a1 := e.expandSeed(seed)
	a2 := e.expandSeed(seed)
	if len(a1) != e.params.N {
		t.Fatalf("expanded length = %d, want %d", len(a1), e.params.N)
	}
	for i := range a1 {
		if a1[i] != a2[i] {
			t.Fatalf("expandSeed not deterministic at %d", i)
		}
		if a1[i] < 0 || int(a1[i]) >= e.params.Q {
			t.Fatalf("coefficient %d out of range: %d", i, a1[i])
		}
	}
}

func TestChallengeSparseTernary(t *testing.T) {
	e := testEngine(t, 2)
	w := make([]int32, e.params.N)
	for i := range w {
		w[i] = int32(i * 1000 % e.params.Q)
	}
	c := e.challenge(w, utils.Hash([]byte("digest"), 64))
	if len(c) != e.params.N {
		t.Fatalf("challenge length = %d, want %d", len(c), e.params.N)
	}
	for i, x := range c {
		if x < -1 || x > 1 {
			t.Fatalf("challenge coefficient %d = %d, want ternary", i, x)
		}
		if i >= e.challengeSize && x != 0 {
			t.Fatalf("challenge coefficient %d = %d, want 0 past digest", i, x)
		}
	}
}

func TestPrivateKeyRoundtripsThroughEncoding(t *testing.T) {
	e := testEngine(t, 2)
	kp, err := e.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	seed, s1, s2, tvec, err := e.decodePrivateKey(kp.PrivateKey)
	if err != nil {
		t.Fatalf("decodePrivateKey failed: %v", err)
	}
	again := e.encodePrivateKey(seed, s1, s2, tvec)
	if !bytes.Equal(again, kp.PrivateKey) {
		t.Error("private key changed across decode/encode")
	}
	for i, x := range s1 {
		if x < -eta || x > eta {
			t.Fatalf("s1[%d] = %d outside [-%d,%d]", i, x, eta, eta)
		}
	}
}
