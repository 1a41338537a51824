package utils

import (
	"bytes"
	"testing"
)

func TestSystemRNGRandomBytes(t *testing.T) {
	rng := NewSystemRNG()
	a, err := rng.RandomBytes(32)
	if err != nil {
		t.Fatalf("RandomBytes failed: %v", err)
	}
	b, err := rng.RandomBytes(32)
	if err != nil {
		t.Fatalf("RandomBytes failed: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("two 32-byte draws were identical")
	}
	if _, err := rng.RandomBytes(-1); err == nil {
		t.Error("negative count accepted")
	}
	empty, err := rng.RandomBytes(0)
	if err != nil || len(empty) != 0 {
		t.Errorf("RandomBytes(0) = %v, %v", empty, err)
	}
}

func TestRandomIntRange(t *testing.T) {
	rng := NewDeterministicRNG([]byte("int range"))
	seen := make(map[int]int)
	for i := 0; i < 3000; i++ {
		v, err := rng.RandomInt(-2, 3)
		if err != nil {
			t.Fatalf("RandomInt failed: %v", err)
		}
		if v < -2 || v > 2 {
			t.Fatalf("RandomInt out of range: %d", v)
		}
		seen[v]++
	}
	for v := -2; v <= 2; v++ {
		if seen[v] == 0 {
			t.Errorf("value %d never drawn", v)
		}
		// Uniform expectation is 600 per value; allow wide slack.
		if seen[v] < 400 || seen[v] > 800 {
			t.Errorf("value %d drawn %d times, expected about 600", v, seen[v])
		}
	}

	if _, err := rng.RandomInt(5, 5); err == nil {
		t.Error("empty interval accepted")
	}
	if v, err := rng.RandomInt(7, 8); err != nil || v != 7 {
		t.Errorf("single-value interval = %d, %v", v, err)
	}
}

func TestRandomFloatRange(t *testing.T) {
	rng := NewDeterministicRNG([]byte("float range"))
	var sum float64
	for i := 0; i < 2000; i++ {
		f, err := rng.RandomFloat()
		if err != nil {
			t.Fatalf("RandomFloat failed: %v", err)
		}
		if f < 0 || f >= 1 {
			t.Fatalf("RandomFloat out of [0,1): %f", f)
		}
		sum += f
	}
	mean := sum / 2000
	if mean < 0.45 || mean > 0.55 {
		t.Errorf("mean %.3f too far from 0.5", mean)
	}
}

func TestDeterministicRNGReproducible(t *testing.T) {
	a := NewDeterministicRNG([]byte("seed"))
	b := NewDeterministicRNG([]byte("seed"))
	ba, _ := a.RandomBytes(64)
	bb, _ := b.RandomBytes(64)
	if !bytes.Equal(ba, bb) {
		t.Error("same seed produced different streams")
	}

	c := NewDeterministicRNG([]byte("other seed"))
	bc, _ := c.RandomBytes(64)
	if bytes.Equal(ba, bc) {
		t.Error("different seeds produced identical streams")
	}
}

func TestValidateSeedEntropy(t *testing.T) {
	good := Hash([]byte("a perfectly fine seed"), 32)
	if err := ValidateSeedEntropy(good); err != nil {
		t.Errorf("good seed rejected: %v", err)
	}

	if err := ValidateSeedEntropy(make([]byte, 16)); err == nil {
		t.Error("short seed accepted")
	}
	if err := ValidateSeedEntropy(make([]byte, 32)); err == nil {
		t.Error("all-zero seed accepted")
	}
	if err := ValidateSeedEntropy(bytes.Repeat([]byte{0xAA}, 32)); err == nil {
		t.Error("repeated-byte seed accepted")
	}

	ascending := make([]byte, 32)
	for i := range ascending {
		ascending[i] = byte(i)
	}
	if err := ValidateSeedEntropy(ascending); err == nil {
		t.Error("ascending seed accepted")
	}

	lowDiversity := bytes.Repeat([]byte{1, 2, 3, 4}, 8)
	if err := ValidateSeedEntropy(lowDiversity); err == nil {
		t.Error("low-diversity seed accepted")
	}
}
