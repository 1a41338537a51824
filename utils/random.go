package utils

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"io"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// RandReader is the entropy source used by the system CSPRNG. Tests may swap
// it for a deterministic reader.
var RandReader io.Reader = rand.Reader

// CSPRNG is the randomness collaborator consumed by every engine. Engines take
// a CSPRNG at construction (explicit dependency injection), so a seeded
// implementation yields fully reproducible key generation and encryption.
//
// Implementations must be safe for concurrent use if the owning engine is
// shared between goroutines; this is a requirement on the implementation, not
// something the engines enforce.
type CSPRNG interface {
	// RandomBytes returns n cryptographically secure random bytes.
	RandomBytes(n int) ([]byte, error)
	// RandomInt returns a uniform integer in [min, max).
	RandomInt(min, max int) (int, error)
	// RandomFloat returns a uniform float64 in [0, 1).
	RandomFloat() (float64, error)
}

// SystemRNG is a CSPRNG backed by the operating system's entropy source.
type SystemRNG struct{}

// NewSystemRNG returns a CSPRNG reading from RandReader (crypto/rand).
func NewSystemRNG() *SystemRNG {
	return &SystemRNG{}
}

// RandomBytes generates n cryptographically secure random bytes.
func (r *SystemRNG) RandomBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.New("byte count must be non-negative")
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(RandReader, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// RandomInt generates a uniform integer in [min, max) using rejection
// sampling on the underlying byte stream.
func (r *SystemRNG) RandomInt(min, max int) (int, error) {
	return randomIntFrom(r, min, max)
}

// RandomFloat generates a uniform float64 in [0, 1) with 53 bits of entropy.
func (r *SystemRNG) RandomFloat() (float64, error) {
	return randomFloatFrom(r)
}

// DeterministicRNG is a CSPRNG producing a reproducible BLAKE2Xb stream from a
// seed. It exists for deterministic testing; it must never be used for real
// key material.
type DeterministicRNG struct {
	mu  sync.Mutex
	xof blake2b.XOF
}

// NewDeterministicRNG creates a seeded CSPRNG.
func NewDeterministicRNG(seed []byte) *DeterministicRNG {
	x, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, nil)
	if err != nil {
		panic(err)
	}
	x.Write(seed)
	return &DeterministicRNG{xof: x}
}

// RandomBytes reads the next n bytes of the seeded stream.
func (r *DeterministicRNG) RandomBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.New("byte count must be non-negative")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.xof, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// RandomInt returns a uniform integer in [min, max) from the seeded stream.
func (r *DeterministicRNG) RandomInt(min, max int) (int, error) {
	return randomIntFrom(r, min, max)
}

// RandomFloat returns a uniform float64 in [0, 1) from the seeded stream.
func (r *DeterministicRNG) RandomFloat() (float64, error) {
	return randomFloatFrom(r)
}

// randomIntFrom implements uniform [min, max) sampling on top of RandomBytes.
// Rejection sampling keeps the distribution unbiased.
func randomIntFrom(src CSPRNG, min, max int) (int, error) {
	if max <= min {
		return 0, errors.New("max must be greater than min")
	}
	span := max - min
	if span == 1 {
		return min, nil
	}

	bitsNeeded := 0
	for m := span - 1; m > 0; m >>= 1 {
		bitsNeeded++
	}
	bytesNeeded := (bitsNeeded + 7) / 8
	mask := (1 << bitsNeeded) - 1

	for {
		buf, err := src.RandomBytes(bytesNeeded)
		if err != nil {
			return 0, err
		}
		var value int
		for i := 0; i < bytesNeeded; i++ {
			value = (value << 8) | int(buf[i])
		}
		value &= mask
		if value < span {
			return min + value, nil
		}
	}
}

func randomFloatFrom(src CSPRNG) (float64, error) {
	buf, err := src.RandomBytes(8)
	if err != nil {
		return 0, err
	}
	// 53 bits map exactly onto the float64 mantissa.
	v := binary.LittleEndian.Uint64(buf) >> 11
	return float64(v) / (1 << 53), nil
}

// ValidateSeedEntropy checks if a seed has sufficient entropy. It performs
// basic statistical tests to reject obviously weak seeds (all zeros,
// sequential bytes). This is a sanity check, not a rigorous randomness test.
func ValidateSeedEntropy(seed []byte) error {
	if len(seed) < 32 {
		return errors.New("seed must be at least 32 bytes")
	}

	first := seed[0]
	allSame := true
	for i := 1; i < len(seed); i++ {
		if seed[i] != first {
			allSame = false
			break
		}
	}
	if allSame {
		return errors.New("seed has low entropy: all bytes are identical")
	}

	isAscending := true
	isDescending := true
	for i := 1; i < len(seed); i++ {
		if seed[i] != byte((int(seed[i-1])+1)%256) {
			isAscending = false
		}
		if seed[i] != byte((int(seed[i-1])-1+256)%256) {
			isDescending = false
		}
		if !isAscending && !isDescending {
			break
		}
	}
	if isAscending || isDescending {
		return errors.New("seed has low entropy: sequential pattern detected")
	}

	unique := make(map[byte]struct{})
	for _, b := range seed {
		unique[b] = struct{}{}
		if len(unique) >= 8 {
			break
		}
	}
	if len(unique) < 8 {
		return errors.New("seed has low entropy: insufficient byte diversity")
	}

	return nil
}
