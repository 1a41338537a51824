// Package utils provides the hash and randomness collaborators for pqcrypt,
// plus safe arithmetic and constant-time helpers shared by all schemes.
package utils

import (
	"sync"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

const (
	// MaxHashConcatInputSize bounds each HashConcat input to keep the length
	// framing unambiguous. Each input must be <= 100MB.
	MaxHashConcatInputSize = 100 * 1024 * 1024
)

// Hash computes a BLAKE2b digest of the requested output length. Lengths up to
// 64 bytes use the plain BLAKE2b digest; longer outputs use the BLAKE2Xb XOF.
// Panics if outputLen is not positive.
func Hash(data []byte, outputLen int) []byte {
	if outputLen <= 0 {
		panic("utils: hash output length must be positive")
	}
	out := make([]byte, outputLen)
	if outputLen <= blake2b.Size {
		h, err := blake2b.New(outputLen, nil)
		if err != nil {
			panic(err)
		}
		h.Write(data)
		copy(out, h.Sum(nil))
		return out
	}
	x, err := blake2b.NewXOF(uint32(outputLen), nil)
	if err != nil {
		panic(err)
	}
	x.Write(data)
	_, _ = x.Read(out)
	return out
}

// HashWithDomain computes a domain-separated BLAKE2b-256 hash. The data is
// prefixed with the length of the domain string and the domain string itself,
// preventing collisions between different uses of the hash.
// Panics if domain is longer than 255 bytes.
func HashWithDomain(domain string, data []byte) []byte {
	domainBytes := []byte(domain)
	if len(domainBytes) > 255 {
		panic("domain string must be at most 255 bytes")
	}
	h, _ := blake2b.New256(nil)
	h.Write([]byte{byte(len(domainBytes))})
	h.Write(domainBytes)
	h.Write(data)
	return h.Sum(nil)
}

// HashConcat computes the BLAKE2b-256 hash of the concatenation of multiple
// byte slices. Each slice is prefixed with its length (4 bytes, little-endian)
// to ensure unique encoding.
func HashConcat(inputs ...[]byte) []byte {
	h, _ := blake2b.New256(nil)
	lenBytes := make([]byte, 4)
	for _, input := range inputs {
		if len(input) > MaxHashConcatInputSize {
			panic("HashConcat: input size exceeds maximum")
		}
		l := len(input)
		lenBytes[0] = byte(l)
		lenBytes[1] = byte(l >> 8)
		lenBytes[2] = byte(l >> 16)
		lenBytes[3] = byte(l >> 24)
		h.Write(lenBytes)
		h.Write(input)
	}
	return h.Sum(nil)
}

var shake256Pool = sync.Pool{
	New: func() interface{} {
		return sha3.NewShake256()
	},
}

// Shake256 computes the SHAKE256 extendable output function. It is used where
// a scheme needs a long deterministic byte stream from a short seed, such as
// the Dilithium matrix expansion.
func Shake256(input []byte, outputLen int) []byte {
	h := shake256Pool.Get().(sha3.ShakeHash)
	defer func() {
		h.Reset()
		shake256Pool.Put(h)
	}()

	h.Write(input)
	output := make([]byte, outputLen)
	_, _ = h.Read(output)
	return output
}

// Shake256Into computes SHAKE256 and writes the output into the provided buffer.
func Shake256Into(input []byte, output []byte) {
	h := shake256Pool.Get().(sha3.ShakeHash)
	defer func() {
		h.Reset()
		shake256Pool.Put(h)
	}()

	h.Write(input)
	_, _ = h.Read(output)
}
