package lwe

import (
	"encoding/binary"
	"fmt"

	pqcrypt "github.com/qsafelabs/pqcrypt-go"
)

// Wire layout, all little-endian 4-byte words:
//
//	public key:     n*n matrix words (row-major), then n vector words
//	private key:    n vector words
//	bit ciphertext: n c1 words, then one c2 word
//	stream:         4-byte plaintext length, then 8*length bit ciphertexts
const streamHeaderSize = 4

func putVector(dst []byte, v []int32) {
	for i, x := range v {
		binary.LittleEndian.PutUint32(dst[i*4:], uint32(x))
	}
}

func getVector(src []byte, n int) []int32 {
	v := make([]int32, n)
	for i := 0; i < n; i++ {
		v[i] = int32(binary.LittleEndian.Uint32(src[i*4:]))
	}
	return v
}

// encodePublicKey serializes (A, b) as n*n matrix words followed by n vector
// words.
func encodePublicKey(A, b []int32) []byte {
	out := make([]byte, len(A)*4+len(b)*4)
	putVector(out, A)
	putVector(out[len(A)*4:], b)
	return out
}

// decodePublicKey recovers (A, b) for dimension n. Keys shorter than the
// configured parameters require are rejected; trailing bytes are ignored.
func decodePublicKey(data []byte, n int) (A, b []int32, err error) {
	need := 4*n*n + 4*n
	if len(data) < need {
		return nil, nil, fmt.Errorf("%w: public key is %d bytes, need %d for n=%d",
			pqcrypt.ErrInvalidKeyFormat, len(data), need, n)
	}
	A = getVector(data, n*n)
	b = getVector(data[4*n*n:], n)
	return A, b, nil
}

// encodePrivateKey serializes the secret vector s as n words.
func encodePrivateKey(s []int32) []byte {
	out := make([]byte, len(s)*4)
	putVector(out, s)
	return out
}

func decodePrivateKey(data []byte, n int) ([]int32, error) {
	if len(data) < 4*n {
		return nil, fmt.Errorf("%w: private key is %d bytes, need %d for n=%d",
			pqcrypt.ErrInvalidKeyFormat, len(data), 4*n, n)
	}
	return getVector(data, n), nil
}

// encodeBitCiphertext serializes (c1, c2) as n words plus one word.
func encodeBitCiphertext(c1 []int32, c2 int32) []byte {
	out := make([]byte, len(c1)*4+4)
	putVector(out, c1)
	binary.LittleEndian.PutUint32(out[len(c1)*4:], uint32(c2))
	return out
}

func decodeBitCiphertext(data []byte, n int) (c1 []int32, c2 int32, err error) {
	if len(data) != 4*n+4 {
		return nil, 0, fmt.Errorf("%w: bit ciphertext is %d bytes, want %d",
			pqcrypt.ErrCorruptedCiphertext, len(data), 4*n+4)
	}
	c1 = getVector(data, n)
	c2 = int32(binary.LittleEndian.Uint32(data[4*n:]))
	return c1, c2, nil
}
