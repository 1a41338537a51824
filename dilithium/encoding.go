package dilithium

import (
	"encoding/binary"
	"fmt"

	pqcrypt "github.com/qsafelabs/pqcrypt-go"
	"github.com/qsafelabs/pqcrypt-go/core"
	"github.com/qsafelabs/pqcrypt-go/ring"
)

// Wire layouts, all little-endian 4-byte words:
//
//	public key:  seed || t (n words) || pad
//	private key: seed || s1 (n words) || s2 (n words) || t (n words) || pad
//	signature:   c (min(n,64) words, two's complement) || z (n words)
//
// The pad is PadSize bytes, each set to the numeric security level. It exists
// purely so that serialized sizes differ visibly by level; DetectLevel uses
// the total length, not the pad contents, to identify the format.

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

// getCentered decodes a vector stored mod q back into centered
// representation.
func getCentered(src []byte, n, q int) []int32 {
	v := getVector(src, n)
	for i := range v {
		v[i] = ring.CenterMod(v[i], q)
	}
	return v
}

func appendPad(dst []byte, level, padSize int) []byte {
	for i := 0; i < padSize; i++ {
		dst = append(dst, byte(level))
	}
	return dst
}

func (e *Engine) encodePublicKey(seed []byte, t []int32) []byte {
	p := e.params
	out := make([]byte, 0, e.PublicKeySize())
	out = append(out, seed...)
	vec := make([]byte, len(t)*4)
	putVector(vec, t)
	out = append(out, vec...)
	return appendPad(out, p.Level, p.PadSize)
}

func (e *Engine) decodePublicKey(data []byte) (seed []byte, t []int32, err error) {
	p := e.params
	if len(data) < e.PublicKeySize() {
		return nil, nil, fmt.Errorf("%w: public key is %d bytes, need %d for level %d",
			pqcrypt.ErrInvalidKeyFormat, len(data), e.PublicKeySize(), p.Level)
	}
	seed = data[:p.SeedSize]
	t = getVector(data[p.SeedSize:], p.N)
	return seed, t, nil
}

func (e *Engine) encodePrivateKey(seed []byte, s1, s2, t []int32) []byte {
	p := e.params
	out := make([]byte, 0, e.PrivateKeySize())
	out = append(out, seed...)
	vec := make([]byte, p.N*4)
	for _, v := range [][]int32{s1, s2, t} {
		words := make([]int32, p.N)
		for i, x := range v {
			words[i] = ring.Mod(int64(x), p.Q)
		}
		putVector(vec, words)
		out = append(out, vec...)
	}
	return appendPad(out, p.Level, p.PadSize)
}

func (e *Engine) decodePrivateKey(data []byte) (seed []byte, s1, s2, t []int32, err error) {
	p := e.params
	if len(data) < e.PrivateKeySize() {
		return nil, nil, nil, nil, fmt.Errorf("%w: private key is %d bytes, need %d for level %d",
			pqcrypt.ErrInvalidKeyFormat, len(data), e.PrivateKeySize(), p.Level)
	}
	offset := p.SeedSize
	seed = data[:offset]
	s1 = getCentered(data[offset:], p.N, p.Q)
	offset += p.N * 4
	s2 = getCentered(data[offset:], p.N, p.Q)
	offset += p.N * 4
	t = getVector(data[offset:], p.N)
	return seed, s1, s2, t, nil
}

func (e *Engine) encodeSignature(c, z []int32) []byte {
	out := make([]byte, e.SignatureSize())
	putVector(out, c[:e.challengeSize])
	putVector(out[e.challengeSize*4:], z)
	return out
}

// decodeSignature recovers the sparse challenge (padded back to full ring
// dimension) and the response vector.
func (e *Engine) decodeSignature(data []byte) (c, z []int32, err error) {
	if len(data) != e.SignatureSize() {
		return nil, nil, fmt.Errorf("%w: signature is %d bytes, want %d",
			pqcrypt.ErrInvalidSignatureFormat, len(data), e.SignatureSize())
	}
	c = make([]int32, e.params.N)
	copy(c, getVector(data, e.challengeSize))
	z = getVector(data[e.challengeSize*4:], e.params.N)
	return c, z, nil
}

// DetectLevel identifies the security level of a serialized public key by its
// total length. The level-dependent padding guarantees the three sizes are
// distinct.
func DetectLevel(publicKey []byte) (int, error) {
	for _, level := range []int{2, 3, 5} {
		p, err := core.GetDilithiumParams(level)
		if err != nil {
			return 0, err
		}
		if len(publicKey) == p.SeedSize+p.N*4+p.PadSize {
			return level, nil
		}
	}
	return 0, fmt.Errorf("%w: length %d matches no security level",
		pqcrypt.ErrInvalidKeyFormat, len(publicKey))
}
