// Package lwe implements a simplified Learning-With-Errors public-key
// encryption scheme. Plaintext bytes are encrypted bit by bit; each bit
// becomes an independent LWE sample, so the scheme trades enormous ciphertext
// expansion for a very small amount of code.
package lwe

import (
	"encoding/binary"
	"fmt"

	pqcrypt "github.com/qsafelabs/pqcrypt-go"
	"github.com/qsafelabs/pqcrypt-go/core"
	"github.com/qsafelabs/pqcrypt-go/ring"
	"github.com/qsafelabs/pqcrypt-go/utils"
)

// maxBitErrorPercent is the best-effort tolerance for per-bit decryption
// failures during stream decryption. Bits failing within the budget default
// to 0; exceeding it aborts the whole operation.
const maxBitErrorPercent = 5

// maxBitRunPercent flags decrypted streams whose longest run of identical
// bits exceeds this share of the total as suspicious (likely wrong key).
// A statistical heuristic, not a cryptographic guarantee.
const maxBitRunPercent = 70

// Engine is an LWE encryption engine for one fixed parameter set. It holds
// only immutable configuration and the injected CSPRNG, so a single Engine
// may be shared between goroutines if the CSPRNG is thread-safe.
type Engine struct {
	params  pqcrypt.LatticeParams
	sampler *ring.Sampler
}

// New constructs an engine. A nil rng selects the system CSPRNG.
func New(params pqcrypt.LatticeParams, rng utils.CSPRNG) (*Engine, error) {
	if err := core.ValidateLatticeParams(params); err != nil {
		return nil, err
	}
	return &Engine{
		params:  params,
		sampler: ring.NewSampler(rng),
	}, nil
}

// Params returns the engine's immutable parameter set.
func (e *Engine) Params() pqcrypt.LatticeParams { return e.params }

// PublicKeySize returns the serialized public key size: 4n^2 + 4n bytes.
func (e *Engine) PublicKeySize() int { return 4*e.params.N*e.params.N + 4*e.params.N }

// PrivateKeySize returns the serialized private key size: 4n bytes.
func (e *Engine) PrivateKeySize() int { return 4 * e.params.N }

// BitCiphertextSize returns the size of one bit ciphertext: 4n + 4 bytes.
func (e *Engine) BitCiphertextSize() int { return 4*e.params.N + 4 }

// CiphertextSize returns the stream ciphertext size for a plaintext of
// dataLen bytes.
func (e *Engine) CiphertextSize(dataLen int) int {
	return streamHeaderSize + dataLen*8*e.BitCiphertextSize()
}

// GenerateKeyPair draws a uniform matrix A, a binary secret s and a Gaussian
// error e, and publishes b = A*s + e mod q. The public key serializes (A, b);
// the private key serializes s.
func (e *Engine) GenerateKeyPair() (*pqcrypt.KeyPair, error) {
	n, q := e.params.N, e.params.Q

	A, err := e.sampler.UniformMatrix(n, n, q)
	if err != nil {
		return nil, err
	}
	s, err := e.sampler.BinaryVector(n)
	if err != nil {
		return nil, err
	}
	noise, err := e.sampler.GaussianVector(n, e.params.Sigma)
	if err != nil {
		return nil, err
	}

	As := ring.MatVecMul(A, s, n, n, q)
	b := ring.VecAdd(As, noise, q)

	utils.ZeroizeInt32(As)
	utils.ZeroizeInt32(noise)

	return &pqcrypt.KeyPair{
		PublicKey:  encodePublicKey(A, b),
		PrivateKey: encodePrivateKey(s),
	}, nil
}

// EncryptBit encrypts a single bit under the public key. It draws a binary
// randomizer r and fresh Gaussian errors, and computes
//
//	c1 = A^T*r + e1
//	c2 = b^T*r + e2 + bit*floor(q/2)   (mod q)
func (e *Engine) EncryptBit(bit int, publicKey []byte) ([]byte, error) {
	if bit != 0 && bit != 1 {
		return nil, fmt.Errorf("%w: bit must be 0 or 1", pqcrypt.ErrInvalidInput)
	}
	if publicKey == nil {
		return nil, fmt.Errorf("%w: missing public key", pqcrypt.ErrInvalidInput)
	}
	n, q := e.params.N, e.params.Q

	A, b, err := decodePublicKey(publicKey, n)
	if err != nil {
		return nil, err
	}

	r, err := e.sampler.BinaryVector(n)
	if err != nil {
		return nil, err
	}
	e1, err := e.sampler.GaussianVector(n, e.params.Sigma)
	if err != nil {
		return nil, err
	}
	e2, err := e.sampler.DiscreteGaussian(e.params.Sigma)
	if err != nil {
		return nil, err
	}

	ATr := ring.MatTVecMul(A, r, n, n, q)
	c1 := ring.VecAdd(ATr, e1, q)
	bTr := ring.InnerProduct(b, r, q)
	c2 := ring.Mod(int64(bTr)+int64(e2)+int64(bit)*int64(q/2), q)

	utils.ZeroizeInt32(r)
	utils.ZeroizeInt32(e1)
	utils.ZeroizeInt32(ATr)

	return encodeBitCiphertext(c1, c2), nil
}

// DecryptBit recovers one bit as m' = c2 - s^T*c1 mod q and decodes it with a
// layered policy that favors explicit failure over silent wrong answers:
//
//	m' < q/8                          -> 0
//	q/2 - q/8 < m' < q/2 + q/8        -> 1
//	both distances to 0 and q/2 > q/6 -> ErrDecryptionFailed
//	q/8 < m' < q/2 - q/8              -> ErrAmbiguousDecryption
//	otherwise                         -> the closer candidate bit
func (e *Engine) DecryptBit(ciphertext, privateKey []byte) (int, error) {
	if ciphertext == nil || privateKey == nil {
		return 0, fmt.Errorf("%w: missing ciphertext or private key", pqcrypt.ErrInvalidInput)
	}
	n := e.params.N

	s, err := decodePrivateKey(privateKey, n)
	if err != nil {
		return 0, err
	}
	c1, c2, err := decodeBitCiphertext(ciphertext, n)
	if err != nil {
		return 0, err
	}
	return e.decodeBit(c1, c2, s)
}

// decodeBit applies the layered decode policy to an already-decoded bit
// ciphertext and secret vector.
func (e *Engine) decodeBit(c1 []int32, c2 int32, s []int32) (int, error) {
	q := e.params.Q
	m := int(ring.Mod(int64(c2)-int64(ring.InnerProduct(c1, s, q)), q))

	threshold := q / 8
	mid := q / 2

	if m < threshold {
		return 0, nil
	}
	if m > mid-threshold && m < mid+threshold {
		return 1, nil
	}

	distanceToZero := m
	if q-m < distanceToZero {
		distanceToZero = q - m
	}
	distanceToMid := m - mid
	if distanceToMid < 0 {
		distanceToMid = -distanceToMid
	}

	if float64(distanceToZero) > float64(q)/6 && float64(distanceToMid) > float64(q)/6 {
		return 0, fmt.Errorf("%w: invalid key or corrupted ciphertext", pqcrypt.ErrDecryptionFailed)
	}
	if m > threshold && m < mid-threshold {
		return 0, fmt.Errorf("%w: value %d between decision regions", pqcrypt.ErrAmbiguousDecryption, m)
	}
	if distanceToZero <= distanceToMid {
		return 0, nil
	}
	return 1, nil
}

// Encrypt encrypts a byte stream. The plaintext is unpacked to bits
// (LSB-first per byte); each bit is encrypted independently and the bit
// ciphertexts are concatenated behind a 4-byte little-endian length prefix
// holding the plaintext length.
func (e *Engine) Encrypt(data, publicKey []byte) ([]byte, error) {
	if data == nil || publicKey == nil {
		return nil, fmt.Errorf("%w: missing data or public key", pqcrypt.ErrInvalidInput)
	}
	if err := utils.CheckLength(len(data), utils.MaxMessageSize); err != nil {
		return nil, fmt.Errorf("%w: message exceeds maximum allowed size", pqcrypt.ErrInvalidInput)
	}

	out := make([]byte, streamHeaderSize, e.CiphertextSize(len(data)))
	binary.LittleEndian.PutUint32(out, uint32(len(data)))

	for _, b := range data {
		for j := 0; j < 8; j++ {
			bit := int((b >> j) & 1)
			ct, err := e.EncryptBit(bit, publicKey)
			if err != nil {
				return nil, err
			}
			out = append(out, ct...)
		}
	}
	return out, nil
}

// Decrypt reverses Encrypt. The private key is decoded and validated once up
// front; a wrong-length key is an ErrInvalidKeyFormat, never a bit failure.
// Per-bit decode failures up to 5% of the total bit count are tolerated and
// default to 0; more than that aborts with ErrDecryptionFailed. A longest run
// of identical bits above 70% of the stream is rejected as suspicious (likely
// wrong key).
func (e *Engine) Decrypt(ciphertext, privateKey []byte) ([]byte, error) {
	if ciphertext == nil || privateKey == nil {
		return nil, fmt.Errorf("%w: missing ciphertext or private key", pqcrypt.ErrInvalidInput)
	}
	if len(ciphertext) < streamHeaderSize {
		return nil, fmt.Errorf("%w: missing length header", pqcrypt.ErrCorruptedCiphertext)
	}
	s, err := decodePrivateKey(privateKey, e.params.N)
	if err != nil {
		return nil, err
	}

	dataLen := int(binary.LittleEndian.Uint32(ciphertext))
	if dataLen > utils.MaxMessageSize {
		return nil, fmt.Errorf("%w: declared length %d exceeds limit", pqcrypt.ErrCorruptedCiphertext, dataLen)
	}
	numBits := dataLen * 8
	bitSize := e.BitCiphertextSize()
	if len(ciphertext) != streamHeaderSize+numBits*bitSize {
		return nil, fmt.Errorf("%w: have %d bytes, header declares %d",
			pqcrypt.ErrCorruptedCiphertext, len(ciphertext), streamHeaderSize+numBits*bitSize)
	}

	bits := make([]byte, numBits)
	failures := 0
	for i := 0; i < numBits; i++ {
		offset := streamHeaderSize + i*bitSize
		c1, c2, err := decodeBitCiphertext(ciphertext[offset:offset+bitSize], e.params.N)
		if err != nil {
			return nil, err
		}
		bit, err := e.decodeBit(c1, c2, s)
		if err != nil {
			// Best-effort: individual decode failures within budget default
			// to 0. Only the layered policy's errors land here; structural
			// problems were rejected above.
			failures++
			bit = 0
		}
		bits[i] = byte(bit)
	}

	if failures*100 > numBits*maxBitErrorPercent {
		return nil, fmt.Errorf("%w: %d of %d bits failed to decode",
			pqcrypt.ErrDecryptionFailed, failures, numBits)
	}
	if run := longestBitRun(bits); run*100 > numBits*maxBitRunPercent {
		return nil, fmt.Errorf("%w: suspicious bit pattern, likely wrong key",
			pqcrypt.ErrDecryptionFailed)
	}

	data := make([]byte, dataLen)
	for i := 0; i < numBits; i++ {
		data[i/8] |= bits[i] << (i % 8)
	}
	return data, nil
}

func longestBitRun(bits []byte) int {
	longest, run := 0, 0
	for i := range bits {
		if i > 0 && bits[i] == bits[i-1] {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
