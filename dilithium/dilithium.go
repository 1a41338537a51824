// Package dilithium implements a simplified Dilithium-style lattice signature
// over the negacyclic ring Z_q[x]/(x^n+1). The public matrix is the negacyclic
// matrix of a single ring element expanded from a short seed, so every product
// in the scheme reduces to a ring multiplication.
//
// WARNING: unlike standard Dilithium, this scheme performs no rejection
// sampling on the response vector z, so z leaks information about the secret
// over many signatures. This is a documented simplification of the original
// construction and is preserved as such; do not rely on it for real security.
package dilithium

import (
	"fmt"

	pqcrypt "github.com/qsafelabs/pqcrypt-go"
	"github.com/qsafelabs/pqcrypt-go/core"
	"github.com/qsafelabs/pqcrypt-go/ring"
	"github.com/qsafelabs/pqcrypt-go/utils"
)

const (
	// eta bounds the secret vector coefficients: s1, s2 in [-eta, eta].
	eta = 2

	// challengeDigestSize is the hash digest length feeding the sparse
	// ternary challenge.
	challengeDigestSize = 64

	// highBitsShift drops the low-order bits of w before it enters the
	// challenge hash. The verifier recomputes w' = A*z - c*t, which differs
	// from the signer's w = A*y by exactly c*s2; with at most 64 nonzero
	// ternary challenge entries and |s2| <= eta that delta is bounded by 128
	// per coefficient, far below 2^18, so the high bits almost always agree.
	highBitsShift = 18

	// maxSignAttempts bounds the masking-vector retries when a c*s2 delta
	// lands on a high-bits boundary and flips the recomputed challenge.
	maxSignAttempts = 128
)

// Engine is a lattice signer for one fixed security level. It holds only
// immutable configuration and the injected CSPRNG.
type Engine struct {
	params        pqcrypt.DilithiumParams
	sampler       *ring.Sampler
	rng           utils.CSPRNG
	challengeSize int // serialized challenge words, min(n, 64)
}

// New constructs a signer for security level 2, 3 or 5. A nil rng selects the
// system CSPRNG.
func New(level int, rng utils.CSPRNG) (*Engine, error) {
	params, err := core.GetDilithiumParams(level)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = utils.NewSystemRNG()
	}
	challengeSize := params.N
	if challengeSize > challengeDigestSize {
		challengeSize = challengeDigestSize
	}
	return &Engine{
		params:        params,
		sampler:       ring.NewSampler(rng),
		rng:           rng,
		challengeSize: challengeSize,
	}, nil
}

// Params returns the engine's immutable parameter set.
func (e *Engine) Params() pqcrypt.DilithiumParams { return e.params }

// PublicKeySize returns the serialized public key size:
// seed || t || level pad.
func (e *Engine) PublicKeySize() int {
	return e.params.SeedSize + e.params.N*4 + e.params.PadSize
}

// PrivateKeySize returns the serialized private key size:
// seed || s1 || s2 || t || level pad.
func (e *Engine) PrivateKeySize() int {
	return e.params.SeedSize + 3*e.params.N*4 + e.params.PadSize
}

// SignatureSize returns the serialized signature size: c || z.
func (e *Engine) SignatureSize() int {
	return e.challengeSize*4 + e.params.N*4
}

// expandSeed expands a short seed into the public ring element a by rejection
// sampling a SHAKE256 stream: three bytes per candidate, masked to 23 bits,
// rejected when >= q. The negacyclic matrix of a is the scheme's matrix A.
func (e *Engine) expandSeed(seed []byte) []int32 {
	n, q := e.params.N, e.params.Q
	a := make([]int32, n)
	// Each candidate consumes 3 bytes; budget generously for rejections.
	stream := make([]byte, 4*n)
	utils.Shake256Into(seed, stream)
	pos, filled := 0, 0
	for filled < n {
		if pos+3 > len(stream) {
			stream = utils.Shake256(append(seed, byte(filled)), 4*(n-filled)+64)
			pos = 0
		}
		v := int(stream[pos]) | int(stream[pos+1])<<8 | int(stream[pos+2])<<16
		v &= 0x7FFFFF
		pos += 3
		if v < q {
			a[filled] = int32(v)
			filled++
		}
	}
	return a
}

// GenerateKeyPair draws a level-sized seed, expands the public ring element,
// samples small secret vectors s1 and s2, and publishes t = A*s1 + s2 mod q.
func (e *Engine) GenerateKeyPair() (*pqcrypt.KeyPair, error) {
	seed, err := e.rng.RandomBytes(e.params.SeedSize)
	if err != nil {
		return nil, err
	}
	s1, err := e.sampler.SmallVector(e.params.N, eta)
	if err != nil {
		return nil, err
	}
	s2, err := e.sampler.SmallVector(e.params.N, eta)
	if err != nil {
		return nil, err
	}

	a := e.expandSeed(seed)
	as1 := ring.PolyMul(a, s1, e.params.Q)
	t := ring.VecAdd(as1, s2, e.params.Q)

	kp := &pqcrypt.KeyPair{
		PublicKey:  e.encodePublicKey(seed, t),
		PrivateKey: e.encodePrivateKey(seed, s1, s2, t),
	}

	utils.ZeroizeInt32(s1)
	utils.ZeroizeInt32(s2)
	utils.ZeroizeInt32(as1)
	return kp, nil
}

// Sign produces a Fiat-Shamir signature: sample a masking vector y, commit to
// w = A*y, derive the sparse ternary challenge c from the high bits of w and
// the message digest, and respond with z = y + c*s1 mod q. The attempt is
// retried when the verifier-side recomputation A*z - c*t would round to
// different high bits, so an emitted signature always verifies.
func (e *Engine) Sign(message, privateKey []byte) (*pqcrypt.Signature, error) {
	if message == nil || privateKey == nil {
		return nil, fmt.Errorf("%w: missing message or private key", pqcrypt.ErrInvalidInput)
	}
	seed, s1, _, t, err := e.decodePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	n, q := e.params.N, e.params.Q

	a := e.expandSeed(seed)
	msgHash := utils.Hash(message, challengeDigestSize)

	for attempt := 0; attempt < maxSignAttempts; attempt++ {
		y, err := e.sampler.UniformVector(n, q/4)
		if err != nil {
			return nil, err
		}

		w := ring.PolyMul(a, y, q)
		c := e.challenge(w, msgHash)

		cs1 := ring.PolyMul(c, s1, q)
		z := ring.VecAdd(y, cs1, q)

		// Recompute the verifier's view; the c*s2 delta occasionally crosses
		// a high-bits boundary, in which case the attempt is discarded.
		az := ring.PolyMul(a, z, q)
		ct := ring.PolyMul(c, t, q)
		wPrime := ring.VecSub(az, ct, q)
		if !challengeEqual(c, e.challenge(wPrime, msgHash)) {
			continue
		}

		return &pqcrypt.Signature{Signature: e.encodeSignature(c, z)}, nil
	}
	return nil, fmt.Errorf("signing failed after %d attempts", maxSignAttempts)
}

// Verify recomputes w' = A*z - c*t mod q and succeeds iff the challenge
// derived from w' matches the one in the signature coefficient-wise. It never
// returns an error: any malformed input yields false.
func (e *Engine) Verify(message []byte, sig *pqcrypt.Signature, publicKey []byte) bool {
	if sig == nil || message == nil || sig.Signature == nil {
		return false
	}
	c, z, err := e.decodeSignature(sig.Signature)
	if err != nil {
		return false
	}
	seed, t, err := e.decodePublicKey(publicKey)
	if err != nil {
		return false
	}
	q := e.params.Q

	a := e.expandSeed(seed)
	msgHash := utils.Hash(message, challengeDigestSize)

	az := ring.PolyMul(a, z, q)
	ct := ring.PolyMul(c, t, q)
	wPrime := ring.VecSub(az, ct, q)

	return challengeEqual(c, e.challenge(wPrime, msgHash))
}

// challenge derives the sparse ternary challenge from the high bits of the
// commitment vector and the message digest: each digest byte maps to one
// coefficient, <85 -> -1, <170 -> 0, otherwise 1. Coefficients past the
// digest stay zero, matching the serialized challenge length.
func (e *Engine) challenge(w []int32, msgHash []byte) []int32 {
	high := make([]byte, len(w)*4)
	for i, x := range w {
		v := uint32(x) >> highBitsShift
		high[i*4] = byte(v)
		high[i*4+1] = byte(v >> 8)
		high[i*4+2] = byte(v >> 16)
		high[i*4+3] = byte(v >> 24)
	}
	digest := utils.Hash(append(high, msgHash...), challengeDigestSize)

	c := make([]int32, e.params.N)
	for i := 0; i < e.challengeSize; i++ {
		switch {
		case digest[i] < 85:
			c[i] = -1
		case digest[i] < 170:
			c[i] = 0
		default:
			c[i] = 1
		}
	}
	return c
}

func challengeEqual(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
