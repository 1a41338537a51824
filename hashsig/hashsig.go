// Package hashsig implements a WOTS+-style hash-chain one-time signature
// scheme. A private seed expands into one hash chain per base-w digit of the
// (randomized) message hash; the public key commits to every chain end.
// Signing reveals intermediate chain values, and verification completes the
// chains forward and recomputes the commitment.
package hashsig

import (
	"encoding/binary"
	"fmt"

	pqcrypt "github.com/qsafelabs/pqcrypt-go"
	"github.com/qsafelabs/pqcrypt-go/core"
	"github.com/qsafelabs/pqcrypt-go/utils"
)

// fixedChainAddress is the address bound into every chain-start derivation.
// A real SPHINCS+ uses structured per-leaf addresses; this implementation is
// a single-instance simplification and uses the all-zero address for every
// chain. Kept as a named constant so the simplification is explicit.
var fixedChainAddress = make([]byte, 32)

// Engine is a hash-chain signer for one fixed parameter set. It holds only
// immutable configuration and the injected CSPRNG.
type Engine struct {
	params   pqcrypt.HashBasedParams
	rng      utils.CSPRNG
	chainLen int // number of base-w digits, ceil(8n / log2(w))
	logW     int // bits per digit
}

// New constructs a signer. A nil rng selects the system CSPRNG.
func New(params pqcrypt.HashBasedParams, rng utils.CSPRNG) (*Engine, error) {
	if err := core.ValidateHashBasedParams(params); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = utils.NewSystemRNG()
	}
	logW := 0
	for w := params.W; w > 1; w >>= 1 {
		logW++
	}
	return &Engine{
		params:   params,
		rng:      rng,
		chainLen: (8*params.N + logW - 1) / logW,
		logW:     logW,
	}, nil
}

// Params returns the engine's immutable parameter set.
func (e *Engine) Params() pqcrypt.HashBasedParams { return e.params }

// ChainCount returns the number of hash chains (base-w digits).
func (e *Engine) ChainCount() int { return e.chainLen }

// PublicKeySize returns the serialized public key size: root plus public
// seed, 2n bytes.
func (e *Engine) PublicKeySize() int { return 2 * e.params.N }

// PrivateKeySize returns the serialized private key size: master seed plus
// public seed, 2n bytes.
func (e *Engine) PrivateKeySize() int { return 2 * e.params.N }

// SignatureSize returns the serialized signature size: randomizer plus one
// chain value per digit.
func (e *Engine) SignatureSize() int { return e.params.N * (1 + e.chainLen) }

// chain applies the keyed hash steps times, starting at chain index start.
// Each step hashes (current || seed || little-endian 4-byte index) back into
// the current value.
func (e *Engine) chain(value []byte, start, steps int, seed []byte) []byte {
	n := e.params.N
	current := append([]byte(nil), value...)
	buf := make([]byte, n+len(seed)+4)
	for i := 0; i < steps; i++ {
		copy(buf, current)
		copy(buf[n:], seed)
		binary.LittleEndian.PutUint32(buf[n+len(seed):], uint32(start+i))
		current = utils.Hash(buf, n)
	}
	return current
}

// chainStarts derives the per-digit private chain starts from the secret
// seed, bound to the fixed address and the digit index.
func (e *Engine) chainStarts(secretSeed []byte) [][]byte {
	n := e.params.N
	starts := make([][]byte, e.chainLen)
	buf := make([]byte, len(secretSeed)+len(fixedChainAddress)+4)
	copy(buf, secretSeed)
	copy(buf[len(secretSeed):], fixedChainAddress)
	for i := range starts {
		binary.LittleEndian.PutUint32(buf[len(secretSeed)+len(fixedChainAddress):], uint32(i))
		starts[i] = utils.Hash(buf, n)
	}
	return starts
}

// buildKeyPair derives the full key pair from the two seeds.
func (e *Engine) buildKeyPair(masterSeed, publicSeed []byte) *pqcrypt.KeyPair {
	n := e.params.N

	secretSeed := utils.Hash(masterSeed, n)
	starts := e.chainStarts(secretSeed)

	ends := make([]byte, 0, e.chainLen*n)
	for _, sk := range starts {
		ends = append(ends, e.chain(sk, 0, e.params.W-1, publicSeed)...)
	}
	root := utils.Hash(ends, n)

	publicKey := make([]byte, 0, 2*n)
	publicKey = append(publicKey, root...)
	publicKey = append(publicKey, publicSeed...)

	privateKey := make([]byte, 0, 2*n)
	privateKey = append(privateKey, masterSeed...)
	privateKey = append(privateKey, publicSeed...)

	utils.Zeroize(secretSeed)
	for _, sk := range starts {
		utils.Zeroize(sk)
	}

	return &pqcrypt.KeyPair{PublicKey: publicKey, PrivateKey: privateKey}
}

// GenerateKeyPair draws fresh master and public seeds and derives the key
// pair from them.
func (e *Engine) GenerateKeyPair() (*pqcrypt.KeyPair, error) {
	masterSeed, err := e.rng.RandomBytes(e.params.N)
	if err != nil {
		return nil, err
	}
	publicSeed, err := e.rng.RandomBytes(e.params.N)
	if err != nil {
		return nil, err
	}
	kp := e.buildKeyPair(masterSeed, publicSeed)
	utils.Zeroize(masterSeed)
	return kp, nil
}

// GenerateKeyPairFromSeed derives a key pair deterministically from a
// caller-supplied seed, for reproducible testing. The same seed always yields
// byte-identical keys.
func (e *Engine) GenerateKeyPairFromSeed(seed []byte) (*pqcrypt.KeyPair, error) {
	if seed == nil {
		return nil, fmt.Errorf("%w: missing seed", pqcrypt.ErrInvalidInput)
	}
	if err := utils.ValidateSeedEntropy(seed); err != nil {
		return nil, err
	}
	masterSeed := e.deriveSeed(seed, 0)
	publicSeed := e.deriveSeed(seed, 1)
	kp := e.buildKeyPair(masterSeed, publicSeed)
	utils.Zeroize(masterSeed)
	return kp, nil
}

func (e *Engine) deriveSeed(seed []byte, index uint32) []byte {
	buf := make([]byte, len(seed)+4)
	copy(buf, seed)
	binary.LittleEndian.PutUint32(buf[len(seed):], index)
	return utils.Hash(buf, e.params.N)
}

// Sign produces a one-time signature: a message randomizer followed by one
// partially advanced chain value per base-w digit of the randomized message
// hash.
func (e *Engine) Sign(message, privateKey []byte) (*pqcrypt.Signature, error) {
	if message == nil || privateKey == nil {
		return nil, fmt.Errorf("%w: missing message or private key", pqcrypt.ErrInvalidInput)
	}
	n := e.params.N
	if len(privateKey) < 2*n {
		return nil, fmt.Errorf("%w: private key is %d bytes, need %d",
			pqcrypt.ErrInvalidKeyFormat, len(privateKey), 2*n)
	}
	masterSeed := privateKey[:n]
	publicSeed := privateKey[n : 2*n]

	randomizer := utils.Hash(concat(masterSeed, message), n)
	msgHash := utils.Hash(concat(randomizer, message), n)
	digits := e.baseWDigits(msgHash)

	secretSeed := utils.Hash(masterSeed, n)
	starts := e.chainStarts(secretSeed)

	sig := make([]byte, 0, e.SignatureSize())
	sig = append(sig, randomizer...)
	for i, d := range digits {
		sig = append(sig, e.chain(starts[i], 0, d, publicSeed)...)
	}

	utils.Zeroize(secretSeed)
	for _, sk := range starts {
		utils.Zeroize(sk)
	}

	return &pqcrypt.Signature{Signature: sig}, nil
}

// Verify completes each chain forward from the signature values and compares
// the recomputed root against the public key. It never returns an error: any
// malformed input yields false.
func (e *Engine) Verify(message []byte, sig *pqcrypt.Signature, publicKey []byte) bool {
	if sig == nil || message == nil {
		return false
	}
	n := e.params.N
	if len(sig.Signature) < n {
		return false
	}
	if len(sig.Signature) != e.SignatureSize() {
		return false
	}
	if len(publicKey) < 2*n {
		return false
	}
	root := publicKey[:n]
	publicSeed := publicKey[n : 2*n]

	randomizer := sig.Signature[:n]
	msgHash := utils.Hash(concat(randomizer, message), n)
	digits := e.baseWDigits(msgHash)

	ends := make([]byte, 0, e.chainLen*n)
	for i, d := range digits {
		offset := n + i*n
		value := sig.Signature[offset : offset+n]
		ends = append(ends, e.chain(value, d, e.params.W-1-d, publicSeed)...)
	}

	return utils.ConstantTimeEqual(utils.Hash(ends, n), root)
}

// baseWDigits decomposes the message hash into chainLen base-w digits by
// MSB-first bit extraction, log2(w) bits per digit. Bits past the end of the
// hash read as zero.
func (e *Engine) baseWDigits(msgHash []byte) []int {
	digits := make([]int, e.chainLen)
	bit := 0
	for i := range digits {
		d := 0
		for j := 0; j < e.logW; j++ {
			d <<= 1
			if bit < 8*len(msgHash) {
				d |= int(msgHash[bit/8]>>(7-bit%8)) & 1
			}
			bit++
		}
		digits[i] = d
	}
	return digits
}

func concat(parts ...[]byte) []byte {
	size := 0
	for _, p := range parts {
		size += len(p)
	}
	out := make([]byte, 0, size)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
