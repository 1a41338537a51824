// Package hybrid composes a quantum-safe scheme with a second independent
// scheme for defense in depth. Encryption delegates to the LWE engine;
// signing produces two independent signatures, and verification requires
// both to pass.
package hybrid

import (
	"fmt"

	pqcrypt "github.com/qsafelabs/pqcrypt-go"
	"github.com/qsafelabs/pqcrypt-go/core"
	"github.com/qsafelabs/pqcrypt-go/dilithium"
	"github.com/qsafelabs/pqcrypt-go/hashsig"
	"github.com/qsafelabs/pqcrypt-go/lwe"
	"github.com/qsafelabs/pqcrypt-go/utils"
)

// domainQuantumSign separates the derivation of the quantum-branch signing
// seed from every other use of the hash.
const domainQuantumSign = "pqcrypt-hybrid-qsign-v1"

// Config selects the parameter sets of the two branches.
type Config struct {
	Lattice   pqcrypt.LatticeParams   // LWE encryption branch
	HashBased pqcrypt.HashBasedParams // quantum signing branch
	Level     int                     // Dilithium level of the classical branch
}

// DefaultConfig returns the default branch parameters.
func DefaultConfig() Config {
	return Config{
		Lattice:   core.DefaultLatticeParams,
		HashBased: core.DefaultHashBasedParams,
		Level:     2,
	}
}

// KeyPair holds the two independent key pairs of the combiner.
type KeyPair struct {
	Quantum   *pqcrypt.KeyPair // LWE keys: encryption and quantum signing seed
	Classical *pqcrypt.KeyPair // Dilithium signing keys
}

// SignaturePair holds the two signatures produced by Sign. Both must verify
// for the combined signature to be accepted.
type SignaturePair struct {
	Quantum   *pqcrypt.Signature
	Classical *pqcrypt.Signature
}

// Combiner pairs the LWE engine and a hash-chain signer (quantum branch) with
// a Dilithium signer (classical branch). It holds only immutable configuration
// and may be shared between goroutines if its CSPRNG is thread-safe.
type Combiner struct {
	enc       *lwe.Engine
	quantum   *hashsig.Engine
	classical pqcrypt.Signer
	rng       utils.CSPRNG
}

// New constructs a combiner. A nil rng selects the system CSPRNG.
func New(cfg Config, rng utils.CSPRNG) (*Combiner, error) {
	if rng == nil {
		rng = utils.NewSystemRNG()
	}
	enc, err := lwe.New(cfg.Lattice, rng)
	if err != nil {
		return nil, err
	}
	quantum, err := hashsig.New(cfg.HashBased, rng)
	if err != nil {
		return nil, err
	}
	classical, err := dilithium.New(cfg.Level, rng)
	if err != nil {
		return nil, err
	}
	return &Combiner{enc: enc, quantum: quantum, classical: classical, rng: rng}, nil
}

// GenerateKeyPair produces the quantum (LWE) and classical (Dilithium) key
// pairs independently.
func (c *Combiner) GenerateKeyPair() (*KeyPair, error) {
	quantum, err := c.enc.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	classical, err := c.classical.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	return &KeyPair{Quantum: quantum, Classical: classical}, nil
}

// Encrypt delegates to the LWE engine. The classical key is accepted for
// interface symmetry but is not used for encryption; only the signing path
// combines both branches. Do not extend this without revisiting the format.
func (c *Combiner) Encrypt(data, quantumPublicKey, classicalKey []byte) ([]byte, error) {
	_ = classicalKey
	return c.enc.Encrypt(data, quantumPublicKey)
}

// Decrypt delegates to the LWE engine.
func (c *Combiner) Decrypt(ciphertext, quantumPrivateKey []byte) ([]byte, error) {
	return c.enc.Decrypt(ciphertext, quantumPrivateKey)
}

// quantumSignKeyPair derives the hash-chain signing key pair deterministically
// from the quantum (LWE) private key, so the quantum branch can sign without
// separate key distribution. The derived public key travels inside the
// signature.
func (c *Combiner) quantumSignKeyPair(quantumPrivateKey []byte) (*pqcrypt.KeyPair, error) {
	seed := utils.HashWithDomain(domainQuantumSign, quantumPrivateKey)
	kp, err := c.quantum.GenerateKeyPairFromSeed(seed)
	utils.Zeroize(seed)
	return kp, err
}

// Sign produces two independent signatures over the message: a hash-chain
// signature under a key pair derived from the quantum private key, and a
// Dilithium signature under the classical private key.
func (c *Combiner) Sign(message, quantumPrivateKey, classicalPrivateKey []byte) (*SignaturePair, error) {
	if message == nil || quantumPrivateKey == nil || classicalPrivateKey == nil {
		return nil, fmt.Errorf("%w: missing message or private key", pqcrypt.ErrInvalidInput)
	}

	signKP, err := c.quantumSignKeyPair(quantumPrivateKey)
	if err != nil {
		return nil, err
	}
	quantumSig, err := c.quantum.Sign(message, signKP.PrivateKey)
	if err != nil {
		return nil, err
	}
	quantumSig.PublicKey = signKP.PublicKey
	utils.Zeroize(signKP.PrivateKey)

	classicalSig, err := c.classical.Sign(message, classicalPrivateKey)
	if err != nil {
		return nil, err
	}

	return &SignaturePair{Quantum: quantumSig, Classical: classicalSig}, nil
}

// Verify accepts a combined signature only if BOTH branches verify. Any
// internal failure in either branch is absorbed into a false result;
// verification never returns an error.
func (c *Combiner) Verify(message []byte, sig *SignaturePair, classicalPublicKey []byte) bool {
	if sig == nil || sig.Quantum == nil || sig.Classical == nil {
		return false
	}
	if !c.quantum.Verify(message, sig.Quantum, sig.Quantum.PublicKey) {
		return false
	}
	return c.classical.Verify(message, sig.Classical, classicalPublicKey)
}
