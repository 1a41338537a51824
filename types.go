package pqcrypt

import "errors"

// Algorithm identifies one of the implemented schemes.
type Algorithm string

const (
	// AlgLWE is the lattice-based encryption scheme.
	AlgLWE Algorithm = "lwe"
	// AlgSPHINCS is the hash-chain one-time signature scheme.
	AlgSPHINCS Algorithm = "sphincs+"
	// AlgDilithium is the lattice-based signature scheme.
	AlgDilithium Algorithm = "dilithium"
	// AlgHybrid is the combiner pairing a quantum-safe scheme with a second one.
	AlgHybrid Algorithm = "hybrid"
)

// Sentinel errors shared by all schemes. Operations wrap these with context via
// fmt.Errorf("%w: ..."), so callers match with errors.Is.
var (
	// ErrInvalidInput indicates a missing or nil argument.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidKeyFormat indicates a key buffer with the wrong length for the
	// configured parameters.
	ErrInvalidKeyFormat = errors.New("invalid key format")
	// ErrInvalidSignatureFormat indicates a signature buffer too short to
	// contain its declared fields.
	ErrInvalidSignatureFormat = errors.New("invalid signature format")
	// ErrCorruptedCiphertext indicates a framing length mismatch.
	ErrCorruptedCiphertext = errors.New("corrupted ciphertext")
	// ErrDecryptionFailed indicates the bit-error budget was exceeded or the
	// bit decoder reached its hard-failure band.
	ErrDecryptionFailed = errors.New("decryption failed")
	// ErrAmbiguousDecryption indicates a decrypted value in the narrow
	// undecided zone between the two plaintext bits.
	ErrAmbiguousDecryption = errors.New("ambiguous decryption result")
)

// KeyPair holds serialized public and private key material. The caller owns
// the lifetime of both buffers and is responsible for zeroing PrivateKey when
// done; the schemes never wipe returned key material.
type KeyPair struct {
	PublicKey  []byte
	PrivateKey []byte
}

// Signature is a self-contained signature value. PublicKey is optional: the
// hybrid combiner's quantum branch embeds the derived hash-chain public key
// here so the signature can be verified on its own.
type Signature struct {
	Signature []byte
	PublicKey []byte
}

// LatticeParams configures the LWE engine. Fixed at engine construction and
// never mutated. The party generating a key and the party using it must agree
// on the same parameters; a mismatch is a programmer error.
type LatticeParams struct {
	N     int     // lattice dimension
	Q     int     // prime modulus
	Sigma float64 // Gaussian error standard deviation
}

// HashBasedParams configures the hash-chain signer. Same immutability rule as
// LatticeParams.
type HashBasedParams struct {
	N int // security parameter: hash output size in bytes
	W int // Winternitz base (power of two)
	H int // tree height
}

// DilithiumParams is the derived parameter set for a Dilithium security level.
// Produced by core.GetDilithiumParams; never constructed by hand.
type DilithiumParams struct {
	Level    int // security level: 2, 3 or 5
	N        int // ring dimension
	Q        int // modulus
	SeedSize int // matrix expansion seed length in bytes
	PadSize  int // level-tag padding appended to serialized keys
}

// Signer is the capability shared by the two signature schemes, letting the
// hybrid combiner hold heterogeneous schemes behind one abstraction.
type Signer interface {
	GenerateKeyPair() (*KeyPair, error)
	Sign(message, privateKey []byte) (*Signature, error)
	Verify(message []byte, sig *Signature, publicKey []byte) bool
}

// Encrypter is the capability implemented by the LWE engine.
type Encrypter interface {
	GenerateKeyPair() (*KeyPair, error)
	Encrypt(data, publicKey []byte) ([]byte, error)
	Decrypt(ciphertext, privateKey []byte) ([]byte, error)
}
