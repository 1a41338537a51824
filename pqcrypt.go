// Package pqcrypt implements a set of simplified post-quantum cryptographic
// primitives: a lattice-based public-key encryption scheme (LWE), a hash-chain
// one-time signature scheme (WOTS+ style), a lattice signature scheme
// (Dilithium style), and a hybrid combiner that requires agreement between two
// independent schemes.
//
// WARNING: these are educational, from-scratch implementations. They are NOT
// side-channel hardened and do not follow the NIST-standardized parameter sets
// exactly. DO NOT use in production systems protecting sensitive data.
package pqcrypt

// Version of the pqcrypt Go implementation.
const Version = "1.0.0"

// API summary:
//
// Encryption (LWE):
//   - lwe.New(params, rng) - Construct an engine for the given lattice parameters
//   - Engine.GenerateKeyPair() - Generate an encryption key pair
//   - Engine.Encrypt(data, pk) / Engine.Decrypt(ct, sk) - Byte-stream encryption
//
// Hash-chain signatures (SPHINCS+/WOTS+ style):
//   - hashsig.New(params, rng) - Construct a signer
//   - Engine.GenerateKeyPair() / GenerateKeyPairFromSeed(seed)
//   - Engine.Sign(message, sk) / Engine.Verify(message, sig, pk)
//
// Lattice signatures (Dilithium style):
//   - dilithium.New(level, rng) - Construct a signer for level 2, 3 or 5
//   - Engine.GenerateKeyPair() / Sign / Verify
//
// Hybrid:
//   - hybrid.New(...) - Pair the quantum-safe schemes with a second signer
//   - Engine.Sign produces two signatures; Verify requires both to pass
//
// Parameters and metadata:
//   - core.DefaultLatticeParams / core.DefaultHashBasedParams
//   - core.GetSecurityLevel(alg) / core.GetKeySize(alg, type)
