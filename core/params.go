// Package core provides parameter sets, validation and static metadata for
// pqcrypt.
package core

import (
	"errors"
	"fmt"

	pqcrypt "github.com/qsafelabs/pqcrypt-go"
)

// DefaultLatticeParams is the default LWE parameter set.
var DefaultLatticeParams = pqcrypt.LatticeParams{
	N:     256,
	Q:     4093,
	Sigma: 3.2,
}

// LightLatticeParams is a reduced LWE parameter set for tests and benchmarks.
var LightLatticeParams = pqcrypt.LatticeParams{
	N:     128,
	Q:     4093,
	Sigma: 3.2,
}

// DefaultHashBasedParams is the default hash-chain signer parameter set.
var DefaultHashBasedParams = pqcrypt.HashBasedParams{
	N: 32,
	W: 16,
	H: 10,
}

// DilithiumQ is the modulus shared by all Dilithium security levels.
const DilithiumQ = 8380417

// GetDilithiumParams returns the derived parameter set for a Dilithium
// security level. Each level fixes the ring dimension, the seed length and a
// serialization padding that makes key and signature sizes differ visibly by
// level.
func GetDilithiumParams(level int) (pqcrypt.DilithiumParams, error) {
	switch level {
	case 2:
		return pqcrypt.DilithiumParams{Level: 2, N: 256, Q: DilithiumQ, SeedSize: 32, PadSize: 8}, nil
	case 3:
		return pqcrypt.DilithiumParams{Level: 3, N: 512, Q: DilithiumQ, SeedSize: 48, PadSize: 12}, nil
	case 5:
		return pqcrypt.DilithiumParams{Level: 5, N: 768, Q: DilithiumQ, SeedSize: 64, PadSize: 20}, nil
	default:
		return pqcrypt.DilithiumParams{}, fmt.Errorf("unknown dilithium security level: %d", level)
	}
}

// ValidateLatticeParams validates an LWE parameter set for consistency.
func ValidateLatticeParams(params pqcrypt.LatticeParams) error {
	if params.N <= 0 {
		return errors.New("lattice dimension must be positive")
	}
	if !isPrime(params.Q) {
		return errors.New("lattice modulus must be prime")
	}
	if params.Q < 64 {
		return errors.New("lattice modulus too small for bit encoding")
	}
	if params.Sigma <= 0 {
		return errors.New("gaussian sigma must be positive")
	}
	return nil
}

// ValidateHashBasedParams validates a hash-chain parameter set.
func ValidateHashBasedParams(params pqcrypt.HashBasedParams) error {
	if params.N <= 0 || params.N > 64 {
		return errors.New("hash output size must be in 1..64 bytes")
	}
	if params.W < 2 || params.W > 256 || params.W&(params.W-1) != 0 {
		return errors.New("winternitz base must be a power of two in 2..256")
	}
	if params.H <= 0 {
		return errors.New("tree height must be positive")
	}
	return nil
}

// isPrime checks if a number is prime using simple trial division. This is
// used for validating parameters, not for generating large primes.
func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	for i := 3; i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}
