package core

import (
	"fmt"

	pqcrypt "github.com/qsafelabs/pqcrypt-go"
)

// KeyType selects which buffer size GetKeySize reports.
type KeyType string

const (
	KeyTypePublic    KeyType = "public"
	KeyTypePrivate   KeyType = "private"
	KeyTypeSignature KeyType = "signature"
)

// securityLevels maps each algorithm to its nominal classical security in
// bits. Static table; the values describe the default parameter sets and are
// not recomputed at runtime.
var securityLevels = map[pqcrypt.Algorithm]int{
	pqcrypt.AlgLWE:       128,
	pqcrypt.AlgSPHINCS:   128,
	pqcrypt.AlgDilithium: 128,
	pqcrypt.AlgHybrid:    128,
}

// keySizes holds the serialized sizes in bytes for the default parameter
// sets: LWE n=256, hash-chain n=32/w=16, Dilithium level 2. Static table.
var keySizes = map[pqcrypt.Algorithm]map[KeyType]int{
	pqcrypt.AlgLWE: {
		KeyTypePublic:  263168, // 4n^2 + 4n
		KeyTypePrivate: 1024,   // 4n
	},
	pqcrypt.AlgSPHINCS: {
		KeyTypePublic:    64,   // root || publicSeed
		KeyTypePrivate:   64,   // masterSeed || publicSeed
		KeyTypeSignature: 2080, // rand || 64 chain values
	},
	pqcrypt.AlgDilithium: {
		KeyTypePublic:    1064, // seed || t || pad
		KeyTypePrivate:   3112, // seed || s1 || s2 || t || pad
		KeyTypeSignature: 1280, // c || z
	},
}

// GetSecurityLevel returns the nominal security level in bits for an
// algorithm under its default parameters.
func GetSecurityLevel(alg pqcrypt.Algorithm) (int, error) {
	bits, ok := securityLevels[alg]
	if !ok {
		return 0, fmt.Errorf("unknown algorithm: %s", alg)
	}
	return bits, nil
}

// GetKeySize returns the serialized size in bytes of the requested key or
// signature type for an algorithm under its default parameters.
func GetKeySize(alg pqcrypt.Algorithm, keyType KeyType) (int, error) {
	sizes, ok := keySizes[alg]
	if !ok {
		return 0, fmt.Errorf("unknown algorithm: %s", alg)
	}
	size, ok := sizes[keyType]
	if !ok {
		return 0, fmt.Errorf("algorithm %s has no %s size", alg, keyType)
	}
	return size, nil
}
