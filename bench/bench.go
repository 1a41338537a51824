// Package bench provides a timing harness over the three pqcrypt schemes.
package bench

import (
	"time"

	pqcrypt "github.com/qsafelabs/pqcrypt-go"
	"github.com/qsafelabs/pqcrypt-go/core"
	"github.com/qsafelabs/pqcrypt-go/dilithium"
	"github.com/qsafelabs/pqcrypt-go/hashsig"
	"github.com/qsafelabs/pqcrypt-go/lwe"
	"github.com/qsafelabs/pqcrypt-go/utils"
)

// Result maps an operation name to its elapsed wall-clock time in
// milliseconds.
type Result map[string]float64

// benchMessage is the payload used for the sign and encrypt measurements.
var benchMessage = []byte("pqcrypt benchmark message")

// Run times key generation, sign/encrypt and verify/decrypt for each scheme
// under reduced parameters. Single-shot wall-clock measurements, intended for
// rough comparisons rather than statistics; use the Go benchmarks in test/
// for the latter.
func Run() (Result, error) {
	result := make(Result)

	if err := runLWE(result); err != nil {
		return nil, err
	}
	if err := runHashSig(result); err != nil {
		return nil, err
	}
	if err := runDilithium(result); err != nil {
		return nil, err
	}
	return result, nil
}

func runLWE(result Result) error {
	engine, err := lwe.New(core.LightLatticeParams, nil)
	if err != nil {
		return err
	}

	start := time.Now()
	kp, err := engine.GenerateKeyPair()
	if err != nil {
		return err
	}
	result["lwe.keygen"] = millis(start)

	start = time.Now()
	ct, err := engine.Encrypt(benchMessage, kp.PublicKey)
	if err != nil {
		return err
	}
	result["lwe.encrypt"] = millis(start)

	start = time.Now()
	if _, err := engine.Decrypt(ct, kp.PrivateKey); err != nil {
		return err
	}
	result["lwe.decrypt"] = millis(start)
	return nil
}

func runHashSig(result Result) error {
	engine, err := hashsig.New(pqcrypt.HashBasedParams{N: 16, W: 16, H: 10}, nil)
	if err != nil {
		return err
	}

	start := time.Now()
	kp, err := engine.GenerateKeyPair()
	if err != nil {
		return err
	}
	result["hashsig.keygen"] = millis(start)

	start = time.Now()
	sig, err := engine.Sign(benchMessage, kp.PrivateKey)
	if err != nil {
		return err
	}
	result["hashsig.sign"] = millis(start)

	start = time.Now()
	engine.Verify(benchMessage, sig, kp.PublicKey)
	result["hashsig.verify"] = millis(start)

	utils.Zeroize(kp.PrivateKey)
	return nil
}

func runDilithium(result Result) error {
	engine, err := dilithium.New(2, nil)
	if err != nil {
		return err
	}

	start := time.Now()
	kp, err := engine.GenerateKeyPair()
	if err != nil {
		return err
	}
	result["dilithium.keygen"] = millis(start)

	start = time.Now()
	sig, err := engine.Sign(benchMessage, kp.PrivateKey)
	if err != nil {
		return err
	}
	result["dilithium.sign"] = millis(start)

	start = time.Now()
	engine.Verify(benchMessage, sig, kp.PublicKey)
	result["dilithium.verify"] = millis(start)

	utils.Zeroize(kp.PrivateKey)
	return nil
}

func millis(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
