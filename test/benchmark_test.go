package test

import (
	"testing"

	"github.com/qsafelabs/pqcrypt-go/core"
	"github.com/qsafelabs/pqcrypt-go/dilithium"
	"github.com/qsafelabs/pqcrypt-go/hashsig"
	"github.com/qsafelabs/pqcrypt-go/hybrid"
	"github.com/qsafelabs/pqcrypt-go/lwe"
)

var benchMessage = []byte("benchmark message payload")

// =============================================================================
// LWE benchmarks (n=128 reduced parameters)
// =============================================================================

func BenchmarkLWE_GenerateKeyPair(b *testing.B) {
	engine, err := lwe.New(core.LightLatticeParams, nil)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := engine.GenerateKeyPair(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLWE_Encrypt(b *testing.B) {
	engine, err := lwe.New(core.LightLatticeParams, nil)
	if err != nil {
		b.Fatal(err)
	}
	kp, err := engine.GenerateKeyPair()
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Encrypt([]byte("PQ"), kp.PublicKey); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLWE_Decrypt(b *testing.B) {
	engine, err := lwe.New(core.LightLatticeParams, nil)
	if err != nil {
		b.Fatal(err)
	}
	kp, err := engine.GenerateKeyPair()
	if err != nil {
		b.Fatal(err)
	}
	ct, err := engine.Encrypt([]byte("PQ"), kp.PublicKey)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Decrypt(ct, kp.PrivateKey); err != nil {
			b.Fatal(err)
		}
	}
}

// =============================================================================
// Hash-chain signature benchmarks
// =============================================================================

func BenchmarkHashSig_GenerateKeyPair(b *testing.B) {
	engine, err := hashsig.New(core.DefaultHashBasedParams, nil)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := engine.GenerateKeyPair(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHashSig_Sign(b *testing.B) {
	engine, err := hashsig.New(core.DefaultHashBasedParams, nil)
	if err != nil {
		b.Fatal(err)
	}
	kp, err := engine.GenerateKeyPair()
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Sign(benchMessage, kp.PrivateKey); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHashSig_Verify(b *testing.B) {
	engine, err := hashsig.New(core.DefaultHashBasedParams, nil)
	if err != nil {
		b.Fatal(err)
	}
	kp, err := engine.GenerateKeyPair()
	if err != nil {
		b.Fatal(err)
	}
	sig, err := engine.Sign(benchMessage, kp.PrivateKey)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if !engine.Verify(benchMessage, sig, kp.PublicKey) {
			b.Fatal("verification failed")
		}
	}
}

// =============================================================================
// Dilithium benchmarks per security level
// =============================================================================

func benchmarkDilithiumSign(b *testing.B, level int) {
	engine, err := dilithium.New(level, nil)
	if err != nil {
		b.Fatal(err)
	}
	kp, err := engine.GenerateKeyPair()
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Sign(benchMessage, kp.PrivateKey); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDilithium_Sign_Level2(b *testing.B) { benchmarkDilithiumSign(b, 2) }
func BenchmarkDilithium_Sign_Level3(b *testing.B) { benchmarkDilithiumSign(b, 3) }
func BenchmarkDilithium_Sign_Level5(b *testing.B) { benchmarkDilithiumSign(b, 5) }

func BenchmarkDilithium_Verify_Level2(b *testing.B) {
	engine, err := dilithium.New(2, nil)
	if err != nil {
		b.Fatal(err)
	}
	kp, err := engine.GenerateKeyPair()
	if err != nil {
		b.Fatal(err)
	}
	sig, err := engine.Sign(benchMessage, kp.PrivateKey)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if !engine.Verify(benchMessage, sig, kp.PublicKey) {
			b.Fatal("verification failed")
		}
	}
}

// =============================================================================
// Hybrid benchmarks
// =============================================================================

func BenchmarkHybrid_Sign(b *testing.B) {
	cfg := hybrid.DefaultConfig()
	cfg.Lattice = core.LightLatticeParams
	combiner, err := hybrid.New(cfg, nil)
	if err != nil {
		b.Fatal(err)
	}
	kp, err := combiner.GenerateKeyPair()
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := combiner.Sign(benchMessage, kp.Quantum.PrivateKey, kp.Classical.PrivateKey); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHybrid_Verify(b *testing.B) {
	cfg := hybrid.DefaultConfig()
	cfg.Lattice = core.LightLatticeParams
	combiner, err := hybrid.New(cfg, nil)
	if err != nil {
		b.Fatal(err)
	}
	kp, err := combiner.GenerateKeyPair()
	if err != nil {
		b.Fatal(err)
	}
	sig, err := combiner.Sign(benchMessage, kp.Quantum.PrivateKey, kp.Classical.PrivateKey)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if !combiner.Verify(benchMessage, sig, kp.Classical.PublicKey) {
			b.Fatal("verification failed")
		}
	}
}
