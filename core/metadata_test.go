package core

import (
	"testing"

	pqcrypt "github.com/qsafelabs/pqcrypt-go"
)

func TestGetSecurityLevel(t *testing.T) {
	for _, alg := range []pqcrypt.Algorithm{
		pqcrypt.AlgLWE, pqcrypt.AlgSPHINCS, pqcrypt.AlgDilithium, pqcrypt.AlgHybrid,
	} {
		bits, err := GetSecurityLevel(alg)
		if err != nil {
			t.Fatalf("GetSecurityLevel(%s) failed: %v", alg, err)
		}
		if bits != 128 {
			t.Errorf("GetSecurityLevel(%s) = %d, want 128", alg, bits)
		}
	}
	if _, err := GetSecurityLevel("rot13"); err == nil {
		t.Error("unknown algorithm accepted")
	}
}

func TestGetKeySize(t *testing.T) {
	cases := []struct {
		alg  pqcrypt.Algorithm
		kt   KeyType
		want int
	}{
		{pqcrypt.AlgLWE, KeyTypePublic, 263168},
		{pqcrypt.AlgLWE, KeyTypePrivate, 1024},
		{pqcrypt.AlgSPHINCS, KeyTypePublic, 64},
		{pqcrypt.AlgSPHINCS, KeyTypeSignature, 2080},
		{pqcrypt.AlgDilithium, KeyTypePublic, 1064},
		{pqcrypt.AlgDilithium, KeyTypePrivate, 3112},
		{pqcrypt.AlgDilithium, KeyTypeSignature, 1280},
	}
	for _, c := range cases {
		got, err := GetKeySize(c.alg, c.kt)
		if err != nil {
			t.Fatalf("GetKeySize(%s, %s) failed: %v", c.alg, c.kt, err)
		}
		if got != c.want {
			t.Errorf("GetKeySize(%s, %s) = %d, want %d", c.alg, c.kt, got, c.want)
		}
	}

	if _, err := GetKeySize("rot13", KeyTypePublic); err == nil {
		t.Error("unknown algorithm accepted")
	}
	if _, err := GetKeySize(pqcrypt.AlgLWE, KeyTypeSignature); err == nil {
		t.Error("LWE signature size should not exist")
	}
}
