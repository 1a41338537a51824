// Command pqcrypt-cli exposes the pqcrypt schemes for key generation,
// encryption, signing and benchmarking from the command line.
package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	pqcrypt "github.com/qsafelabs/pqcrypt-go"
	"github.com/qsafelabs/pqcrypt-go/bench"
	"github.com/qsafelabs/pqcrypt-go/core"
	"github.com/qsafelabs/pqcrypt-go/dilithium"
	"github.com/qsafelabs/pqcrypt-go/hashsig"
	"github.com/qsafelabs/pqcrypt-go/lwe"
)

var (
	flagAlgorithm string
	flagLevel     int
	flagFormat    string
	flagKeyFile   string
	flagInFile    string
	flagOutFile   string
	flagMessage   string
	flagSigFile   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pqcrypt-cli",
		Short:         "Simplified post-quantum cryptography toolkit",
		Long:          "pqcrypt-cli drives the pqcrypt LWE, hash-chain and Dilithium-style schemes.\nEducational implementations; not for production use.",
		Version:       pqcrypt.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagFormat, "format", "hex", "key/ciphertext encoding: hex or base64")

	root.AddCommand(newKeygenCmd())
	root.AddCommand(newEncryptCmd())
	root.AddCommand(newDecryptCmd())
	root.AddCommand(newSignCmd())
	root.AddCommand(newVerifyCmd())
	root.AddCommand(newBenchmarkCmd())
	root.AddCommand(newInfoCmd())
	return root
}

func newKeygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := generateKeyPair(flagAlgorithm, flagLevel)
			if err != nil {
				return err
			}
			if flagOutFile == "" {
				fmt.Println("public: ", encodeBytes(kp.PublicKey))
				fmt.Println("private:", encodeBytes(kp.PrivateKey))
				return nil
			}
			if err := writeEncoded(flagOutFile+".pub", kp.PublicKey); err != nil {
				return err
			}
			if err := writeEncoded(flagOutFile+".key", kp.PrivateKey); err != nil {
				return err
			}
			fmt.Printf("wrote %s.pub (%d bytes) and %s.key (%d bytes)\n",
				flagOutFile, len(kp.PublicKey), flagOutFile, len(kp.PrivateKey))
			return nil
		},
	}
	cmd.Flags().StringVar(&flagAlgorithm, "algorithm", "lwe", "lwe, sphincs+ or dilithium")
	cmd.Flags().IntVar(&flagLevel, "level", 2, "dilithium security level (2, 3 or 5)")
	cmd.Flags().StringVar(&flagOutFile, "out", "", "output file prefix (writes <out>.pub and <out>.key)")
	return cmd
}

func newEncryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt data with an LWE public key",
		RunE: func(cmd *cobra.Command, args []string) error {
			publicKey, err := readEncoded(flagKeyFile)
			if err != nil {
				return err
			}
			data, err := readInput()
			if err != nil {
				return err
			}
			engine, err := lwe.New(core.DefaultLatticeParams, nil)
			if err != nil {
				return err
			}
			ct, err := engine.Encrypt(data, publicKey)
			if err != nil {
				return err
			}
			return writeOutput(ct)
		},
	}
	addIOFlags(cmd)
	return cmd
}

func newDecryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt an LWE ciphertext with a private key",
		RunE: func(cmd *cobra.Command, args []string) error {
			privateKey, err := readEncoded(flagKeyFile)
			if err != nil {
				return err
			}
			ct, err := readEncoded(flagInFile)
			if err != nil {
				return err
			}
			engine, err := lwe.New(core.DefaultLatticeParams, nil)
			if err != nil {
				return err
			}
			data, err := engine.Decrypt(ct, privateKey)
			if err != nil {
				return err
			}
			if flagOutFile != "" {
				return os.WriteFile(flagOutFile, data, 0o600)
			}
			fmt.Printf("%s\n", data)
			return nil
		},
	}
	cmd.Flags().StringVar(&flagKeyFile, "key", "", "private key file (required)")
	cmd.Flags().StringVar(&flagInFile, "in", "", "ciphertext file (required)")
	cmd.Flags().StringVar(&flagOutFile, "out", "", "plaintext output file (default stdout)")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newSignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message",
		RunE: func(cmd *cobra.Command, args []string) error {
			privateKey, err := readEncoded(flagKeyFile)
			if err != nil {
				return err
			}
			message, err := readInput()
			if err != nil {
				return err
			}
			signer, err := newSigner(flagAlgorithm, flagLevel)
			if err != nil {
				return err
			}
			sig, err := signer.Sign(message, privateKey)
			if err != nil {
				return err
			}
			return writeOutput(sig.Signature)
		},
	}
	cmd.Flags().StringVar(&flagAlgorithm, "algorithm", "dilithium", "sphincs+ or dilithium")
	cmd.Flags().IntVar(&flagLevel, "level", 2, "dilithium security level")
	addIOFlags(cmd)
	return cmd
}

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a signature",
		RunE: func(cmd *cobra.Command, args []string) error {
			publicKey, err := readEncoded(flagKeyFile)
			if err != nil {
				return err
			}
			message, err := readInput()
			if err != nil {
				return err
			}
			sigBytes, err := readEncoded(flagSigFile)
			if err != nil {
				return err
			}
			signer, err := newSigner(flagAlgorithm, flagLevel)
			if err != nil {
				return err
			}
			if !signer.Verify(message, &pqcrypt.Signature{Signature: sigBytes}, publicKey) {
				return fmt.Errorf("signature is INVALID")
			}
			fmt.Println("signature is valid")
			return nil
		},
	}
	cmd.Flags().StringVar(&flagAlgorithm, "algorithm", "dilithium", "sphincs+ or dilithium")
	cmd.Flags().IntVar(&flagLevel, "level", 2, "dilithium security level")
	cmd.Flags().StringVar(&flagSigFile, "signature", "", "signature file (required)")
	addIOFlags(cmd)
	_ = cmd.MarkFlagRequired("signature")
	return cmd
}

func newBenchmarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "benchmark",
		Short: "Time all schemes under reduced parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := bench.Run()
			if err != nil {
				return err
			}
			names := make([]string, 0, len(result))
			for name := range result {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("%-20s %10.3f ms\n", name, result[name])
			}
			return nil
		},
	}
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show security level and key sizes for an algorithm",
		RunE: func(cmd *cobra.Command, args []string) error {
			alg := pqcrypt.Algorithm(flagAlgorithm)
			bits, err := core.GetSecurityLevel(alg)
			if err != nil {
				return err
			}
			fmt.Printf("algorithm:      %s\n", alg)
			fmt.Printf("security level: %d bits\n", bits)
			for _, kt := range []core.KeyType{core.KeyTypePublic, core.KeyTypePrivate, core.KeyTypeSignature} {
				size, err := core.GetKeySize(alg, kt)
				if err != nil {
					continue
				}
				fmt.Printf("%-9s size: %d bytes\n", kt, size)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flagAlgorithm, "algorithm", "lwe", "lwe, sphincs+, dilithium or hybrid")
	return cmd
}

func addIOFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagKeyFile, "key", "", "key file (required)")
	cmd.Flags().StringVar(&flagInFile, "in", "", "input file (alternative to --message)")
	cmd.Flags().StringVar(&flagMessage, "message", "", "inline message (alternative to --in)")
	cmd.Flags().StringVar(&flagOutFile, "out", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("key")
}

func generateKeyPair(algorithm string, level int) (*pqcrypt.KeyPair, error) {
	switch strings.ToLower(algorithm) {
	case "lwe":
		engine, err := lwe.New(core.DefaultLatticeParams, nil)
		if err != nil {
			return nil, err
		}
		return engine.GenerateKeyPair()
	case "sphincs+", "sphincs":
		engine, err := hashsig.New(core.DefaultHashBasedParams, nil)
		if err != nil {
			return nil, err
		}
		return engine.GenerateKeyPair()
	case "dilithium":
		engine, err := dilithium.New(level, nil)
		if err != nil {
			return nil, err
		}
		return engine.GenerateKeyPair()
	default:
		return nil, fmt.Errorf("unknown algorithm: %s", algorithm)
	}
}

func newSigner(algorithm string, level int) (pqcrypt.Signer, error) {
	switch strings.ToLower(algorithm) {
	case "sphincs+", "sphincs":
		return hashsig.New(core.DefaultHashBasedParams, nil)
	case "dilithium":
		return dilithium.New(level, nil)
	default:
		return nil, fmt.Errorf("unknown signing algorithm: %s", algorithm)
	}
}

func readInput() ([]byte, error) {
	if flagMessage != "" {
		return []byte(flagMessage), nil
	}
	if flagInFile != "" {
		return os.ReadFile(flagInFile)
	}
	return nil, fmt.Errorf("provide --message or --in")
}

func writeOutput(data []byte) error {
	if flagOutFile != "" {
		return writeEncoded(flagOutFile, data)
	}
	fmt.Println(encodeBytes(data))
	return nil
}

func encodeBytes(data []byte) string {
	if flagFormat == "base64" {
		return base64.StdEncoding.EncodeToString(data)
	}
	return hex.EncodeToString(data)
}

func decodeBytes(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if flagFormat == "base64" {
		return base64.StdEncoding.DecodeString(s)
	}
	return hex.DecodeString(s)
}

func writeEncoded(path string, data []byte) error {
	return os.WriteFile(path, []byte(encodeBytes(data)+"\n"), 0o600)
}

func readEncoded(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("missing file path")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decodeBytes(string(raw))
}
