package hybrid

import (
	"encoding/binary"
	"fmt"

	pqcrypt "github.com/qsafelabs/pqcrypt-go"
	"github.com/qsafelabs/pqcrypt-go/utils"
)

const (
	sessionKeySize = 32
	nonceSize      = 16
)

// Session wire format, little-endian 4-byte length before each field:
//
//	encKey || nonce || body
//
// encKey is the LWE encryption of the session key, nonce is fresh per call,
// body is the plaintext XORed with the derived keystream.

// EncryptSession encrypts data under a fresh random session key. The session
// key is encapsulated with the LWE engine under the quantum public key; the
// keystream is stretched from HashConcat(classicalKey, sessionKey, nonce).
// This is a deliberately minimal construction with no authentication tag; it
// binds the classical key into the keystream but provides no integrity.
func (c *Combiner) EncryptSession(data, quantumPublicKey, classicalKey []byte) ([]byte, error) {
	if data == nil || quantumPublicKey == nil || classicalKey == nil {
		return nil, fmt.Errorf("%w: missing data or keys", pqcrypt.ErrInvalidInput)
	}

	sessionKey, err := c.rng.RandomBytes(sessionKeySize)
	if err != nil {
		return nil, err
	}
	nonce, err := c.rng.RandomBytes(nonceSize)
	if err != nil {
		return nil, err
	}

	encKey, err := c.enc.Encrypt(sessionKey, quantumPublicKey)
	if err != nil {
		return nil, err
	}

	body := xorKeystream(data, classicalKey, sessionKey, nonce)
	utils.Zeroize(sessionKey)

	out := make([]byte, 0, 12+len(encKey)+len(nonce)+len(body))
	out = appendField(out, encKey)
	out = appendField(out, nonce)
	out = appendField(out, body)
	return out, nil
}

// DecryptSession reverses EncryptSession: it recovers the session key via LWE
// decryption and strips the keystream.
func (c *Combiner) DecryptSession(ciphertext, quantumPrivateKey, classicalKey []byte) ([]byte, error) {
	if ciphertext == nil || quantumPrivateKey == nil || classicalKey == nil {
		return nil, fmt.Errorf("%w: missing ciphertext or keys", pqcrypt.ErrInvalidInput)
	}

	encKey, rest, err := readField(ciphertext)
	if err != nil {
		return nil, err
	}
	nonce, rest, err := readField(rest)
	if err != nil {
		return nil, err
	}
	body, rest, err := readField(rest)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: trailing bytes after session body", pqcrypt.ErrCorruptedCiphertext)
	}

	sessionKey, err := c.enc.Decrypt(encKey, quantumPrivateKey)
	if err != nil {
		return nil, err
	}

	data := xorKeystream(body, classicalKey, sessionKey, nonce)
	utils.Zeroize(sessionKey)
	return data, nil
}

// xorKeystream derives len(data) keystream bytes from the classical key, the
// session key and the nonce, and XORs them with data. The three inputs are
// bound with length framing so no two key/nonce splits share a keystream.
func xorKeystream(data, classicalKey, sessionKey, nonce []byte) []byte {
	if len(data) == 0 {
		return []byte{}
	}
	material := utils.HashConcat(classicalKey, sessionKey, nonce)
	stream := utils.Hash(material, len(data))

	out := make([]byte, len(data))
	for i := range data {
		out[i] = data[i] ^ stream[i]
	}
	return out
}

func appendField(dst, field []byte) []byte {
	var l [4]byte
	binary.LittleEndian.PutUint32(l[:], uint32(len(field)))
	dst = append(dst, l[:]...)
	return append(dst, field...)
}

func readField(data []byte) (field, rest []byte, err error) {
	length, offset, err := utils.SafeReadLength(data, 0, utils.MaxPayloadLength)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", pqcrypt.ErrCorruptedCiphertext, err)
	}
	if err := utils.ValidateSliceAccess(data, offset, length); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", pqcrypt.ErrCorruptedCiphertext, err)
	}
	return data[offset : offset+length], data[offset+length:], nil
}
