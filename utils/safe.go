package utils

import (
	"crypto/subtle"
	"errors"
	"math"
	"runtime"
)

// Maximum allowed lengths for various data types to prevent DoS via large
// allocations when decoding untrusted buffers.
const (
	// MaxVectorLength is the maximum allowed element count for key and
	// ciphertext vectors.
	MaxVectorLength = 1 << 20 // 1M elements

	// MaxMatrixElements is the maximum allowed number of elements in an LWE
	// or Dilithium matrix.
	MaxMatrixElements = 1 << 24 // 16M elements

	// MaxMessageSize is the maximum allowed plaintext size in bytes.
	MaxMessageSize = 1 << 20 // 1MB

	// MaxPayloadLength is the maximum allowed length for serialized data.
	MaxPayloadLength = 1 << 28 // 256MB
)

var (
	// ErrOverflow indicates an integer overflow occurred.
	ErrOverflow = errors.New("integer overflow")

	// ErrExceedsLimit indicates a value exceeds the allowed limit.
	ErrExceedsLimit = errors.New("value exceeds allowed limit")

	// ErrInvalidLength indicates an invalid length value.
	ErrInvalidLength = errors.New("invalid length")
)

// SafeMultiply multiplies two non-negative integers and returns an error if
// overflow occurs.
func SafeMultiply(a, b int) (int, error) {
	if a < 0 || b < 0 {
		return 0, ErrInvalidLength
	}
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > math.MaxInt/b {
		return 0, ErrOverflow
	}
	return a * b, nil
}

// CheckLength validates that length is within [0, maxAllowed].
func CheckLength(length, maxAllowed int) error {
	if length < 0 {
		return ErrInvalidLength
	}
	if length > maxAllowed {
		return ErrExceedsLimit
	}
	return nil
}

// SafeReadLength reads a little-endian uint32 length from data at offset,
// validates it against maxAllowed, and returns the value and the new offset.
func SafeReadLength(data []byte, offset, maxAllowed int) (length int, newOffset int, err error) {
	if offset < 0 || offset+4 > len(data) {
		return 0, offset, errors.New("truncated length field")
	}
	raw := uint32(data[offset]) | uint32(data[offset+1])<<8 | uint32(data[offset+2])<<16 | uint32(data[offset+3])<<24
	if raw > uint32(maxAllowed) {
		return 0, offset, ErrExceedsLimit
	}
	return int(raw), offset + 4, nil
}

// ValidateSliceAccess checks that accessing data[offset:offset+size] is safe.
func ValidateSliceAccess(data []byte, offset, size int) error {
	if offset < 0 || size < 0 {
		return ErrInvalidLength
	}
	if offset+size < offset { // overflow check
		return ErrOverflow
	}
	if offset+size > len(data) {
		return errors.New("slice access out of bounds")
	}
	return nil
}

// ConstantTimeEqual compares two byte slices in constant time. It returns true
// if the slices are equal. This function leaks only the length of the slices.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Zeroize overwrites a byte slice with zeros. Uses runtime.KeepAlive to
// prevent the compiler from eliminating the stores.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// ZeroizeInt32 overwrites an int32 slice with zeros.
func ZeroizeInt32(s []int32) {
	for i := range s {
		s[i] = 0
	}
	runtime.KeepAlive(s)
}
