// Package crypto seals history archives with a password.
//
// Sealed layout: magic(4) | version(4, little endian) | salt(32) | nonce(12) | ciphertext.
// The header is authenticated as additional data.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

const (
	// Magic marks a sealed scriptforge archive.
	Magic = "SFAR"

	// FormatVersion of the sealed layout.
	FormatVersion = 1

	SaltSize  = 32
	NonceSize = 12

	// HeaderSize is magic + version + salt + nonce.
	HeaderSize = 4 + 4 + SaltSize + NonceSize

	keyLen = 32
)

var (
	ErrNotSealed     = errors.New("not a sealed scriptforge archive")
	ErrBadVersion    = errors.New("unsupported archive format version")
	ErrDecryptFailed = errors.New("decryption failed: wrong password or corrupted data")
	ErrEmptyPassword = errors.New("password must not be empty")
)

// KDFParams are the Argon2id cost parameters.
type KDFParams struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// DefaultKDFParams follows the OWASP Argon2id recommendation.
var DefaultKDFParams = KDFParams{Time: 3, Memory: 64 * 1024, Threads: 4}

// Sealer encrypts and decrypts archives with AES-256-GCM under an
// Argon2id-derived key.
type Sealer struct {
	params KDFParams
}

// NewSealer creates a Sealer with the given KDF cost.
func NewSealer(params KDFParams) *Sealer {
	return &Sealer{params: params}
}

func (s *Sealer) deriveKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, s.params.Time, s.params.Memory, s.params.Threads, keyLen)
}

func (s *Sealer) aead(password string, salt []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.deriveKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	return gcm, nil
}

// Seal encrypts plaintext with password.
func (s *Sealer) Seal(plaintext []byte, password string) ([]byte, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}

	header := make([]byte, HeaderSize)
	copy(header[0:4], Magic)
	binary.LittleEndian.PutUint32(header[4:8], FormatVersion)
	if _, err := io.ReadFull(rand.Reader, header[8:HeaderSize]); err != nil {
		return nil, fmt.Errorf("generate salt and nonce: %w", err)
	}
	salt := header[8 : 8+SaltSize]
	nonce := header[8+SaltSize : HeaderSize]

	gcm, err := s.aead(password, salt)
	if err != nil {
		return nil, err
	}

	return gcm.Seal(header, nonce, plaintext, header), nil
}

// Open decrypts data produced by Seal.
func (s *Sealer) Open(data []byte, password string) ([]byte, error) {
	if !IsSealed(data) || len(data) < HeaderSize {
		return nil, ErrNotSealed
	}
	if v := binary.LittleEndian.Uint32(data[4:8]); v != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, v)
	}

	header := data[:HeaderSize]
	salt := header[8 : 8+SaltSize]
	nonce := header[8+SaltSize:]

	gcm, err := s.aead(password, salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, data[HeaderSize:], header)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plaintext, nil
}

// IsSealed reports whether data starts with the archive magic.
func IsSealed(data []byte) bool {
	return len(data) >= len(Magic) && string(data[:len(Magic)]) == Magic
}
