// Package secrets seals platform credentials before they touch storage.
// Sealed tokens travel as base64(nonce || ciphertext) strings.
package secrets

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

var (
	// ErrInvalidKey indica que la clave no tiene el largo requerido.
	ErrInvalidKey = errors.New("secrets: key must be 32 bytes")
	// ErrSealedToken indica un token ilegible o manipulado.
	ErrSealedToken = errors.New("secrets: sealed token is malformed or tampered")
)

// Sealer encierra un AEAD XChaCha20-Poly1305 con nonce aleatorio por token.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer construye un Sealer a partir de una clave de 32 bytes.
func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, ErrInvalidKey
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("secrets: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// ParseKey acepta la clave como base64 estándar o como 32 bytes crudos.
func ParseKey(raw string) ([]byte, error) {
	if decoded, err := base64.StdEncoding.DecodeString(raw); err == nil && len(decoded) == chacha20poly1305.KeySize {
		return decoded, nil
	}
	if len(raw) == chacha20poly1305.KeySize {
		return []byte(raw), nil
	}
	return nil, ErrInvalidKey
}

// Seal cifra el texto plano y devuelve el token sellado listo para persistir.
func (s *Sealer) Seal(plaintext string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plaintext)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("secrets: generating nonce: %w", err)
	}
	sealed := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open valida y descifra un token sellado.
func (s *Sealer) Open(sealed string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", ErrSealedToken
	}
	if len(raw) < s.aead.NonceSize() {
		return "", ErrSealedToken
	}
	nonce, ciphertext := raw[:s.aead.NonceSize()], raw[s.aead.NonceSize():]
	plain, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrSealedToken
	}
	return string(plain), nil
}
