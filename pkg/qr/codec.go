package qr

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

var (
	// ErrClaveFaltante indicates the encryption key was not configured.
	ErrClaveFaltante = errors.New("clave de cifrado QR no configurada")

	// ErrTokenInvalido covers every undecodable token: tampered or truncated
	// ciphertext, bad base64, and plaintexts that are not exactly four parts.
	ErrTokenInvalido = errors.New("token QR inválido")
)

const derivationContext = "control-actividades-qr"

// Payload is the identity tuple carried by a student QR code.
type Payload struct {
	Nombre    string
	Matricula string
	Grupo     string
	Nonce     string
}

// Codec encrypts and decrypts QR payloads with AES-256-GCM.
// The working key is derived from the configured master key with HKDF so the
// raw key is never used directly. Immutable after construction.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec builds a Codec from a base64-encoded master key.
func NewCodec(masterKeyB64 string) (*Codec, error) {
	if masterKeyB64 == "" {
		return nil, ErrClaveFaltante
	}

	masterKey, err := base64.StdEncoding.DecodeString(masterKeyB64)
	if err != nil {
		return nil, fmt.Errorf("decodificar clave maestra: %w", err)
	}
	if len(masterKey) < 16 {
		return nil, errors.New("la clave maestra debe tener al menos 16 bytes")
	}

	key := make([]byte, 32)
	reader := hkdf.New(sha256.New, masterKey, nil, []byte(derivationContext))
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("derivar clave de cifrado: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("crear cifrador AES: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crear cifrador GCM: %w", err)
	}

	return &Codec{aead: aead}, nil
}

// Encode encrypts the payload and returns the opaque base64 token.
// The random nonce is prepended to the ciphertext.
func (c *Codec) Encode(p Payload) (string, error) {
	plaintext := strings.Join([]string{p.Nombre, p.Matricula, p.Grupo, p.Nonce}, "|")

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generar nonce: %w", err)
	}

	ciphertext := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decode decrypts an opaque token back into its payload.
// Tampering, truncation and malformed plaintexts all fail with ErrTokenInvalido.
func (c *Codec) Decode(token string) (Payload, error) {
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: base64", ErrTokenInvalido)
	}

	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize+c.aead.Overhead() {
		return Payload{}, fmt.Errorf("%w: demasiado corto", ErrTokenInvalido)
	}

	plaintext, err := c.aead.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: descifrado fallido", ErrTokenInvalido)
	}

	parts := strings.Split(string(plaintext), "|")
	if len(parts) != 4 {
		return Payload{}, fmt.Errorf("%w: se esperaban 4 componentes, hay %d", ErrTokenInvalido, len(parts))
	}

	return Payload{
		Nombre:    strings.TrimSpace(parts[0]),
		Matricula: strings.TrimSpace(parts[1]),
		Grupo:     strings.TrimSpace(parts[2]),
		Nonce:     strings.TrimSpace(parts[3]),
	}, nil
}

// GenerateKey returns a fresh 256-bit key, base64 encoded, for configuration.
func GenerateKey() (string, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("generar clave aleatoria: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}
