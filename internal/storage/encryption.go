package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keyLength   = 32
	nonceLength = 12
	saltLength  = 32
	iterations  = 100000
)

var (
	ErrPassphraseRequired = errors.New("contacts file is encrypted, passphrase required")
	ErrWrongPassphrase    = errors.New("invalid passphrase or corrupted data")
)

// EncryptedData is the sealed form of the contact list.
type EncryptedData struct {
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

func Encrypt(data []byte, passphrase string) (*EncryptedData, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	aead, err := newAEAD(passphrase, salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceLength)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return &EncryptedData{
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, data, nil),
	}, nil
}

func Decrypt(encData *EncryptedData, passphrase string) ([]byte, error) {
	if encData == nil {
		return nil, errors.New("encrypted data is nil")
	}
	if passphrase == "" {
		return nil, ErrPassphraseRequired
	}
	if len(encData.Nonce) != nonceLength {
		return nil, ErrWrongPassphrase
	}

	aead, err := newAEAD(passphrase, encData.Salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, encData.Nonce, encData.Ciphertext, nil)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return plaintext, nil
}

func newAEAD(passphrase string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(passphrase), salt, iterations, keyLength, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
