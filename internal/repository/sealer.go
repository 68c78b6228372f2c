package repository

import (
	"fmt"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/apperrors"
)

// Sealer encrypts and authenticates snapshot blobs with a fernet key.
type Sealer struct {
	key *fernet.Key
}

// NewSealer parses a base64 fernet key.
func NewSealer(encodedKey string) (*Sealer, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot encryption key: %w", err)
	}
	return &Sealer{key: key}, nil
}

// Seal returns a fernet token for plaintext.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	token, err := fernet.EncryptAndSign(plaintext, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to seal snapshot: %w", err)
	}
	return token, nil
}

// Open verifies token and returns its plaintext. Tokens never expire.
func (s *Sealer) Open(token []byte) ([]byte, error) {
	plaintext := fernet.VerifyAndDecrypt(token, 0, []*fernet.Key{s.key})
	if plaintext == nil {
		return nil, fmt.Errorf("%w: fernet verification failed", apperrors.ErrCorruptSnapshot)
	}
	return plaintext, nil
}
