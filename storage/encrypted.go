package storage

import (
	"fmt"

	"github.com/gradlink/clientcore/encryption"
	"github.com/gradlink/clientcore/logger"
)

// EncryptedStore wraps another Store and seals every value at rest. Keys
// stay in the clear so the session layer can enumerate and delete entries
// without the passphrase.
//
// A stored value that fails to open (wrong passphrase, tampering, or a
// plaintext leftover from before encryption was enabled) is deleted and
// reported as absent, the same self-healing treatment corrupt plaintext
// state gets.
type EncryptedStore struct {
	inner  Store
	sealer encryption.Encryptor
}

// NewEncryptedStore wraps inner with the given sealer.
func NewEncryptedStore(inner Store, sealer encryption.Encryptor) *EncryptedStore {
	return &EncryptedStore{inner: inner, sealer: sealer}
}

func (s *EncryptedStore) Get(key string) (string, bool, error) {
	sealed, ok, err := s.inner.Get(key)
	if err != nil || !ok {
		return "", ok, err
	}
	value, err := s.sealer.Decrypt(sealed)
	if err != nil {
		_ = s.inner.Delete(key)
		return "", false, nil
	}
	return value, true, nil
}

func (s *EncryptedStore) Set(key, value string) error {
	sealed, err := s.sealer.Encrypt(value)
	if err != nil {
		return fmt.Errorf("storage: seal value for %q: %w", key, err)
	}
	return s.inner.Set(key, sealed)
}

func (s *EncryptedStore) Delete(key string) error {
	return s.inner.Delete(key)
}

func (s *EncryptedStore) Keys() ([]string, error) {
	return s.inner.Keys()
}

func init() {
	RegisterFactory(ProviderEncryptedFile, func(cfg Config, log *logger.Logger) (Store, error) {
		inner, err := NewFileStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		sealer, err := encryption.New(cfg.EncryptionKey)
		if err != nil {
			return nil, err
		}
		return NewEncryptedStore(inner, sealer), nil
	})
}
