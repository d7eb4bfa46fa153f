package session

import (
	"context"
	"fmt"
)

// Cipher seals values before they reach the underlying store.
type Cipher interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// SealedStore encrypts every value written to the wrapped store. It is a
// BatchStore when the wrapped store is one.
type SealedStore struct {
	inner  Store
	cipher Cipher
}

func NewSealedStore(inner Store, c Cipher) *SealedStore {
	return &SealedStore{inner: inner, cipher: c}
}

func (s *SealedStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.inner.Get(ctx, key)
	if err != nil || v == nil {
		return v, err
	}
	plain, err := s.cipher.Open(v)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", key, err)
	}
	return plain, nil
}

func (s *SealedStore) Set(ctx context.Context, key string, value []byte) error {
	sealed, err := s.cipher.Seal(value)
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}
	return s.inner.Set(ctx, key, sealed)
}

func (s *SealedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

// SetMany seals every value and writes them in one batch if the wrapped
// store supports it, otherwise one by one with the access token last.
func (s *SealedStore) SetMany(ctx context.Context, values map[string][]byte) error {
	sealed := make(map[string][]byte, len(values))
	for k, v := range values {
		sv, err := s.cipher.Seal(v)
		if err != nil {
			return fmt.Errorf("seal %s: %w", k, err)
		}
		sealed[k] = sv
	}
	if bs, ok := s.inner.(BatchStore); ok {
		return bs.SetMany(ctx, sealed)
	}
	for k, v := range sealed {
		if k == KeyAccessToken {
			continue
		}
		if err := s.inner.Set(ctx, k, v); err != nil {
			return err
		}
	}
	if v, ok := sealed[KeyAccessToken]; ok {
		return s.inner.Set(ctx, KeyAccessToken, v)
	}
	return nil
}

func (s *SealedStore) DeleteMany(ctx context.Context, keys []string) error {
	if bs, ok := s.inner.(BatchStore); ok {
		return bs.DeleteMany(ctx, keys)
	}
	for _, k := range keys {
		if err := s.inner.Delete(ctx, k); err != nil {
			return err
		}
	}
	return nil
}
