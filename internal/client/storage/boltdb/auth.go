package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/homeblocks/internal/client/storage"
)

// SaveAuth сохраняет токен под ключом storage.ServerKey(auth.ServerURL)
func (s *Storage) SaveAuth(ctx context.Context, auth *storage.AuthData) error {
	key := storage.ServerKey(auth.ServerURL)
	if key == "" {
		return fmt.Errorf("server url cannot be empty")
	}

	return s.update(func(tx *bbolt.Tx) error {
		bucket, err := authBucket(tx)
		if err != nil {
			return err
		}

		data, err := json.Marshal(auth)
		if err != nil {
			return fmt.Errorf("failed to marshal auth data: %w", err)
		}
		if err := bucket.Put([]byte(key), data); err != nil {
			return fmt.Errorf("failed to save auth data: %w", err)
		}
		return nil
	})
}

// GetAuth возвращает токен сервера
func (s *Storage) GetAuth(ctx context.Context, serverURL string) (*storage.AuthData, error) {
	var auth *storage.AuthData

	err := s.view(func(tx *bbolt.Tx) error {
		bucket, err := authBucket(tx)
		if err != nil {
			return err
		}

		data := bucket.Get([]byte(storage.ServerKey(serverURL)))
		if data == nil {
			return storage.ErrAuthNotFound
		}

		auth = &storage.AuthData{}
		if err := json.Unmarshal(data, auth); err != nil {
			return fmt.Errorf("failed to unmarshal auth data for %s: %w", serverURL, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return auth, nil
}

// DeleteAuth удаляет токен сервера
func (s *Storage) DeleteAuth(ctx context.Context, serverURL string) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket, err := authBucket(tx)
		if err != nil {
			return err
		}

		key := []byte(storage.ServerKey(serverURL))
		if bucket.Get(key) == nil {
			return storage.ErrAuthNotFound
		}
		if err := bucket.Delete(key); err != nil {
			return fmt.Errorf("failed to delete auth data: %w", err)
		}
		return nil
	})
}

// ListAuth возвращает все токены в порядке ключей bucket
func (s *Storage) ListAuth(ctx context.Context) ([]storage.AuthData, error) {
	var list []storage.AuthData

	err := s.view(func(tx *bbolt.Tx) error {
		bucket, err := authBucket(tx)
		if err != nil {
			return err
		}

		return bucket.ForEach(func(k, v []byte) error {
			var auth storage.AuthData
			if err := json.Unmarshal(v, &auth); err != nil {
				return fmt.Errorf("failed to unmarshal auth data for %s: %w", k, err)
			}
			list = append(list, auth)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return list, nil
}

func authBucket(tx *bbolt.Tx) (*bbolt.Bucket, error) {
	bucket := tx.Bucket(bucketAuth)
	if bucket == nil {
		return nil, fmt.Errorf("auth bucket not found")
	}
	return bucket, nil
}
