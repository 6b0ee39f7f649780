// Package sessions keeps admin login sessions in a Badger store,
// token -> user id, expired by Badger's native TTL.
package sessions

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

var (
	ErrNoSession = errors.New("session not found")
)

const keyPrefix = "session:"

// DefaultTTL is how long a login lasts without re-authenticating.
const DefaultTTL = 14 * 24 * time.Hour

// Store issues and resolves session tokens.
type Store struct {
	db       *badger.DB
	dbPath   string
	isTestDB bool
	ttl      time.Duration
}

// NewStore opens the session database at path. An empty path uses a
// temporary directory, removed on Close; tests rely on this.
func NewStore(path string) (*Store, error) {
	isTest := false
	if path == "" {
		tempPath, err := os.MkdirTemp("", "blogadmin_sessions_")
		if err != nil {
			return nil, fmt.Errorf("creating temp dir: %w", err)
		}
		path = tempPath
		isTest = true
	}
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithSyncWrites(false).
		WithNumVersionsToKeep(1).
		WithNumGoroutines(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, dbPath: path, isTestDB: isTest, ttl: DefaultTTL}, nil
}

// Close closes the store and removes a temporary test database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return err
	}
	if s.isTestDB {
		if err := os.RemoveAll(s.dbPath); err != nil {
			return fmt.Errorf("failed to cleanup test database: %w", err)
		}
	}
	return nil
}

// SetTTL overrides the session lifetime for subsequently created
// sessions.
func (s *Store) SetTTL(ttl time.Duration) {
	s.ttl = ttl
}

// Create issues a fresh token for the user.
func (s *Store) Create(userID uint) (string, error) {
	token := uuid.NewString()
	val := make([]byte, 8)
	binary.BigEndian.PutUint64(val, uint64(userID))

	err := s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(keyPrefix+token), val).WithTTL(s.ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// Get resolves a token to the user id it was issued for.
func (s *Store) Get(token string) (uint, error) {
	var userID uint
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + token))
		if err == badger.ErrKeyNotFound {
			return ErrNoSession
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			userID = uint(binary.BigEndian.Uint64(val))
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// Delete revokes a token. Revoking an unknown token is not an error.
func (s *Store) Delete(token string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keyPrefix + token))
	})
}
