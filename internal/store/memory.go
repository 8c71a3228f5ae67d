// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/go-totp-vault/internal/logger"
	"github.com/MKhiriev/go-totp-vault/models"
)

// memoryStore is the map-backed implementation of [CredentialStore].
//
// All access goes through mu, so check-and-insert in Create is atomic.
// Records are deep-copied on the way in and out. When snapshotPath is set,
// the whole map is rewritten to that JSON file after every mutation; a
// mutation whose snapshot fails is rolled back.
type memoryStore struct {
	mu    sync.RWMutex
	users map[string]models.UserRecord

	snapshotPath string
	logger       *logger.Logger
}

// NewMemoryStore constructs an in-memory [CredentialStore]. A non-empty
// snapshotPath is loaded if it exists and kept up to date afterwards.
func NewMemoryStore(snapshotPath string, log *logger.Logger) (CredentialStore, error) {
	s := &memoryStore{
		users:        make(map[string]models.UserRecord),
		snapshotPath: snapshotPath,
		logger:       log,
	}

	if snapshotPath == "" {
		log.Debug().Msg("creating in-memory credential store without snapshot")
		return s, nil
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	log.Info().Str("path", snapshotPath).Int("users", len(s.users)).Msg("credential store snapshot loaded")

	return s, nil
}

func (s *memoryStore) Exists(ctx context.Context, username string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.users[username]
	return ok, nil
}

func (s *memoryStore) Get(ctx context.Context, username string) (models.UserRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.UserRecord{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[username]
	if !ok {
		return models.UserRecord{}, ErrUserNotFound
	}
	return rec.Clone(), nil
}

func (s *memoryStore) Put(ctx context.Context, record models.UserRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setLocked(ctx, record.Clone())
}

func (s *memoryStore) Create(ctx context.Context, record models.UserRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.users[record.Username]; taken {
		return ErrUserAlreadyExists
	}
	return s.setLocked(ctx, record.Clone())
}

func (s *memoryStore) PutFile(ctx context.Context, username string, file models.StoredFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[username]
	if !ok {
		return ErrUserNotFound
	}

	updated := rec.Clone()
	updated.Files[file.Name] = file.Clone()

	return s.setLocked(ctx, updated)
}

func (s *memoryStore) GetFile(ctx context.Context, username, name string) (models.StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return models.StoredFile{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[username]
	if !ok {
		return models.StoredFile{}, ErrUserNotFound
	}
	f, ok := rec.Files[name]
	if !ok {
		return models.StoredFile{}, ErrFileNotFound
	}
	return f.Clone(), nil
}

func (s *memoryStore) Close() error {
	return nil
}

// setLocked replaces the record of rec.Username and persists the snapshot.
// s.mu must be held for writing.
func (s *memoryStore) setLocked(ctx context.Context, rec models.UserRecord) error {
	if rec.Files == nil {
		rec.Files = make(map[string]models.StoredFile)
	}

	prev, had := s.users[rec.Username]
	s.users[rec.Username] = rec

	if err := s.persistLocked(); err != nil {
		if had {
			s.users[rec.Username] = prev
		} else {
			delete(s.users, rec.Username)
		}
		logger.FromContext(ctx).Err(err).Str("func", "*memoryStore.setLocked").Msg("snapshot failed, mutation rolled back")
		return err
	}

	return nil
}

// persistLocked atomically rewrites the snapshot file: the map is written to
// a temporary file in the same directory which then replaces the snapshot.
func (s *memoryStore) persistLocked() error {
	if s.snapshotPath == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.users, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrSnapshot, err)
	}

	dir := filepath.Dir(s.snapshotPath)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.snapshotPath)+".*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrSnapshot, err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(data); err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpName, s.snapshotPath)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: write: %w", ErrSnapshot, err)
	}

	return nil
}

func (s *memoryStore) load() error {
	data, err := os.ReadFile(s.snapshotPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: read: %w", ErrSnapshot, err)
	}
	if len(data) == 0 {
		return nil
	}

	users := make(map[string]models.UserRecord)
	if err := json.Unmarshal(data, &users); err != nil {
		return fmt.Errorf("%w: decode: %w", ErrSnapshot, err)
	}

	for name, rec := range users {
		rec.Username = name
		if rec.Files == nil {
			rec.Files = make(map[string]models.StoredFile)
		}
		users[name] = rec
	}
	s.users = users

	return nil
}
