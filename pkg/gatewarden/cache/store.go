// Copyright 2025 Jason Stonebraker
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"

	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/errs"
)

// filenameHexLen is the number of hex characters of the full SHA-256 digest
// used to build a cache filename. Truncation avoids long-path issues and
// hides the full digest; collisions within this space are treated as
// cryptographically negligible.
const filenameHexLen = 16

// Store is a namespaced directory of cache records, addressed by a hash of
// the license key. It is the sole owner of its directory.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir. The caller is responsible for dir
// existing or being creatable; Save creates it on first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// HashLicenseKey returns the full SHA-256 hex digest of key. This is
// distinct from the (truncated) filename stem: the full digest is exposed
// for callers that need a stable, collision-resistant identifier, while only
// the truncated form is ever used as a path component.
func HashLicenseKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

func (s *Store) licensePath(keyHash string) string {
	stem := keyHash
	if len(stem) > filenameHexLen {
		stem = stem[:filenameHexLen]
	}
	return filepath.Join(s.dir, stem+".json")
}

func (s *Store) tempPath(keyHash string) string {
	stem := keyHash
	if len(stem) > filenameHexLen {
		stem = stem[:filenameHexLen]
	}
	return filepath.Join(s.dir, stem+".tmp")
}

// Save writes record for keyHash atomically: a temp file in the same
// directory, then a rename over the final path. A crash mid-write never
// leaves a partially-written file visible to Load.
func (s *Store) Save(keyHash string, record Record) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return errs.NewCacheIO("create cache directory: %v", err)
	}
	data, err := record.ToJSON()
	if err != nil {
		return err
	}
	tmp := s.tempPath(keyHash)
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errs.NewCacheIO("write temp cache file: %v", err)
	}
	if err := os.Rename(tmp, s.licensePath(keyHash)); err != nil {
		return errs.NewCacheIO("rename cache file into place: %v", err)
	}
	return nil
}

// Load returns the record for keyHash, or ok=false if no record exists.
func (s *Store) Load(keyHash string) (record Record, ok bool, err error) {
	data, readErr := os.ReadFile(s.licensePath(keyHash))
	if readErr != nil {
		if errors.Is(readErr, os.ErrNotExist) {
			return Record{}, false, nil
		}
		return Record{}, false, errs.NewCacheIO("read cache file: %v", readErr)
	}
	record, err = FromJSON(data)
	if err != nil {
		return Record{}, false, err
	}
	return record, true, nil
}

// Delete removes the record for keyHash. Deleting a missing record is not an
// error.
func (s *Store) Delete(keyHash string) error {
	if err := os.Remove(s.licensePath(keyHash)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errs.NewCacheIO("delete cache file: %v", err)
	}
	return nil
}

// Clear removes every cache record (every *.json entry) in the namespace
// directory.
func (s *Store) Clear() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errs.NewCacheIO("list cache directory: %v", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			return errs.NewCacheIO("remove cache file %s: %v", entry.Name(), err)
		}
	}
	return nil
}
