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

package gatewarden

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/errs"
)

// Config is a read-only, build-time set of constants describing the host
// application's license deployment. The host application constructs it
// directly; there is no configuration-file loader.
type Config struct {
	// AccountID is the Keygen account slug used to build the validate-key
	// request path.
	AccountID string
	// PublicKeyHex is the 64 lower-case hex characters of the Ed25519
	// verifying key embedded in the host application.
	PublicKeyHex string
	// RequiredEntitlements are asserted in every request's scope and
	// checked against the server's echoed scope on response.
	RequiredEntitlements []string
	// UserAgentProduct names the host product in the outgoing User-Agent
	// header.
	UserAgentProduct string
	// AppName is appended to the outgoing User-Agent header.
	AppName string
	// CacheNamespace selects the subdirectory of DataDir the cache store
	// and usage meter write under.
	CacheNamespace string
	// DataDir is the base directory the cache store and usage meter write
	// under, namespaced by CacheNamespace. Defaults to os.UserCacheDir()
	// when empty.
	DataDir string
	// OfflineGrace bounds how long a cached record remains acceptable
	// without contacting the server.
	OfflineGrace time.Duration
	// Host is the licensing service's hostname, defaulting to
	// "api.keygen.sh" when empty.
	Host string
	// Timeout bounds each online request. Defaults to 30s when zero.
	Timeout time.Duration
}

const defaultHost = "api.keygen.sh"
const defaultTimeout = 30 * time.Second

// Validate enforces the pre-conditions the manager relies on: a non-empty
// account id, an exactly-64-hex-character public key, and a non-empty cache
// namespace.
func (c *Config) Validate() error {
	if c.AccountID == "" {
		return errs.NewConfigError("account id must not be empty")
	}
	if len(c.PublicKeyHex) != 64 {
		return errs.NewConfigError("public key must be exactly 64 hex characters, got %d", len(c.PublicKeyHex))
	}
	if _, err := hex.DecodeString(c.PublicKeyHex); err != nil {
		return errs.NewConfigError("public key must be exactly 64 hex characters: %v", err)
	}
	if c.CacheNamespace == "" {
		return errs.NewConfigError("cache namespace must not be empty")
	}
	return nil
}

func (c *Config) host() string {
	if c.Host == "" {
		return defaultHost
	}
	return c.Host
}

func (c *Config) timeout() time.Duration {
	if c.Timeout == 0 {
		return defaultTimeout
	}
	return c.Timeout
}

// namespaceDir returns the directory the cache store and usage meter write
// under: DataDir/CacheNamespace, falling back to os.UserCacheDir when DataDir
// is empty.
func (c *Config) namespaceDir() (string, error) {
	base := c.DataDir
	if base == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return "", errs.NewConfigError("resolve user cache directory: %v", err)
		}
		base = dir
	}
	return filepath.Join(base, c.CacheNamespace), nil
}
