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

package verify

import (
	"crypto/ed25519"
	"encoding/hex"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/errs"
)

// keyCacheSize bounds the process-wide verify-key cache. Most hosts embed
// exactly one verify key; this only guards against a pathological host that
// embeds many.
const keyCacheSize = 32

var (
	keyCacheOnce sync.Once
	keyCache     *lru.Cache[string, ed25519.PublicKey]
)

func getKeyCache() *lru.Cache[string, ed25519.PublicKey] {
	keyCacheOnce.Do(func() {
		// lru.New only errors on a non-positive size, which keyCacheSize
		// never is.
		keyCache, _ = lru.New[string, ed25519.PublicKey](keyCacheSize)
	})
	return keyCache
}

// DecodePublicKey decodes a 64-hex-character Ed25519 public key, consulting
// a process-wide LRU cache first. The cache is a performance optimization
// only: a cache miss, contention, or disabled cache still produces a
// correct decode.
func DecodePublicKey(hexKey string) (ed25519.PublicKey, error) {
	cache := getKeyCache()
	if key, ok := cache.Get(hexKey); ok {
		return key, nil
	}

	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, errs.NewConfigError("public key is not valid hex: %v", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, errs.NewConfigError("public key must decode to %d bytes, got %d", ed25519.PublicKeySize, len(raw))
	}
	key := ed25519.PublicKey(raw)
	cache.Add(hexKey, key)
	return key, nil
}
