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

// Package testkeys holds the single Ed25519 test key pair shared across this
// module's test suites, matching the fixtures used end to end in the
// specification's own worked scenarios.
package testkeys

import (
	"crypto/ed25519"
	"encoding/hex"
)

// SeedHex and PublicKeyHex are a matched Ed25519 seed/public-key pair.
const (
	SeedHex      = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
	PublicKeyHex = "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a"
)

// KeyPair decodes SeedHex into a private key and derives its public key.
func KeyPair() (ed25519.PrivateKey, ed25519.PublicKey) {
	seed, err := hex.DecodeString(SeedHex)
	if err != nil || len(seed) != ed25519.SeedSize {
		panic("testkeys: invalid seed fixture")
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return priv, priv.Public().(ed25519.PublicKey)
}
