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
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/cache"
	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/errs"
	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/meter"
	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/pipeline"
	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/policy"
	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/protocol"
	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/transport"
)

// keygenClient is the subset of transport.Client the manager depends on,
// narrowed to ease substitution in tests.
type keygenClient interface {
	ValidateKey(ctx context.Context, licenseKey string, requiredEntitlements []string) (pipeline.Response, error)
}

// Manager is the single entry point host applications use: it validates a
// license key online, verifies the response's signature and freshness,
// checks the decoded state against the configured entitlements, and falls
// back to an authenticated offline cache when the licensing service is
// unreachable.
type Manager struct {
	cfg    Config
	clock  Clock
	client keygenClient
	store  *cache.Store
	meter  *meter.Meter
	log    *zap.SugaredLogger
}

// NewManager validates cfg, resolves its cache namespace directory, and
// constructs the transport client, cache store, and usage meter it will use
// for every ValidateKey/CheckAccess call. A nil logger disables logging.
func NewManager(cfg Config, clock Clock, logger *zap.Logger) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dir, err := cfg.namespaceDir()
	if err != nil {
		return nil, err
	}
	m, err := meter.NewMeter(meterPath(dir))
	if err != nil {
		return nil, err
	}

	sugar := zap.NewNop().Sugar()
	if logger != nil {
		sugar = logger.Sugar()
	}

	return &Manager{
		cfg:    cfg,
		clock:  clock,
		client: transport.NewClient(cfg.host(), cfg.AccountID, cfg.UserAgentProduct, cfg.AppName, cfg.timeout()),
		store:  cache.NewStore(dir),
		meter:  m,
		log:    sugar,
	}, nil
}

func meterPath(namespaceDir string) string {
	return filepath.Join(namespaceDir, "usage.json")
}

// ValidationResult is the outcome of a successful ValidateKey or CheckAccess
// call: the decoded license state, its derived usage caps, and whether it
// was served from the offline cache.
type ValidationResult struct {
	State     protocol.State
	Caps      policy.Caps
	FromCache bool
}

// ValidateKey validates licenseKey against the licensing service, verifying
// the response's signature, digest, and freshness, then checks the decoded
// state against the configured required entitlements.
//
// Any error other than KeygenTransport (a bad key, a tampered or stale
// response, a missing entitlement) is returned immediately without
// consulting the offline cache: only inability to reach the server at all
// triggers the offline fallback. A successful online validation overwrites
// the cache with the newly-verified record.
func (m *Manager) ValidateKey(ctx context.Context, licenseKey string) (ValidationResult, error) {
	if licenseKey == "" {
		return ValidationResult{}, errs.NewMissingLicense()
	}
	keyHash := cache.HashLicenseKey(licenseKey)

	m.log.Debugw("validating license online", "key_hash", keyHash)
	resp, err := m.client.ValidateKey(ctx, licenseKey, m.cfg.RequiredEntitlements)
	if err != nil {
		if errs.Is(err, errs.KeygenTransport) {
			m.log.Warnw("licensing service unreachable, falling back to offline cache", "key_hash", keyHash, "error", err)
			return m.validateFromCache(keyHash, err)
		}
		return ValidationResult{}, err
	}

	now := m.clock.Now()
	if err := pipeline.VerifyResponse(resp, m.cfg.PublicKeyHex, now); err != nil {
		m.log.Warnw("response verification failed", "key_hash", keyHash, "error", err)
		return ValidationResult{}, err
	}

	parsed, err := protocol.ParseValidateResponse(resp.Body)
	if err != nil {
		return ValidationResult{}, err
	}
	state := protocol.FromValidateResponse(parsed).Sanitize()

	if err := policy.CheckAccess(state, m.cfg.RequiredEntitlements); err != nil {
		return ValidationResult{}, err
	}

	record := cache.New(resp.Date, resp.Signature, resp.Digest, resp.Body, resp.RequestPath, resp.Host, now)
	if err := m.store.Save(keyHash, record); err != nil {
		m.log.Warnw("failed to persist cache record", "key_hash", keyHash, "error", err)
	} else {
		m.log.Debugw("cache record written", "key_hash", keyHash)
	}

	if err := m.meter.Increment(now); err != nil {
		m.log.Warnw("failed to persist usage meter", "key_hash", keyHash, "error", err)
	}

	return ValidationResult{State: state, Caps: policy.FromState(state), FromCache: false}, nil
}

// validateFromCache is the offline fallback path: it loads and
// re-authenticates the cached record for keyHash, enforcing the configured
// offline grace window. If no cached record exists, it returns the original
// online error rather than inventing a new one.
func (m *Manager) validateFromCache(keyHash string, onlineErr error) (ValidationResult, error) {
	record, ok, err := m.store.Load(keyHash)
	if err != nil {
		return ValidationResult{}, err
	}
	if !ok {
		return ValidationResult{}, onlineErr
	}

	now := m.clock.Now()
	if err := record.Verify(m.cfg.PublicKeyHex, m.cfg.OfflineGrace, now); err != nil {
		m.log.Errorw("cached record failed offline verification", "key_hash", keyHash, "error", err)
		return ValidationResult{}, err
	}

	parsed, err := protocol.ParseValidateResponse(record.Body)
	if err != nil {
		return ValidationResult{}, err
	}
	state := protocol.FromValidateResponse(parsed).Sanitize()

	if err := policy.CheckAccess(state, m.cfg.RequiredEntitlements); err != nil {
		return ValidationResult{}, err
	}

	return ValidationResult{State: state, Caps: policy.FromState(state), FromCache: true}, nil
}

// CheckAccess is the cache-only counterpart to ValidateKey: it never
// contacts the licensing service, relying entirely on whatever record the
// last successful ValidateKey call cached.
func (m *Manager) CheckAccess(licenseKey string) (ValidationResult, error) {
	if licenseKey == "" {
		return ValidationResult{}, errs.NewMissingLicense()
	}
	keyHash := cache.HashLicenseKey(licenseKey)

	record, ok, err := m.store.Load(keyHash)
	if err != nil {
		return ValidationResult{}, err
	}
	if !ok {
		return ValidationResult{}, errs.NewInvalidLicense()
	}

	now := m.clock.Now()
	if err := record.Verify(m.cfg.PublicKeyHex, m.cfg.OfflineGrace, now); err != nil {
		return ValidationResult{}, err
	}

	parsed, err := protocol.ParseValidateResponse(record.Body)
	if err != nil {
		return ValidationResult{}, err
	}
	state := protocol.FromValidateResponse(parsed).Sanitize()

	if err := policy.CheckAccess(state, m.cfg.RequiredEntitlements); err != nil {
		return ValidationResult{}, err
	}

	return ValidationResult{State: state, Caps: policy.FromState(state), FromCache: true}, nil
}
