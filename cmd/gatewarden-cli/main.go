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

// Command gatewarden-cli validates a single license key against a Keygen
// account from the command line, printing a human-readable or JSON summary.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Michael-A-Kuykendall/gatewarden"
	"go.uber.org/zap"
)

type entitlementFlags []string

func (e *entitlementFlags) String() string { return strings.Join(*e, ",") }

func (e *entitlementFlags) Set(value string) error {
	*e = append(*e, value)
	return nil
}

type output struct {
	Valid        bool     `json:"valid"`
	FromCache    bool     `json:"from_cache"`
	Entitlements []string `json:"entitlements"`
	Code         string   `json:"code,omitempty"`
	Detail       string   `json:"detail,omitempty"`
	ExpiresAt    *string  `json:"expires_at,omitempty"`
	Error        string   `json:"error,omitempty"`
	ErrorKind    string   `json:"error_kind,omitempty"`
}

func main() {
	fs := flag.NewFlagSet("gatewarden-cli", flag.ExitOnError)
	key := fs.String("key", os.Getenv("GATEWARDEN_KEY"), "license key to validate (default: $GATEWARDEN_KEY)")
	account := fs.String("account", "", "Keygen account id")
	pubkey := fs.String("pubkey", "", "64-hex-character Ed25519 verifying key")
	cacheNamespace := fs.String("cache-namespace", "gatewarden-cli", "cache subdirectory name")
	offlineGrace := fs.Duration("offline-grace", 72*time.Hour, "how long a cached record remains acceptable offline")
	jsonOutput := fs.Bool("json", false, "print machine-readable JSON instead of a human summary")
	verbose := fs.Bool("v", false, "enable verbose (debug-level) logging")
	var entitlements entitlementFlags
	fs.Var(&entitlements, "entitlement", "required entitlement code (repeatable)")
	fs.Parse(os.Args[1:])

	if *key == "" {
		log.Fatal("no license key given: pass -key or set GATEWARDEN_KEY")
	}
	if *account == "" {
		log.Fatal("-account is required")
	}
	if *pubkey == "" {
		log.Fatal("-pubkey is required")
	}

	cfg := gatewarden.Config{
		AccountID:            *account,
		PublicKeyHex:         *pubkey,
		RequiredEntitlements: []string(entitlements),
		UserAgentProduct:     "gatewarden-cli",
		AppName:              "gatewarden-cli/0.1.0",
		CacheNamespace:       *cacheNamespace,
		OfflineGrace:         *offlineGrace,
	}

	var logger *zap.Logger
	if *verbose {
		built, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("build logger: %v", err)
		}
		defer built.Sync()
		logger = built
	}
	mgr, err := gatewarden.NewManager(cfg, gatewarden.SystemClock(), logger)
	if err != nil {
		fatalWithResult(*jsonOutput, err)
	}

	result, err := mgr.ValidateKey(context.Background(), *key)
	if err != nil {
		handleValidationError(*jsonOutput, err)
		return
	}

	printResult(*jsonOutput, result)
}

// handleValidationError maps each error kind to the guidance a host
// application author would want, mirroring the per-kind handling a caller of
// this library is expected to write around ValidateKey.
func handleValidationError(jsonOutput bool, err error) {
	gwErr, ok := err.(*gatewarden.Error)
	if ok {
		switch gwErr.Kind {
		case gatewarden.InvalidLicense:
			printErr(jsonOutput, err, "invalid-license", "the license key was rejected by the licensing service")
		case gatewarden.EntitlementMissing:
			printErr(jsonOutput, err, "entitlement-missing", fmt.Sprintf("license lacks required entitlement %q", gwErr.Code))
		case gatewarden.SignatureInvalid:
			printErr(jsonOutput, err, "signature-invalid", "SECURITY: response signature did not verify; treat as a potential attack, not a transient fault")
		case gatewarden.KeygenTransport:
			printErr(jsonOutput, err, "transport", "could not reach the licensing service; an offline CheckAccess call may still succeed if a cached record exists")
		default:
			printErr(jsonOutput, err, strings.ToLower(gwErr.Kind.String()), "")
		}
		return
	}
	printErr(jsonOutput, err, "unknown", "")
}

func printErr(jsonOutput bool, err error, kind, hint string) {
	if jsonOutput {
		out := output{Error: err.Error(), ErrorKind: kind}
		enc, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(enc))
	} else {
		fmt.Fprintf(os.Stderr, "validation failed: %v\n", err)
		if hint != "" {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
		}
	}
	os.Exit(1)
}

func fatalWithResult(jsonOutput bool, err error) {
	printErr(jsonOutput, err, "config", "")
}

func printResult(jsonOutput bool, result gatewarden.ValidationResult) {
	out := output{
		Valid:        result.State.Valid,
		FromCache:    result.FromCache,
		Entitlements: result.State.Entitlements,
		Code:         result.State.Code,
		Detail:       result.State.Detail,
	}
	if result.State.ExpiresAt != nil {
		s := result.State.ExpiresAt.Format(time.RFC3339)
		out.ExpiresAt = &s
	}

	if jsonOutput {
		enc, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(enc))
		return
	}

	fmt.Printf("valid: %v\n", out.Valid)
	fmt.Printf("from cache: %v\n", out.FromCache)
	fmt.Printf("entitlements: %s\n", strings.Join(out.Entitlements, ", "))
	if out.ExpiresAt != nil {
		fmt.Printf("expires at: %s\n", *out.ExpiresAt)
	}
}
