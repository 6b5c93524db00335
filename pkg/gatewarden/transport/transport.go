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

// Package transport implements the one production HTTP collaborator the
// manager is built against: it builds and sends the signed validate-key
// request and captures the response envelope the verification pipeline
// needs.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/digest"
	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/errs"
	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/pipeline"
)

const libraryVersion = "0.1.0"

// Client issues validate-key requests against a Keygen-compatible licensing
// service and returns the captured response envelope.
type Client struct {
	httpClient *http.Client
	host       string
	accountID  string
	userAgent  string
	scheme     string
}

// NewClient builds a Client with a bounded request timeout.
func NewClient(host, accountID, userAgentProduct, appName string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		host:       host,
		accountID:  accountID,
		userAgent:  buildUserAgent(userAgentProduct, appName),
		scheme:     "https",
	}
}

func buildUserAgent(product, appName string) string {
	return fmt.Sprintf("%s/gatewarden-%s %s", product, libraryVersion, appName)
}

type requestMeta struct {
	Key   string      `json:"key"`
	Scope *scopeBlock `json:"scope,omitempty"`
}

type scopeBlock struct {
	Entitlements []string `json:"entitlements"`
}

type requestBody struct {
	Meta requestMeta `json:"meta"`
}

// ValidateKey POSTs the license key (and, if non-empty, the asserted
// entitlement scope) to the validate-key endpoint and returns the captured
// response. Any network, DNS, TLS, timeout, or non-HTTP failure is wrapped
// as KeygenTransport; a response that was received at all -- even one
// reporting meta.valid=false -- is not a transport error.
func (c *Client) ValidateKey(ctx context.Context, licenseKey string, requiredEntitlements []string) (pipeline.Response, error) {
	path := fmt.Sprintf("/v1/accounts/%s/licenses/actions/validate-key", c.accountID)

	meta := requestMeta{Key: licenseKey}
	if len(requiredEntitlements) > 0 {
		meta.Scope = &scopeBlock{Entitlements: requiredEntitlements}
	}
	body, err := json.Marshal(requestBody{Meta: meta})
	if err != nil {
		return pipeline.Response{}, errs.NewProtocolError("encode request body: %v", err)
	}

	url := c.scheme + "://" + c.host + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return pipeline.Response{}, errs.NewKeygenTransport("build request: %v", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Host", c.host)
	req.Header.Set("Content-Type", "application/vnd.api+json")
	req.Header.Set("Accept", "application/vnd.api+json")
	req.Header.Set("Digest", digest.FormatHeader(body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pipeline.Response{}, errs.NewKeygenTransport("request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return pipeline.Response{}, errs.NewKeygenTransport("read response body: %v", err)
	}

	return pipeline.Response{
		Date:        resp.Header.Get("Date"),
		Signature:   resp.Header.Get("Keygen-Signature"),
		Digest:      resp.Header.Get("Digest"),
		Body:        respBody,
		RequestPath: path,
		Host:        c.host,
	}, nil
}
