// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/passly/internal/config"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/utils"
	"github.com/MKhiriev/passly/models"
	"github.com/go-resty/resty/v2"
)

const (
	loginPath   = "/api/auth/login"
	mePath      = "/api/auth/me"
	logoutPath  = "/api/auth/logout"
	itemsPath   = "/api/vault/items"
	itemPath    = "/api/vault/items/{id}"
	revealPath  = "/api/vault/items/{id}/reveal"
	versionPath = "/api/version"

	hashHeader = "HashSHA256"
)

type httpServerAdapter struct {
	client *resty.Client
	signer *utils.Signer

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the resty client with the resolved base URL and request timeout.
// When appCfg.HashKey is set, every request body is signed into the
// HashSHA256 header.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.Adapter, appCfg config.App, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	return &httpServerAdapter{
		client: client,
		signer: utils.NewSigner(appCfg.HashKey),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Authenticate implements [ServerAdapter]. It POSTs credentials to
// /api/auth/login and reads the token from the JSON body, falling back to
// the Authorization response header.
func (h *httpServerAdapter) Authenticate(ctx context.Context, credentials models.Credentials) (string, error) {
	var result models.AccessToken

	req, err := h.jsonRequest(ctx, credentials)
	if err != nil {
		return "", err
	}
	resp, err := req.SetResult(&result).Post(loginPath)
	if err != nil {
		return "", fmt.Errorf("%w: login request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	if result.AccessToken != "" {
		return result.AccessToken, nil
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return "", fmt.Errorf("%w: login parse bearer token: %w", ErrMalformedResponse, err)
	}
	return token, nil
}

// WhoAmI implements [ServerAdapter] via GET /api/auth/me.
func (h *httpServerAdapter) WhoAmI(ctx context.Context) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).SetResult(&user).Get(mePath)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: whoami request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}
	if user.UserID == "" {
		return models.User{}, fmt.Errorf("%w: whoami without id", ErrMalformedResponse)
	}

	return user, nil
}

// InvalidateSession implements [ServerAdapter] via POST /api/auth/logout.
func (h *httpServerAdapter) InvalidateSession(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post(logoutPath)
	if err != nil {
		return fmt.Errorf("%w: logout request: %w", ErrTransport, err)
	}

	return mapHTTPError(resp)
}

// ListItems implements [ServerAdapter] via GET /api/vault/items?query=.
func (h *httpServerAdapter) ListItems(ctx context.Context, query string) ([]models.VaultItemSummary, error) {
	req := h.authedRequest(ctx)
	if query != "" {
		req.SetQueryParam("query", query)
	}

	resp, err := req.Get(itemsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: list request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	items := make([]models.VaultItemSummary, 0)
	if err = json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, fmt.Errorf("%w: decode list response: %w", ErrMalformedResponse, err)
	}

	return items, nil
}

// RevealItem implements [ServerAdapter] via POST /api/vault/items/{id}/reveal.
func (h *httpServerAdapter) RevealItem(ctx context.Context, itemID string) (models.VaultItemSecret, error) {
	var secret models.VaultItemSecret

	resp, err := h.authedRequest(ctx).
		SetPathParam("id", itemID).
		SetResult(&secret).
		Post(revealPath)
	if err != nil {
		return models.VaultItemSecret{}, fmt.Errorf("%w: reveal request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultItemSecret{}, err
	}
	if secret.ID != itemID {
		return models.VaultItemSecret{}, fmt.Errorf("%w: reveal answered for another item", ErrMalformedResponse)
	}

	return secret, nil
}

// CreateItem implements [ServerAdapter] via POST /api/vault/items.
func (h *httpServerAdapter) CreateItem(ctx context.Context, item models.CreateItemRequest) (models.VaultItemSummary, error) {
	var created models.VaultItemSummary

	req, err := h.jsonRequest(ctx, item)
	if err != nil {
		return models.VaultItemSummary{}, err
	}
	resp, err := req.SetResult(&created).Post(itemsPath)
	if err != nil {
		return models.VaultItemSummary{}, fmt.Errorf("%w: create request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultItemSummary{}, err
	}

	return created, nil
}

// UpdateItem implements [ServerAdapter] via PUT /api/vault/items/{id}.
func (h *httpServerAdapter) UpdateItem(ctx context.Context, itemID string, item models.UpdateItemRequest) (models.VaultItemSummary, error) {
	var updated models.VaultItemSummary

	req, err := h.jsonRequest(ctx, item)
	if err != nil {
		return models.VaultItemSummary{}, err
	}
	resp, err := req.SetPathParam("id", itemID).SetResult(&updated).Put(itemPath)
	if err != nil {
		return models.VaultItemSummary{}, fmt.Errorf("%w: update request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultItemSummary{}, err
	}

	return updated, nil
}

// DeleteItem implements [ServerAdapter] via DELETE /api/vault/items/{id}.
func (h *httpServerAdapter) DeleteItem(ctx context.Context, itemID string) error {
	resp, err := h.authedRequest(ctx).SetPathParam("id", itemID).Delete(itemPath)
	if err != nil {
		return fmt.Errorf("%w: delete request: %w", ErrTransport, err)
	}

	return mapHTTPError(resp)
}

// ServerVersion implements [ServerAdapter] via GET /api/version.
func (h *httpServerAdapter) ServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get(versionPath)
	if err != nil {
		return "", fmt.Errorf("%w: version request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// jsonRequest marshals body itself so the exact bytes on the wire can be
// signed.
func (h *httpServerAdapter) jsonRequest(ctx context.Context, body any) (*resty.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	req := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload)
	if h.signer.Enabled() {
		req.SetHeader(hashHeader, h.signer.SignHex(payload))
	}
	return req, nil
}
