// Package permclient loads the persisted column permissions for the
// caller's role from the API and answers edit/view questions for UI
// clients. The policy mirrors the server: edits fail closed, views fail
// open, and a fetch failure only ever under-authorizes edits. It never
// blocks or breaks rendering.
package permclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Permission is one (role, column) grant as served by /api/permissions.
type Permission struct {
	Role    string `json:"role"`
	Column  string `json:"column"`
	CanEdit bool   `json:"canEdit"`
	CanView bool   `json:"canView"`
}

// ColumnPermissions is the cached grant set for one role. Before the
// first successful load the predicates return their loading defaults:
// CanEdit false, CanView true.
type ColumnPermissions struct {
	mu     sync.RWMutex
	loaded bool
	rows   map[string]Permission // by column
}

// CanEdit reports whether the column may be edited. False while not
// loaded; otherwise true only when a grant exists with canEdit=true.
// An absent row denies (fail-closed).
func (p *ColumnPermissions) CanEdit(column string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.loaded {
		return false
	}
	row, ok := p.rows[column]
	return ok && row.CanEdit
}

// CanView reports whether the column may be shown. True while not loaded
// (so the UI is never empty before data arrives); otherwise true unless
// a grant exists with canView=false (fail-open).
func (p *ColumnPermissions) CanView(column string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.loaded {
		return true
	}
	row, ok := p.rows[column]
	if !ok {
		return true
	}
	return row.CanView
}

// Loaded reports whether a permission set has been fetched.
func (p *ColumnPermissions) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loaded
}

func (p *ColumnPermissions) set(perms []Permission) {
	rows := make(map[string]Permission, len(perms))
	for _, perm := range perms {
		rows[perm.Column] = perm
	}
	p.mu.Lock()
	p.rows = rows
	p.loaded = true
	p.mu.Unlock()
}

// Client fetches the permission table for the authenticated caller.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     zerolog.Logger

	perms ColumnPermissions
}

// New builds a client against baseURL, authenticating with a bearer
// token (obtained via /api/get-token).
func New(baseURL, token string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// Permissions returns the cached grant set. Valid (with loading
// defaults) even before Refresh has ever succeeded.
func (c *Client) Permissions() *ColumnPermissions {
	return &c.perms
}

// Refresh fetches the grants once and swaps the cached set. On failure
// the error is logged and returned, and the cached state is left as it
// was: predicates keep answering with their previous (or loading)
// defaults rather than crashing the caller.
func (c *Client) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/permissions", nil)
	if err != nil {
		return fmt.Errorf("permclient: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Msg("permission fetch failed")
		return fmt.Errorf("permclient: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error().Int("status", resp.StatusCode).Msg("permission fetch rejected")
		return fmt.Errorf("permclient: unexpected status %d", resp.StatusCode)
	}

	var perms []Permission
	if err := json.NewDecoder(resp.Body).Decode(&perms); err != nil {
		c.log.Error().Err(err).Msg("permission response malformed")
		return fmt.Errorf("permclient: decode: %w", err)
	}

	c.perms.set(perms)
	return nil
}
