// Package auth orchestrates the OAuth 2.0 credential lifecycle:
// authorization-code login over a loopback redirect, lazy refresh
// immediately before a request needs a token, status reporting and
// logout. No background refresh runs; every transition is triggered by
// one of these operations.
package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/gcp-hcp/gcphcp/internal/clierr"
	"github.com/gcp-hcp/gcphcp/internal/config"
	"github.com/gcp-hcp/gcphcp/internal/credstore"
	"github.com/gcp-hcp/gcphcp/internal/logger"
)

// State describes the stored credential.
type State int

const (
	LoggedOut State = iota
	Valid
	Expired
)

func (s State) String() string {
	switch s {
	case Valid:
		return "logged in"
	case Expired:
		return "logged in (token expired)"
	default:
		return "logged out"
	}
}

const defaultLoginTimeout = 5 * time.Minute

// Manager owns credential state transitions.
type Manager struct {
	cfg          *config.Config
	store        *credstore.Store
	opener       Opener
	log          *slog.Logger
	now          func() time.Time
	loginTimeout time.Duration

	// httpClient, when set, is used for OAuth endpoint traffic.
	// Tests point it at httptest servers.
	httpClient *http.Client
}

// NewManager builds a manager over the given store. A nil opener
// defaults to the platform browser.
func NewManager(cfg *config.Config, store *credstore.Store, opener Opener) *Manager {
	if opener == nil {
		opener = BrowserOpener{}
	}
	return &Manager{
		cfg:          cfg,
		store:        store,
		opener:       opener,
		log:          logger.Get(),
		now:          time.Now,
		loginTimeout: defaultLoginTimeout,
	}
}

// Status reports the current credential state without touching the
// network.
func (m *Manager) Status() (State, *credstore.Credential) {
	cred, _ := m.store.Load()
	if cred == nil {
		return LoggedOut, nil
	}
	if cred.Expired(m.now()) {
		return Expired, cred
	}
	return Valid, cred
}

// Login runs the authorization-code flow: loopback listener, browser
// consent, code exchange, persist. Valid from any state; re-login
// replaces the stored credential.
func (m *Manager) Login(ctx context.Context) (*credstore.Credential, error) {
	oc, err := loadOAuthConfig(m.cfg.ClientSecretsPath)
	if err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, clierr.Wrap(clierr.Internal, "failed to start local callback listener", err)
	}
	defer listener.Close()

	flow := *oc
	flow.RedirectURL = fmt.Sprintf("http://%s/callback", listener.Addr().String())
	state := uuid.NewString()

	type callback struct {
		code    string
		state   string
		errCode string
	}
	results := make(chan callback, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		select {
		case results <- callback{code: q.Get("code"), state: q.Get("state"), errCode: q.Get("error")}:
		default:
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body>Authentication complete. You may close this window.</body></html>")
	})
	server := &http.Server{Handler: mux}
	go server.Serve(listener)
	defer server.Close()

	authURL := flow.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
	m.log.Info("opening browser for authorization")
	if err := m.opener.Open(authURL); err != nil {
		m.log.Warn("could not open browser; visit the URL manually", "url", authURL)
	}

	var cb callback
	select {
	case cb = <-results:
	case <-ctx.Done():
		return nil, clierr.New(clierr.Auth, "login canceled before authorization completed")
	case <-time.After(m.loginTimeout):
		return nil, clierr.New(clierr.Auth, "authorization flow timed out; no response from browser")
	}

	if cb.errCode == "access_denied" {
		return nil, clierr.New(clierr.Auth, "authorization denied by user")
	}
	if cb.errCode != "" {
		return nil, clierr.Newf(clierr.Auth, "authorization failed: %s", cb.errCode)
	}
	if cb.state != state {
		return nil, clierr.New(clierr.Auth, "authorization response state mismatch")
	}
	if cb.code == "" {
		return nil, clierr.New(clierr.Auth, "authorization response carried no code")
	}

	token, err := flow.Exchange(m.oauthContext(ctx), cb.code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, clierr.Wrap(clierr.Auth, "token exchange rejected", err)
		}
		return nil, clierr.Wrap(clierr.Network, "token endpoint unreachable", err)
	}

	cred := &credstore.Credential{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		Expiry:       token.Expiry,
		Scopes:       flow.Scopes,
		AccountEmail: emailFromIDToken(token),
	}
	if err := m.store.Save(cred); err != nil {
		return nil, fmt.Errorf("failed to persist credential: %w", err)
	}
	return cred, nil
}

// Token returns a presently valid access token, refreshing and
// persisting first when the stored one is expired. It never returns a
// stale token.
func (m *Manager) Token(ctx context.Context) (string, error) {
	cred, _ := m.store.Load()
	if cred == nil {
		return "", clierr.New(clierr.Auth, "not logged in; run 'gcphcp auth login'")
	}
	if !cred.Expired(m.now()) {
		return cred.AccessToken, nil
	}
	if cred.RefreshToken == "" {
		return "", clierr.New(clierr.Auth, "access token expired and no refresh token stored; reauthentication required")
	}
	return m.refresh(ctx, cred)
}

// Refresh forces a new access token regardless of stored expiry. The
// API client calls this once after a 401/403.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	cred, _ := m.store.Load()
	if cred == nil {
		return "", clierr.New(clierr.Auth, "not logged in; run 'gcphcp auth login'")
	}
	if cred.RefreshToken == "" {
		return "", clierr.New(clierr.Auth, "no refresh token stored; reauthentication required")
	}
	return m.refresh(ctx, cred)
}

// AccountEmail returns the authenticated account email, if known.
func (m *Manager) AccountEmail() string {
	cred, _ := m.store.Load()
	if cred == nil {
		return ""
	}
	return cred.AccountEmail
}

// Logout clears the stored credential. Idempotent.
func (m *Manager) Logout() error {
	return m.store.Clear()
}

func (m *Manager) refresh(ctx context.Context, cred *credstore.Credential) (string, error) {
	oc, err := loadOAuthConfig(m.cfg.ClientSecretsPath)
	if err != nil {
		return "", err
	}
	source := oc.TokenSource(m.oauthContext(ctx), &oauth2.Token{RefreshToken: cred.RefreshToken})
	token, err := source.Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return "", clierr.Wrap(clierr.Auth, "token refresh rejected; reauthentication required", err)
		}
		return "", clierr.Wrap(clierr.Network, "token endpoint unreachable during refresh", err)
	}

	updated := *cred
	updated.AccessToken = token.AccessToken
	updated.Expiry = token.Expiry
	if token.TokenType != "" {
		updated.TokenType = token.TokenType
	}
	if token.RefreshToken != "" {
		updated.RefreshToken = token.RefreshToken
	}
	// Persist before returning so a crash after this point still
	// leaves a usable credential on disk.
	if err := m.store.Save(&updated); err != nil {
		return "", fmt.Errorf("failed to persist refreshed credential: %w", err)
	}
	m.log.Debug("access token refreshed", "expiry", updated.Expiry.Format(time.RFC3339))
	return updated.AccessToken, nil
}

func (m *Manager) oauthContext(ctx context.Context) context.Context {
	if m.httpClient != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
	}
	return ctx
}

// emailFromIDToken best-effort decodes the email claim from an OpenID
// Connect ID token without verifying the signature; the email is
// informational only.
func emailFromIDToken(token *oauth2.Token) string {
	raw, _ := token.Extra("id_token").(string)
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return ""
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return ""
	}
	var claims struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return ""
	}
	return claims.Email
}
