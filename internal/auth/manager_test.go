package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gcp-hcp/gcphcp/internal/clierr"
	"github.com/gcp-hcp/gcphcp/internal/config"
	"github.com/gcp-hcp/gcphcp/internal/credstore"
)

// redirectOpener simulates the user approving (or denying) consent in
// the browser by calling the loopback redirect directly.
type redirectOpener struct {
	t      *testing.T
	mutate func(q url.Values) url.Values
}

func (o redirectOpener) Open(authURL string) error {
	u, err := url.Parse(authURL)
	if err != nil {
		return err
	}
	q := url.Values{}
	q.Set("code", "auth-code-1")
	q.Set("state", u.Query().Get("state"))
	if o.mutate != nil {
		q = o.mutate(q)
	}

	redirect := u.Query().Get("redirect_uri")
	go func() {
		resp, err := http.Get(redirect + "?" + q.Encode())
		if err != nil {
			o.t.Errorf("callback request failed: %v", err)
			return
		}
		resp.Body.Close()
	}()
	return nil
}

func writeSecrets(t *testing.T, dir, tokenURL string) string {
	t.Helper()
	path := filepath.Join(dir, "client_secrets.json")
	content := fmt.Sprintf(`{"installed":{"client_id":"cid","client_secret":"cs","auth_uri":"https://accounts.example.com/auth","token_uri":"%s"}}`, tokenURL)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func idToken(t *testing.T, email string) string {
	t.Helper()
	payload, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		t.Fatal(err)
	}
	encode := base64.RawURLEncoding.EncodeToString
	return encode([]byte(`{"alg":"none"}`)) + "." + encode(payload) + ".sig"
}

func testManager(t *testing.T, tokenHandler http.HandlerFunc) (*Manager, *credstore.Store) {
	t.Helper()
	dir := t.TempDir()

	tokenURL := ""
	if tokenHandler != nil {
		server := httptest.NewServer(tokenHandler)
		t.Cleanup(server.Close)
		tokenURL = server.URL + "/token"
	} else {
		tokenURL = "https://127.0.0.1:1/token" // never reached
	}

	cfg := &config.Config{
		ClientSecretsPath: writeSecrets(t, dir, tokenURL),
		CredentialsPath:   filepath.Join(dir, "credentials.json"),
		Timeout:           5 * time.Second,
	}
	store := credstore.New(cfg.CredentialsPath)
	mgr := NewManager(cfg, store, redirectOpener{t: t})
	mgr.loginTimeout = 5 * time.Second
	mgr.httpClient = http.DefaultClient
	return mgr, store
}

func tokenResponse(t *testing.T, email string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"access_token": "at-new",
			"refresh_token": "rt-new",
			"token_type": "Bearer",
			"expires_in": 3600,
			"id_token": %q
		}`, idToken(t, email))
	}
}

func TestLoginHappyPath(t *testing.T) {
	mgr, store := testManager(t, tokenResponse(t, "dev@example.com"))

	cred, err := mgr.Login(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if cred.AccessToken != "at-new" || cred.RefreshToken != "rt-new" {
		t.Errorf("credential = %+v", cred)
	}
	if cred.AccountEmail != "dev@example.com" {
		t.Errorf("account email = %q", cred.AccountEmail)
	}

	// The credential must be on disk, not just in memory.
	stored, err := store.Load()
	if err != nil || stored == nil {
		t.Fatalf("stored credential missing (err=%v)", err)
	}
	if stored.AccessToken != "at-new" {
		t.Errorf("stored access token = %q", stored.AccessToken)
	}

	state, _ := mgr.Status()
	if state != Valid {
		t.Errorf("state = %v, want Valid", state)
	}
}

func TestLoginDenied(t *testing.T) {
	mgr, _ := testManager(t, tokenResponse(t, ""))
	mgr.opener = redirectOpener{t: t, mutate: func(q url.Values) url.Values {
		q.Del("code")
		q.Set("error", "access_denied")
		return q
	}}

	_, err := mgr.Login(context.Background())
	if clierr.KindOf(err) != clierr.Auth {
		t.Errorf("kind = %v, want Auth", clierr.KindOf(err))
	}
}

func TestLoginStateMismatch(t *testing.T) {
	mgr, _ := testManager(t, tokenResponse(t, ""))
	mgr.opener = redirectOpener{t: t, mutate: func(q url.Values) url.Values {
		q.Set("state", "forged")
		return q
	}}

	_, err := mgr.Login(context.Background())
	if clierr.KindOf(err) != clierr.Auth {
		t.Errorf("kind = %v, want Auth", clierr.KindOf(err))
	}
}

func TestLoginExchangeRejected(t *testing.T) {
	mgr, _ := testManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"invalid_grant"}`)
	})

	_, err := mgr.Login(context.Background())
	if clierr.KindOf(err) != clierr.Auth {
		t.Errorf("kind = %v, want Auth for a rejected exchange", clierr.KindOf(err))
	}
}

func TestLoginTokenEndpointUnreachable(t *testing.T) {
	mgr, _ := testManager(t, nil)
	_, err := mgr.Login(context.Background())
	if clierr.KindOf(err) != clierr.Network {
		t.Errorf("kind = %v, want Network for unreachable token endpoint", clierr.KindOf(err))
	}
}

func TestTokenWhenLoggedOut(t *testing.T) {
	mgr, _ := testManager(t, nil)
	_, err := mgr.Token(context.Background())
	if clierr.KindOf(err) != clierr.Auth {
		t.Errorf("kind = %v, want Auth", clierr.KindOf(err))
	}
}

func TestTokenReturnsValidWithoutRefresh(t *testing.T) {
	mgr, store := testManager(t, nil) // token endpoint must not be needed
	if err := store.Save(&credstore.Credential{
		AccessToken: "at-current",
		Expiry:      time.Now().Add(time.Hour),
	}); err != nil {
		t.Fatal(err)
	}

	token, err := mgr.Token(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if token != "at-current" {
		t.Errorf("token = %q", token)
	}
}

func TestTokenRefreshesExpiredAndPersists(t *testing.T) {
	mgr, store := testManager(t, tokenResponse(t, ""))
	if err := store.Save(&credstore.Credential{
		AccessToken:  "at-stale",
		RefreshToken: "rt-1",
		AccountEmail: "dev@example.com",
		Expiry:       time.Now().Add(-time.Hour),
	}); err != nil {
		t.Fatal(err)
	}

	token, err := mgr.Token(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if token != "at-new" {
		t.Errorf("token = %q, want refreshed token, never the stale one", token)
	}

	stored, _ := store.Load()
	if stored == nil || stored.AccessToken != "at-new" {
		t.Fatal("refreshed token was not persisted")
	}
	if stored.AccountEmail != "dev@example.com" {
		t.Error("refresh must keep the account email")
	}
}

func TestTokenExpiredWithoutRefreshToken(t *testing.T) {
	mgr, store := testManager(t, nil)
	if err := store.Save(&credstore.Credential{
		AccessToken: "at-stale",
		Expiry:      time.Now().Add(-time.Hour),
	}); err != nil {
		t.Fatal(err)
	}

	_, err := mgr.Token(context.Background())
	if clierr.KindOf(err) != clierr.Auth {
		t.Errorf("kind = %v, want Auth when reauthentication is required", clierr.KindOf(err))
	}
}

func TestStatusTransitions(t *testing.T) {
	mgr, store := testManager(t, nil)

	if state, _ := mgr.Status(); state != LoggedOut {
		t.Errorf("state = %v, want LoggedOut", state)
	}

	if err := store.Save(&credstore.Credential{
		AccessToken: "at",
		Expiry:      time.Now().Add(time.Hour),
	}); err != nil {
		t.Fatal(err)
	}
	if state, _ := mgr.Status(); state != Valid {
		t.Errorf("state = %v, want Valid", state)
	}

	if err := store.Save(&credstore.Credential{
		AccessToken: "at",
		Expiry:      time.Now().Add(-time.Hour),
	}); err != nil {
		t.Fatal(err)
	}
	if state, _ := mgr.Status(); state != Expired {
		t.Errorf("state = %v, want Expired", state)
	}
}

func TestLogoutIdempotent(t *testing.T) {
	mgr, store := testManager(t, nil)
	if err := store.Save(&credstore.Credential{AccessToken: "at"}); err != nil {
		t.Fatal(err)
	}
	if err := mgr.Logout(); err != nil {
		t.Fatal(err)
	}
	if err := mgr.Logout(); err != nil {
		t.Errorf("second logout failed: %v", err)
	}
	if state, _ := mgr.Status(); state != LoggedOut {
		t.Errorf("state = %v, want LoggedOut", state)
	}
}

func TestLoginMissingSecrets(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		ClientSecretsPath: filepath.Join(dir, "missing.json"),
		CredentialsPath:   filepath.Join(dir, "credentials.json"),
	}
	mgr := NewManager(cfg, credstore.New(cfg.CredentialsPath), redirectOpener{t: t})

	_, err := mgr.Login(context.Background())
	if clierr.KindOf(err) != clierr.Config {
		t.Errorf("kind = %v, want Config", clierr.KindOf(err))
	}
}
