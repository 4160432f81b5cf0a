package auth

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"

	"github.com/gcp-hcp/gcphcp/internal/clierr"
)

// Scopes requested during login. cloud-platform grants the resource
// API access; the identity scopes let us report the account email.
var Scopes = []string{
	"openid",
	"email",
	"profile",
	"https://www.googleapis.com/auth/cloud-platform",
}

// clientSecrets mirrors the Google "installed application" client
// secrets JSON layout.
type clientSecrets struct {
	Installed struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
		AuthURI      string `json:"auth_uri"`
		TokenURI     string `json:"token_uri"`
	} `json:"installed"`
}

// loadOAuthConfig reads the client secrets file and builds the oauth2
// configuration. The redirect URL is filled in at login time once the
// loopback listener port is known.
func loadOAuthConfig(path string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, clierr.Wrap(clierr.Config,
			fmt.Sprintf("cannot read client secrets file %s", path), err)
	}
	var secrets clientSecrets
	if err := json.Unmarshal(data, &secrets); err != nil {
		return nil, clierr.Wrap(clierr.Config,
			fmt.Sprintf("client secrets file %s is not valid JSON", path), err)
	}
	s := secrets.Installed
	if s.ClientID == "" || s.AuthURI == "" || s.TokenURI == "" {
		return nil, clierr.Newf(clierr.Config,
			"client secrets file %s is missing client_id, auth_uri or token_uri", path)
	}
	return &oauth2.Config{
		ClientID:     s.ClientID,
		ClientSecret: s.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  s.AuthURI,
			TokenURL: s.TokenURI,
		},
		Scopes: Scopes,
	}, nil
}
