package msgraph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

var requiredScopes = []string{
	"https://graph.microsoft.com/Calendars.Read",
	"offline_access",
}

func msEndpoint(tenantID, path string) string {
	return "https://login.microsoftonline.com/" + tenantID + "/oauth2/v2.0/" + path
}

// TokenPath returns where Graph tokens are kept inside dataDir.
func TokenPath(dataDir string) string {
	return filepath.Join(dataDir, "auth", "msgraph_tokens.json")
}

// oauth2Config returns the oauth2.Config for Microsoft Graph using the
// provided tenant and client IDs.
func oauth2Config(tenantID, clientID string) *oauth2.Config {
	return &oauth2.Config{
		ClientID: clientID,
		Scopes:   requiredScopes,
		Endpoint: oauth2.Endpoint{
			DeviceAuthURL: msEndpoint(tenantID, "devicecode"),
			TokenURL:      msEndpoint(tenantID, "token"),
			AuthStyle:     oauth2.AuthStyleInParams,
		},
	}
}

// loadToken loads a previously saved token. A missing file is (nil, nil).
func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("corrupt token file (delete %s to re-authenticate): %w", path, err)
	}
	return &tok, nil
}

// saveToken persists a token atomically with owner-only permissions.
func saveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating auth directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving token file: %w", err)
	}
	return nil
}

// Auth signs in to Microsoft Graph with the OAuth2 device code flow.
type Auth struct {
	TenantID  string
	ClientID  string
	TokenPath string
	// Out receives the sign-in instructions.
	Out    io.Writer
	Logger zerolog.Logger
}

// Token returns a usable token. It loads the saved token, refreshes it if
// needed, or starts a new device code flow.
func (a Auth) Token(ctx context.Context) (*oauth2.Token, *oauth2.Config, error) {
	cfg := oauth2Config(a.TenantID, a.ClientID)

	tok, err := loadToken(a.TokenPath)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("ignoring saved token")
		tok = nil
	}

	if tok != nil && tok.Valid() {
		return tok, cfg, nil
	}

	if tok != nil && tok.RefreshToken != "" {
		refreshed, err := cfg.TokenSource(ctx, tok).Token()
		if err == nil {
			if err := saveToken(a.TokenPath, refreshed); err != nil {
				a.Logger.Warn().Err(err).Msg("could not save refreshed token")
			}
			return refreshed, cfg, nil
		}
		a.Logger.Info().Err(err).Msg("token refresh failed, re-authenticating")
	}

	resp, err := cfg.DeviceAuth(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("device auth request failed: %w", err)
	}

	fmt.Fprintln(a.Out)
	fmt.Fprintln(a.Out, "To sign in, use a web browser to open the page:")
	fmt.Fprintf(a.Out, "  %s\n", resp.VerificationURI)
	fmt.Fprintf(a.Out, "Enter the code: %s\n", resp.UserCode)
	fmt.Fprintln(a.Out)

	newTok, err := cfg.DeviceAccessToken(ctx, resp)
	if err != nil {
		return nil, nil, fmt.Errorf("device authentication failed: %w", err)
	}

	if err := saveToken(a.TokenPath, newTok); err != nil {
		a.Logger.Warn().Err(err).Msg("could not save token")
	}
	return newTok, cfg, nil
}
