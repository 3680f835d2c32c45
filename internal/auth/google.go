package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/julianstephens/harmony/internal/constants"
	"github.com/julianstephens/harmony/internal/logger"
)

// GoogleConfig configures the device authorization flow. Empty endpoint
// fields use Google's public endpoints.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	Endpoint     oauth2.Endpoint
	UserInfoURL  string
	Sessions     SessionStore
	// Prompt shows the verification URL and code to the user.
	Prompt func(verificationURL, userCode string)
}

// Google signs in with the OAuth 2.0 device flow, the terminal stand-in for
// a browser sign-in popup.
type Google struct {
	oauth       *oauth2.Config
	userInfoURL string
	sessions    SessionStore
	prompt      func(string, string)
}

var _ Provider = (*Google)(nil)

func NewGoogle(cfg GoogleConfig) *Google {
	ep := cfg.Endpoint
	if ep.AuthURL == "" {
		ep.AuthURL = constants.GoogleAuthURL
	}
	if ep.TokenURL == "" {
		ep.TokenURL = constants.GoogleTokenURL
	}
	if ep.DeviceAuthURL == "" {
		ep.DeviceAuthURL = constants.GoogleDeviceAuthURL
	}
	ep.AuthStyle = oauth2.AuthStyleInParams

	if cfg.UserInfoURL == "" {
		cfg.UserInfoURL = constants.GoogleUserInfoURL
	}
	if cfg.Sessions == nil {
		cfg.Sessions = KeyringSessions{}
	}
	if cfg.Prompt == nil {
		cfg.Prompt = func(url, code string) {
			fmt.Printf("To sign in, visit %s and enter the code %s\n", url, code)
		}
	}

	return &Google{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     ep,
			Scopes:       []string{"openid", "email", "profile"},
		},
		userInfoURL: cfg.UserInfoURL,
		sessions:    cfg.Sessions,
		prompt:      cfg.Prompt,
	}
}

func (g *Google) SignIn(ctx context.Context) (User, error) {
	u, err := g.signIn(ctx)
	if err != nil {
		logger.Error("Sign-in failed", "error", err)
		return User{}, err
	}
	logger.Info("Signed in", "user", u.ID, "email", u.Email)
	return u, nil
}

func (g *Google) signIn(ctx context.Context) (User, error) {
	if g.oauth.ClientID == "" {
		return User{}, fmt.Errorf("no OAuth client id configured (set auth.client_id or HARMONY_AUTH_CLIENT_ID)")
	}

	da, err := g.oauth.DeviceAuth(ctx)
	if err != nil {
		return User{}, fmt.Errorf("device authorization failed: %w", err)
	}
	g.prompt(da.VerificationURI, da.UserCode)

	tok, err := g.oauth.DeviceAccessToken(ctx, da)
	if err != nil {
		return User{}, fmt.Errorf("sign-in was not completed: %w", err)
	}

	u, err := g.fetchUser(ctx, g.oauth.Client(ctx, tok))
	if err != nil {
		return User{}, err
	}
	if err := saveSession(g.sessions, u); err != nil {
		return User{}, fmt.Errorf("failed to store session: %w", err)
	}
	return u, nil
}

type userInfo struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (g *Google) fetchUser(ctx context.Context, client *http.Client) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return User{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return User{}, fmt.Errorf("failed to fetch user profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return User{}, fmt.Errorf("failed to fetch user profile: %s", resp.Status)
	}
	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return User{}, fmt.Errorf("failed to decode user profile: %w", err)
	}
	if info.Sub == "" {
		return User{}, fmt.Errorf("user profile has no subject id")
	}
	return User{ID: info.Sub, Email: info.Email, Name: info.Name}, nil
}

func (g *Google) SignOut(context.Context) error {
	if err := clearSession(g.sessions); err != nil {
		return err
	}
	logger.Info("Signed out")
	return nil
}

func (g *Google) Current() (User, error) {
	return loadSession(g.sessions)
}
