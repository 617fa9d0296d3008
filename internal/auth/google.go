package auth

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/Kyz7/beritablog/internal/config"
	"github.com/Kyz7/beritablog/internal/response"
	"github.com/Kyz7/beritablog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var googleOauthConfig = &oauth2.Config{
	RedirectURL: "http://localhost:8080/api/auth/google/callback",
	Scopes:      []string{"https://www.googleapis.com/auth/userinfo.email"},
	Endpoint:    google.Endpoint,
}

func configureGoogle(cfg *config.Config) {
	googleOauthConfig.ClientID = cfg.GoogleClientID
	googleOauthConfig.ClientSecret = cfg.GoogleClientSecret
	if cfg.GoogleRedirectURL != "" {
		googleOauthConfig.RedirectURL = cfg.GoogleRedirectURL
	}
}

var (
	stateStore = make(map[string]time.Time)
	stateMutex sync.Mutex
)

func storeState(state string) {
	stateMutex.Lock()
	defer stateMutex.Unlock()

	now := time.Now()
	for k, v := range stateStore {
		if now.After(v) {
			delete(stateStore, k)
		}
	}
	stateStore[state] = now.Add(5 * time.Minute)
}

func validateState(state string) bool {
	stateMutex.Lock()
	defer stateMutex.Unlock()

	expiry, exists := stateStore[state]
	if !exists || time.Now().After(expiry) {
		return false
	}
	delete(stateStore, state)
	return true
}

// GoogleLogin starts author sign-in through Google.
func GoogleLogin(c *fiber.Ctx) error {
	state := utils.RandomString(32)
	storeState(state)
	return c.Redirect(googleOauthConfig.AuthCodeURL(state), fiber.StatusFound)
}

// GoogleCallback signs in the author whose username equals the verified
// Google e-mail. Accounts are never created here.
func GoogleCallback(c *fiber.Ctx) error {
	if !validateState(c.Query("state")) {
		return response.BadRequest(c, "Invalid state parameter", nil)
	}

	code := c.Query("code")
	if code == "" {
		return response.BadRequest(c, "Missing authorization code", nil)
	}

	ctx := c.UserContext()
	token, err := googleOauthConfig.Exchange(ctx, code)
	if err != nil {
		log.Warnf("google token exchange failed: %v", err)
		return response.Unauthorized(c, "Failed to exchange token")
	}

	resp, err := googleOauthConfig.Client(ctx, token).Get(googleUserInfoURL)
	if err != nil {
		return response.InternalError(c, "Failed to get user info")
	}
	defer resp.Body.Close()

	var info struct {
		Email         string `json:"email"`
		VerifiedEmail bool   `json:"verified_email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil || info.Email == "" {
		return response.InternalError(c, "Failed to get user info")
	}
	if !info.VerifiedEmail {
		return response.Unauthorized(c, "Google account e-mail is not verified")
	}

	author, err := findActiveCandidate(info.Email)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return response.Unauthorized(c, "No author account is registered for this e-mail")
	case errors.Is(err, ErrInactiveAuthor):
		return response.Error(c, fiber.StatusForbidden, "FORBIDDEN",
			"Your account is not active yet, please contact the admin",
			fiber.Map{"contactLink": ContactLink(author.Username)})
	case err != nil:
		return response.FromError(c, err, "Author")
	}

	return signInAuthor(c, author)
}
