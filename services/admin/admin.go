package admin

import (
	"errors"
	"time"

	"deskhive/config"
	"deskhive/utils"

	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 12 * time.Hour

// ErrBadCredentials is returned for any authentication failure; callers get
// no hint which part was wrong.
var ErrBadCredentials = errors.New("invalid email or password")

// Authenticate checks the admin credentials against config and returns a
// signed JWT on success.
func Authenticate(email, password string) (string, error) {
	cfg := config.AppConfig
	if cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
		return "", errors.New("admin access is not configured")
	}
	if email != cfg.AdminEmail {
		return "", ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(password)); err != nil {
		return "", ErrBadCredentials
	}
	return utils.GenerateToken(email, tokenLifetime)
}
