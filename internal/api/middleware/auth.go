/**
 * @description
 * Authentication middleware and session-token issuance.
 * Credentials are a static username -> sha256(password) map from
 * configuration; successful logins receive an HS256 JWT that Protected()
 * validates on every data route.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2: HTTP Context
 * - github.com/golang-jwt/jwt/v5: JWT signing and parsing
 *
 * @notes
 * - InitAuth must run at startup; Protected() rejects everything until then.
 * - The authenticated username is stored in Locals under "username".
 */

package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/staylens/backend/internal/config"
	"github.com/staylens/backend/internal/logger"
)

type authState struct {
	secret   []byte
	users    map[string]string
	tokenTTL time.Duration
}

var auth *authState

// InitAuth loads the signing secret and credential map. Call at startup.
func InitAuth(cfg *config.Config) error {
	secret := cfg.JWTSecretBytes()
	if secret == nil {
		return errors.New("JWT_SECRET is required for auth")
	}
	auth = &authState{
		secret:   secret,
		users:    cfg.Auth.Users,
		tokenTTL: cfg.Auth.TokenTTL,
	}
	logger.Info("✅ Auth initialized with %d configured users", len(auth.users))
	return nil
}

// CheckCredentials verifies a username/password pair against the
// configured sha256 digests.
func CheckCredentials(username, password string) bool {
	if auth == nil {
		return false
	}
	want, ok := auth.users[username]
	if !ok {
		return false
	}
	sum := sha256.Sum256([]byte(password))
	got := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// IssueToken signs a session token for an already-verified username.
func IssueToken(username string) (string, error) {
	if auth == nil {
		return "", errors.New("auth not initialized")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": now.Add(auth.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(auth.secret)
}

// Protected protects routes requiring authentication
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if auth == nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Auth configuration not initialized",
			})
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing authorization header"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token format"})
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return auth.secret, nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
		}

		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing subject"})
		}

		c.Locals("username", sub)

		return c.Next()
	}
}

// GetUsername returns the authenticated username from context
func GetUsername(c *fiber.Ctx) (string, error) {
	name, ok := c.Locals("username").(string)
	if !ok {
		return "", errors.New("username not found in context")
	}
	return name, nil
}
