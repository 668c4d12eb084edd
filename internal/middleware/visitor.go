package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ContextVisitorID  = "visitorID"
	VisitorCookieName = "vetcard_visitor"
)

type VisitorConfig struct {
	Secret string
	TTL    time.Duration
	Secure bool
	Logger *slog.Logger
}

// VisitorMiddleware identifies the browser by a signed cookie and issues a
// fresh identity when the cookie is missing, expired or forged. Nothing is
// ever rejected: an anonymous visitor simply starts with empty stores.
func VisitorMiddleware(cfg VisitorConfig) gin.HandlerFunc {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 365 * 24 * time.Hour
	}

	return func(c *gin.Context) {
		if raw, err := c.Cookie(VisitorCookieName); err == nil && raw != "" {
			id, err := ParseVisitorToken(cfg.Secret, raw)
			if err == nil {
				c.Set(ContextVisitorID, id)
				c.Next()
				return
			}
			logger.Debug("visitor.token_rejected", "err", err)
		}

		id := uuid.NewString()
		token, err := IssueVisitorToken(cfg.Secret, id, time.Now(), cfg.TTL)
		if err != nil {
			logger.Error("visitor.token_issue_failed", "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "visitor_unavailable"})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(VisitorCookieName, token, int(cfg.TTL.Seconds()), "/", "", cfg.Secure, true)
		c.Set(ContextVisitorID, id)
		c.Next()
	}
}

func IssueVisitorToken(secret, visitorID string, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   visitorID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func ParseVisitorToken(secret, raw string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid_token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", errors.New("invalid_token_claims")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", errors.New("invalid_token_payload")
	}
	return claims.Subject, nil
}

// VisitorID returns the id set by VisitorMiddleware.
func VisitorID(c *gin.Context) string {
	return c.GetString(ContextVisitorID)
}
