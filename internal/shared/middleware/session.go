package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ===================================
// CONSTANTS
// ===================================

const (
	SessionCookieName = "session_id"

	ContextKeySessionID = "session_id"
)

// ===================================
// MIDDLEWARE CONFIGURATION
// ===================================

// SessionMiddlewareConfig holds cookie settings for the shopper session
type SessionMiddlewareConfig struct {
	CookieDomain   string
	CookiePath     string
	CookieSecure   bool
	CookieSameSite http.SameSite
	MaxAge         int // seconds
}

// DefaultSessionMiddlewareConfig returns secure defaults (30 days, Lax, HTTPS only)
func DefaultSessionMiddlewareConfig() SessionMiddlewareConfig {
	return SessionMiddlewareConfig{
		CookiePath:     "/",
		CookieSecure:   true,
		CookieSameSite: http.SameSiteLaxMode,
		MaxAge:         60 * 60 * 24 * 30,
	}
}

// ===================================
// SESSION MIDDLEWARE
// ===================================

// SessionMiddleware identifies the shopper. Cart, checkout progress, the last
// order snapshot and coupon flags are all keyed by this id.
//
// Flow:
// 1. Read session_id cookie
// 2. Missing or malformed → generate a new UUID
// 3. Refresh the cookie so the session slides forward
// 4. Store the id in context for handlers
func SessionMiddleware(config SessionMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || uuid.Validate(sessionID) != nil {
			sessionID = uuid.NewString()
		}

		c.SetSameSite(config.CookieSameSite)
		c.SetCookie(
			SessionCookieName,
			sessionID,
			config.MaxAge,
			config.CookiePath,
			config.CookieDomain,
			config.CookieSecure,
			true, // httpOnly
		)

		c.Set(ContextKeySessionID, sessionID)
		c.Next()
	}
}

// GetSessionID retrieves session ID from context
func GetSessionID(c *gin.Context) string {
	sessionID, exists := c.Get(ContextKeySessionID)
	if !exists {
		return ""
	}

	sid, ok := sessionID.(string)
	if !ok {
		return ""
	}

	return sid
}
