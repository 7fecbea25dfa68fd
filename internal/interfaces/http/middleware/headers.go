package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// receiptCSP admits the inline stylesheet of rendered receipts
const receiptCSP = "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; frame-ancestors 'none'; base-uri 'self'"

// SecurityConfig selects the hardening headers sent on every response
type SecurityConfig struct {
	// HSTSMaxAge enables Strict-Transport-Security when positive
	HSTSMaxAge            time.Duration
	HSTSIncludeSubdomains bool
	// ContentSecurityPolicy is omitted when empty
	ContentSecurityPolicy string
}

// DefaultSecurityConfig sends a receipt friendly CSP and no HSTS, which only
// belongs behind TLS.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		HSTSIncludeSubdomains: true,
		ContentSecurityPolicy: receiptCSP,
	}
}

// SecurityHeaders adds the headers of cfg to every response
func SecurityHeaders(cfg SecurityConfig) gin.HandlerFunc {
	headers := map[string]string{
		"X-Frame-Options":        "DENY",
		"X-Content-Type-Options": "nosniff",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	if cfg.ContentSecurityPolicy != "" {
		headers["Content-Security-Policy"] = cfg.ContentSecurityPolicy
	}
	if cfg.HSTSMaxAge > 0 {
		hsts := "max-age=" + strconv.FormatInt(int64(cfg.HSTSMaxAge/time.Second), 10)
		if cfg.HSTSIncludeSubdomains {
			hsts += "; includeSubDomains"
		}
		headers["Strict-Transport-Security"] = hsts
	}
	return func(c *gin.Context) {
		setAll(c, headers)
		c.Next()
	}
}
