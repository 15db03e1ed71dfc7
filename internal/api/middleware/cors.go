package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"audio-minutes/internal/config"
)

const (
	wildcard        = "*"
	preflightMaxAge = 600
)

var allMethods = []string{"DELETE", "GET", "HEAD", "OPTIONS", "PATCH", "POST", "PUT"}

// CORS returns a CORS middleware for cfg. A "*" in methods expands to every
// standard method and a "*" in headers echoes the requested headers. With
// credentials enabled a "*" origin echoes the caller's origin, since
// browsers reject a literal "*" together with credentials.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	allowCredentials := cfg.AllowCredentials != nil && *cfg.AllowCredentials
	anyOrigin := lo.Contains(cfg.AllowOrigins, wildcard)

	methods := cfg.AllowMethods
	if lo.Contains(methods, wildcard) {
		methods = allMethods
	}
	anyHeader := lo.Contains(cfg.AllowHeaders, wildcard)

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			c.Next()
			return
		}

		switch {
		case anyOrigin && !allowCredentials:
			c.Header("Access-Control-Allow-Origin", wildcard)
		case anyOrigin || lo.Contains(cfg.AllowOrigins, origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		default:
			c.Next()
			return
		}

		if allowCredentials {
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method != http.MethodOptions {
			c.Next()
			return
		}

		// Preflight
		if len(methods) > 0 {
			c.Header("Access-Control-Allow-Methods", strings.Join(methods, ", "))
		}
		if anyHeader {
			if requested := c.Request.Header.Get("Access-Control-Request-Headers"); requested != "" {
				c.Header("Access-Control-Allow-Headers", requested)
			}
		} else if len(cfg.AllowHeaders) > 0 {
			c.Header("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ", "))
		}
		c.Header("Access-Control-Max-Age", strconv.Itoa(preflightMaxAge))
		c.AbortWithStatus(http.StatusNoContent)
	}
}
