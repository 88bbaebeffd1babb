package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/workspace-hub/pkg/helpers"
)

// GateConfig configures RouteGate.
type GateConfig struct {
	// PublicPaths are matched exactly and never require a session.
	PublicPaths []string
	// BypassPrefixes are never inspected (API, static assets, favicon).
	BypassPrefixes []string
	// SignInPath is where requests without a session are redirected.
	SignInPath string
}

// RouteGate runs before routing on every request. Public paths pass, paths
// carrying a "token" cookie pass, everything else is redirected to sign in.
// Only the presence of the cookie is checked here; API routes verify it with Auth.
func RouteGate(cfg GateConfig) gin.HandlerFunc {
	public := make(map[string]struct{}, len(cfg.PublicPaths))
	for _, p := range cfg.PublicPaths {
		public[p] = struct{}{}
	}
	signIn := cfg.SignInPath
	if signIn == "" {
		signIn = "/sign-in"
	}
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if bypassed(path, cfg.BypassPrefixes) {
			c.Next()
			return
		}
		if _, ok := public[path]; ok {
			c.Next()
			return
		}
		if _, err := c.Cookie(helpers.TokenCookie); err == nil {
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, signIn)
		c.Abort()
	}
}

// bypassed reports whether path equals a prefix or sits below it.
func bypassed(path string, prefixes []string) bool {
	for _, p := range prefixes {
		p = strings.TrimSuffix(p, "/")
		if p == "" {
			continue
		}
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
