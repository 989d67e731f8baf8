package atelier

import "time"

// SiteConfig holds all configuration for an atelier site.
type SiteConfig struct {
	Name        string // Site name (default "Atelier")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for meta tags and the feed
	Author      string // Author name for JSON-LD

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/atelier.db")

	JWTSecret     string        // Required: HMAC secret for the admin token
	SessionSecret string        // Required: flash-message session secret
	CookieSecure  bool          // Set true for HTTPS
	TokenTTL      time.Duration // Admin token lifetime (default 24h)

	PostCacheTTL time.Duration // Published-post cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Atelier"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/atelier.db"
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = 24 * time.Hour
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets and uploads (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
