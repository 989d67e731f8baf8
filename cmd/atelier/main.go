// Command atelier runs the tailoring site server. All site branding and
// secrets come from environment variables.
package main

import (
	"log"
	"strings"
	"time"

	"github.com/khayata/atelier"
)

func main() {
	cfg := atelier.SiteConfig{
		Name:        atelier.EnvOr("SITE_NAME", "Atelier"),
		URL:         strings.TrimSuffix(atelier.EnvOr("SITE_URL", "http://localhost:3000"), "/"),
		Description: atelier.EnvOr("SITE_DESCRIPTION", ""),
		Author:      atelier.EnvOr("SITE_AUTHOR", ""),

		Addr:         atelier.EnvOr("ADDR", ":3000"),
		DatabasePath: atelier.EnvOr("DATABASE_PATH", "data/atelier.db"),

		JWTSecret:     atelier.MustEnv("JWT_SECRET"),
		SessionSecret: atelier.MustEnv("SESSION_SECRET"),
		CookieSecure:  strings.EqualFold(atelier.EnvOr("COOKIE_SECURE", ""), "true"),
	}
	if v := atelier.EnvOr("POST_CACHE_TTL", ""); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("invalid POST_CACHE_TTL: %v", err)
		}
		cfg.PostCacheTTL = ttl
	}

	app := atelier.New(cfg)
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
