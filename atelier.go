// Package atelier is the web backend for a tailoring atelier site built
// with Go, Echo, and gomponents. It serves the public marketing pages
// (home, blog, collection showcase) and an admin-managed content API:
// blog posts with slug and SEO derivation, gallery, services, collection
// items, site content, and image uploads.
package atelier

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
)

// App is the central atelier application. It wires together the store,
// cache, handlers, and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new atelier App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, cache, middleware, and routes, then
// starts the server. Seed content is inserted before the listener opens,
// so the first request never races the seeding writes.
func (a *App) Start() error {
	if a.Config.JWTSecret == "" {
		return fmt.Errorf("atelier: JWTSecret is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("atelier: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("atelier: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Static assets and crawler endpoints.
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Public pages.
	e.GET("/", a.handleHome)
	e.GET("/blog", a.handleBlogIndex)
	e.GET("/blog/:slug", a.handlePostPage)

	// Auth API.
	e.POST("/api/auth/login", a.handleLogin)
	e.POST("/api/auth/logout", a.handleLogout)

	// Blog API. Reads are public (drafts token-gated inside the handler);
	// writes require an admin token.
	e.GET("/api/blog", a.handleListBlog)
	e.POST("/api/blog", a.handleCreateBlog, a.adminAPIGate)
	e.GET("/api/blog/slug/:slug", a.handleGetBlogBySlug)
	e.GET("/api/blog/:id", a.handleGetBlog, a.adminAPIGate)
	e.PUT("/api/blog/:id", a.handleUpdateBlog, a.adminAPIGate)
	e.DELETE("/api/blog/:id", a.handleDeleteBlog, a.adminAPIGate)

	// Showcase content API.
	e.GET("/api/collections", a.handleListCollections)
	e.POST("/api/collections", a.handleCreateCollection, a.adminAPIGate)
	e.PUT("/api/collections/:id", a.handleUpdateCollection, a.adminAPIGate)
	e.DELETE("/api/collections/:id", a.handleDeleteCollection, a.adminAPIGate)

	e.GET("/api/gallery", a.handleListGallery)
	e.POST("/api/gallery", a.handleCreateGallery, a.adminAPIGate)
	e.DELETE("/api/gallery/:id", a.handleDeleteGallery, a.adminAPIGate)

	e.GET("/api/services", a.handleListServices)
	e.POST("/api/services", a.handleCreateService, a.adminAPIGate)
	e.DELETE("/api/services/:id", a.handleDeleteService, a.adminAPIGate)

	e.GET("/api/site-content", a.handleListSiteContent)
	e.POST("/api/site-content", a.handleUpsertSiteContent, a.adminAPIGate)

	// Image API.
	e.GET("/api/images/:filename", a.handleImageServe)
	e.GET("/api/images", a.handleImageList, a.adminAPIGate)
	e.POST("/api/upload", a.handleImageUpload, a.adminAPIGate)
	e.DELETE("/api/images/:filename", a.handleImageDelete, a.adminAPIGate)

	// Admin dashboard. The page gate lets /admin/login through and
	// redirects everything else without a valid token.
	admin := e.Group("/admin", a.adminPageGate)
	admin.GET("/login", a.handleAdminLoginPage)
	admin.POST("/login", a.handleAdminLoginForm)
	admin.GET("", a.handleAdminDashboard)
	admin.POST("/logout", a.handleLogout)
	admin.POST("/post/:id/delete", a.handleAdminDeletePost)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("atelier: required environment variable %s is not set", key)
	}
	return v
}
