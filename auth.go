package atelier

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const adminTokenCookie = "admin_token"

// AdminClaims is the payload of the signed admin session token.
// Validation is pure: signature + expiry only, no store lookup, so a
// revoked-but-unexpired token stays valid until it expires.
type AdminClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// issueToken signs a session token for the given admin account.
func (a *App) issueToken(u AdminUser) (string, error) {
	claims := AdminClaims{
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.Config.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   fmt.Sprintf("%d", u.ID),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.Config.JWTSecret))
}

// validateToken parses and verifies a session token.
func (a *App) validateToken(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(a.Config.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// isAdmin reports whether the request carries a valid admin token.
func (a *App) isAdmin(c echo.Context) bool {
	cookie, err := c.Cookie(adminTokenCookie)
	if err != nil || cookie.Value == "" {
		return false
	}
	_, err = a.validateToken(cookie.Value)
	return err == nil
}

// setTokenCookie attaches the session token as an http-only,
// same-site-strict cookie. Secure is set outside local development.
func (a *App) setTokenCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     adminTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(a.Config.TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   a.Config.CookieSecure,
	})
}

// clearTokenCookie expires the session cookie.
func (a *App) clearTokenCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     adminTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   a.Config.CookieSecure,
	})
}

// adminPageGate protects /admin/* UI routes. Requests without a valid
// token are redirected to the login page; the login page itself is open.
func (a *App) adminPageGate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Path() == "/admin/login" || strings.HasPrefix(c.Request().URL.Path, "/admin/login") {
			return next(c)
		}
		if !a.isAdmin(c) {
			return c.Redirect(http.StatusSeeOther, "/admin/login")
		}
		return next(c)
	}
}

// adminAPIGate protects admin API routes. Unlike the page gate it returns
// structured error JSON instead of redirecting.
func (a *App) adminAPIGate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !a.isAdmin(c) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}
		return next(c)
	}
}

// handleLogin authenticates the admin over JSON. When no admin account
// exists yet, the first submitted credentials seed it; see authenticate.
func (a *App) handleLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "Too many login attempts. Try again later."})
	}

	var creds struct {
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
	}
	if err := c.Bind(&creds); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	u, err := a.authenticate(strings.TrimSpace(strings.ToLower(creds.Email)), creds.Password)
	if err != nil {
		if err == ErrInvalidCredentials {
			a.loginLimiter.Record(ip)
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		}
		return err
	}

	token, err := a.issueToken(u)
	if err != nil {
		return err
	}
	a.setTokenCookie(c, token)
	return c.JSON(http.StatusOK, map[string]string{"message": "Login successful"})
}

// handleLogout clears the session cookie. The JSON API gets a JSON
// acknowledgment; the dashboard form gets a redirect.
func (a *App) handleLogout(c echo.Context) error {
	a.clearTokenCookie(c)
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
	}
	return c.Redirect(http.StatusSeeOther, "/admin/login")
}
