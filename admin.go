package atelier

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/khayata/atelier/views"
)

// handleAdminLoginPage serves the login form. An already-authenticated
// admin is sent straight to the dashboard.
func (a *App) handleAdminLoginPage(c echo.Context) error {
	if a.isAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	return Render(c, views.AdminLogin(a.site(), false, CsrfToken(c)))
}

// handleAdminLoginForm is the HTML-form counterpart of the JSON login
// endpoint: same credential flow, but it redirects on success and
// re-renders the form on failure.
func (a *App) handleAdminLoginForm(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	email := strings.TrimSpace(strings.ToLower(c.FormValue("email")))
	password := c.FormValue("password")
	u, err := a.authenticate(email, password)
	if err != nil {
		a.loginLimiter.Record(ip)
		return Render(c, views.AdminLogin(a.site(), true, CsrfToken(c)))
	}
	token, err := a.issueToken(u)
	if err != nil {
		return err
	}
	a.setTokenCookie(c, token)
	return c.Redirect(http.StatusSeeOther, "/admin")
}

// handleAdminDashboard lists every post, drafts included.
func (a *App) handleAdminDashboard(c echo.Context) error {
	posts, err := a.Store.ListPosts(true, "")
	if err != nil {
		return err
	}
	images, err := a.Store.ListImages()
	if err != nil {
		return err
	}
	imageCards := make([]views.Card, len(images))
	for i, img := range images {
		imageCards[i] = views.Card{Title: img.OriginalName, Image: "/api/images/" + img.Filename}
	}
	return Render(c, views.AdminDashboard(a.site(), postViews(posts), imageCards, popFlash(c), CsrfToken(c)))
}

// handleAdminDeletePost removes a post from the dashboard and queues a
// flash message for the redirect target.
func (a *App) handleAdminDeletePost(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := a.Store.DeletePost(id); err != nil {
		return err
	}
	a.Cache.Invalidate()
	addFlash(c, "تم حذف المقال")
	return c.Redirect(http.StatusSeeOther, "/admin")
}

// authenticate checks credentials against the stored admin account,
// seeding it from the first submitted credentials when none exists.
func (a *App) authenticate(email, password string) (AdminUser, error) {
	if email == "" || password == "" {
		return AdminUser{}, ErrInvalidCredentials
	}
	n, err := a.Store.CountAdmins()
	if err != nil {
		return AdminUser{}, err
	}
	if n == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return AdminUser{}, err
		}
		u := AdminUser{Email: email, PasswordHash: string(hash), Role: "admin"}
		if err := a.Store.InsertAdmin(&u); err != nil {
			return AdminUser{}, err
		}
	}
	u, err := a.Store.GetAdminByEmail(email)
	if err != nil {
		if err == ErrNotFound {
			return AdminUser{}, ErrInvalidCredentials
		}
		return AdminUser{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return AdminUser{}, ErrInvalidCredentials
	}
	return u, nil
}
