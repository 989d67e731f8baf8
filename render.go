package atelier

import (
	"net/http"

	"github.com/labstack/echo/v4"
	g "github.com/maragudk/gomponents"
)

// Render writes a gomponents tree as an HTTP 200 HTML response.
func Render(c echo.Context, node g.Node) error {
	return RenderStatus(c, http.StatusOK, node)
}

// RenderStatus writes a gomponents tree with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, node g.Node) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return node.Render(c.Response().Writer)
}
