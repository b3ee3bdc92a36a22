package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func callWithRole(t *testing.T, mw echo.MiddlewareFunc, role interface{}) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, h(c))
	return rec
}

func TestRequireRole(t *testing.T) {
	mw := RequireRole("MANAGER")

	rec := callWithRole(t, mw, "MANAGER")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = callWithRole(t, mw, "DRIVER")
	require.Equal(t, http.StatusForbidden, rec.Code)

	// No role claim in context at all.
	rec = callWithRole(t, mw, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Non-string junk in the context is rejected too.
	rec = callWithRole(t, mw, 42)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleMultiple(t *testing.T) {
	mw := RequireRole("MANAGER", "DRIVER")
	require.Equal(t, http.StatusOK, callWithRole(t, mw, "DRIVER").Code)
	require.Equal(t, http.StatusForbidden, callWithRole(t, mw, "INTERN").Code)
}
