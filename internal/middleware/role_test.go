package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/mzohaibq/roomstay/internal/model"
)

func TestRequireApprovedVendor(t *testing.T) {
	statuses := map[uint64]string{
		1: model.VendorApproved,
		2: model.VendorPending,
		3: model.VendorSuspended,
	}
	lookup := func(_ context.Context, id uint64) (string, error) {
		return statuses[id], nil
	}

	e := echo.New()
	e.POST("/inventory", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, JWTAuth(testSecret), RequireRole(model.RoleVendor), RequireApprovedVendor(lookup))

	cases := []struct {
		name   string
		userID uint64
		want   int
	}{
		{"approved", 1, http.StatusOK},
		{"pending", 2, http.StatusForbidden},
		{"suspended", 3, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/inventory", nil)
			req.Header.Set("Authorization", bearer(t, tc.userID, model.RoleVendor))
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
