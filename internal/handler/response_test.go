package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"Lee_Directory/internal/pkg"
	"Lee_Directory/internal/service"
)

func TestFailMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		want   string
	}{
		{&pkg.ValidationError{Fields: []pkg.FieldError{{Field: "name", Message: "x"}}}, http.StatusBadRequest, `"details":[{"field":"name"`},
		{fmt.Errorf("wrapped: %w", service.ErrCommunityNotFound), http.StatusNotFound, "社区不存在"},
		{service.ErrMemberNotFound, http.StatusNotFound, "成员不存在"},
		{service.ErrSlugTaken, http.StatusConflict, `"success":false`},
		{service.ErrAccessCodeRequired, http.StatusForbidden, `"requiresAccessCode":true`},
		{service.ErrAccessCodeInvalid, http.StatusForbidden, "访问码错误"},
		{service.ErrInvalidCredentials, http.StatusUnauthorized, "用户名或密码错误"},
		{service.ErrTooManyAttempts, http.StatusTooManyRequests, `"success":false`},
		{errors.New("dial tcp 10.0.0.1:3306: connection refused"), http.StatusInternalServerError, "出错了"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

		fail(c, tc.err, "出错了")
		if w.Code != tc.status || !strings.Contains(w.Body.String(), tc.want) {
			t.Fatalf("%v: %d %s", tc.err, w.Code, w.Body.String())
		}
		if strings.Contains(w.Body.String(), "10.0.0.1") {
			t.Fatalf("internal error leaked: %s", w.Body.String())
		}
	}
}

func TestBaseURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "http://example.org/x", nil)

	if got := baseURL(c, "https://dir.example.com/"); got != "https://dir.example.com" {
		t.Fatalf("configured: %q", got)
	}
	if got := baseURL(c, ""); got != "http://example.org" {
		t.Fatalf("from request: %q", got)
	}
	c.Request.Header.Set("X-Forwarded-Proto", "https")
	if got := baseURL(c, ""); got != "https://example.org" {
		t.Fatalf("forwarded: %q", got)
	}
}

func TestSafeNext(t *testing.T) {
	cases := map[string]string{
		"":                       "/admin/dashboard",
		"/admin/members?search=": "/admin/members?search=",
		"//evil.example.com":     "/admin/dashboard",
		"https://evil.example":   "/admin/dashboard",
		"/admin/login":           "/admin/dashboard",
		"/c/acme/list":           "/admin/dashboard",
	}
	for in, want := range cases {
		if got := safeNext(in); got != want {
			t.Fatalf("safeNext(%q) = %q want %q", in, got, want)
		}
	}
}
