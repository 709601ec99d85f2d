package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret, userID, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

// echoIdentity exposes the published claims for assertions.
func echoIdentity(c *gin.Context) {
	uid, _ := c.Get("userID")
	role, _ := c.Get("role")
	u, _ := uid.(string)
	r, _ := role.(string)
	c.JSON(http.StatusOK, gin.H{"userID": u, "role": r})
}

func newAuthRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append(mw, echoIdentity)
	r.GET("/whoami", handlers...)
	return r
}

func Test_bearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"Bearer   spaced  ", "spaced"},
		{"Basic dXNlcjpwYXNz", ""},
		{"bearer lowercase", ""},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/", nil)
		if tc.header != "" {
			c.Request.Header.Set("Authorization", tc.header)
		}
		if got := bearerToken(c); got != tc.want {
			t.Fatalf("header %q: got %q want %q", tc.header, got, tc.want)
		}
	}
}

func TestAuth_ValidTokenPublishesClaims(t *testing.T) {
	r := newAuthRouter(Auth(testSecret))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "u1", "user", time.Hour))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token -> %d body=%s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); !containsAll(body, `"userID":"u1"`, `"role":"user"`) {
		t.Fatalf("claims not published: %s", body)
	}
}

func TestAuth_Rejections(t *testing.T) {
	r := newAuthRouter(Auth(testSecret))

	cases := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"garbage", "not-a-jwt"},
		{"wrong_secret", signToken(t, "other-secret", "u1", "user", time.Hour)},
		{"expired", signToken(t, testSecret, "u1", "user", -time.Hour)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			r.ServeHTTP(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("%s -> %d, want 401", tc.name, w.Code)
			}
		})
	}
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	r := newAuthRouter(OptionalAuth(testSecret))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("anonymous -> %d", w.Code)
	}
	if body := w.Body.String(); !containsAll(body, `"userID":""`) {
		t.Fatalf("expected empty identity, got %s", body)
	}
}

func TestOptionalAuth_InvalidTokenStillRejected(t *testing.T) {
	r := newAuthRouter(OptionalAuth(testSecret))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", "u1", "user", time.Hour))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("invalid token -> %d, want 401", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	r := newAuthRouter(Auth(testSecret), RequireAdmin())

	// admin role passes
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "admin-1", RoleAdmin, time.Hour))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin -> %d", w.Code)
	}

	// plain user is blocked
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "u1", "user", time.Hour))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-admin -> %d, want 403", w.Code)
	}
}

func TestIsAdmin(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if IsAdmin(c) {
		t.Fatalf("no role should not be admin")
	}
	c.Set("role", "user")
	if IsAdmin(c) {
		t.Fatalf("user role should not be admin")
	}
	c.Set("role", RoleAdmin)
	if !IsAdmin(c) {
		t.Fatalf("admin role should be admin")
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
