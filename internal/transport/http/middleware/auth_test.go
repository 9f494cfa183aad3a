package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ErlanBelekov/timesheet/internal/auth"
	"github.com/ErlanBelekov/timesheet/internal/domain"
	"github.com/ErlanBelekov/timesheet/internal/metrics"
	"github.com/ErlanBelekov/timesheet/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const testKey = "middleware-test-secret-32-chars!!"

func init() {
	gin.SetMode(gin.TestMode)
}

// ---- fakes ----

type fakeSessions struct {
	calls    int
	findByID func(ctx context.Context, id string) (*domain.Session, error)
}

func (f *fakeSessions) FindByID(ctx context.Context, id string) (*domain.Session, error) {
	f.calls++
	return f.findByID(ctx, id)
}

type fakeUsers struct {
	calls               int
	inserted            []string
	findByEmail         func(ctx context.Context, email string) (*domain.User, error)
	findOrCreateByEmail func(ctx context.Context, email string) (*domain.User, bool, error)
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.calls++
	return f.findByEmail(ctx, email)
}

func (f *fakeUsers) FindOrCreateByEmail(ctx context.Context, email string) (*domain.User, bool, error) {
	f.calls++
	return f.findOrCreateByEmail(ctx, email)
}

func (f *fakeUsers) FindOrCreateByMobile(context.Context, string) (*domain.User, bool, error) {
	f.calls++
	return nil, false, errors.New("not used")
}

// ---- helpers ----

type downstream struct {
	called bool
	email  string
	sid    string
	ctxID  *auth.Identity
}

// newEngine protects GET /protected with Auth. The handler records what the
// middleware bound so tests can assert on it.
func newEngine(t *testing.T, variant auth.Variant, sessions *fakeSessions, users *fakeUsers) (*gin.Engine, *downstream) {
	t.Helper()
	deps := auth.Deps{Verifier: auth.NewHMACVerifier([]byte(testKey)), Users: users}
	if sessions != nil {
		deps.Sessions = sessions
	}
	authn, err := auth.New(variant, deps)
	if err != nil {
		t.Fatalf("auth.New: %v", err)
	}

	d := &downstream{}
	r := gin.New()
	r.GET("/protected", middleware.Auth(authn, slog.New(slog.DiscardHandler)), func(c *gin.Context) {
		d.called = true
		d.email = c.GetString(middleware.KeyUserEmail)
		d.sid = c.GetString(middleware.KeySessionID)
		d.ctxID, _ = auth.IdentityFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return r, d
}

func makeJWT(t *testing.T, key []byte, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	return s
}

func sessionToken(t *testing.T, email, sid string, exp time.Duration) string {
	return makeJWT(t, []byte(testKey), jwt.MapClaims{
		"email": email,
		"sid":   sid,
		"exp":   time.Now().Add(exp).Unix(),
	})
}

func do(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func assertError(t *testing.T, w *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	if w.Code != status {
		t.Errorf("status = %d, want %d", w.Code, status)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	if body["error"] != msg {
		t.Errorf("error = %q, want %q", body["error"], msg)
	}
}

func knownSession(token string) func(context.Context, string) (*domain.Session, error) {
	return func(_ context.Context, id string) (*domain.Session, error) {
		return &domain.Session{ID: id, UserEmail: "test@example.com", Token: token, ExpiresAt: time.Now().Add(time.Hour)}, nil
	}
}

func knownUser(_ context.Context, email string) (*domain.User, error) {
	return &domain.User{ID: "user-1", Email: email}, nil
}

// ---- bearer_session ----

func TestAuth_MissingHeader_Returns401(t *testing.T) {
	sessions, users := &fakeSessions{}, &fakeUsers{}
	r, d := newEngine(t, auth.VariantBearerSession, sessions, users)

	w := do(r, nil)

	assertError(t, w, http.StatusUnauthorized, "Authorization header required")
	if d.called {
		t.Error("downstream handler ran")
	}
	if sessions.calls+users.calls != 0 {
		t.Errorf("store calls = %d, want 0", sessions.calls+users.calls)
	}
}

func TestAuth_BearerWithoutToken_Returns401(t *testing.T) {
	r, _ := newEngine(t, auth.VariantBearerSession, &fakeSessions{}, &fakeUsers{})

	w := do(r, map[string]string{"Authorization": "Bearer"})

	assertError(t, w, http.StatusUnauthorized, "Invalid authorization format")
}

func TestAuth_WrongSignature_Returns401NoStoreCalls(t *testing.T) {
	sessions, users := &fakeSessions{}, &fakeUsers{}
	r, d := newEngine(t, auth.VariantBearerSession, sessions, users)
	token := makeJWT(t, []byte("wrong-secret-also-at-least-32-chars"), jwt.MapClaims{
		"email": "test@example.com",
		"sid":   "sess-1",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	w := do(r, map[string]string{"Authorization": "Bearer " + token})

	assertError(t, w, http.StatusUnauthorized, "Invalid token")
	if d.called || sessions.calls+users.calls != 0 {
		t.Errorf("downstream = %v, store calls = %d", d.called, sessions.calls+users.calls)
	}
}

func TestAuth_ExpiredToken_Returns401(t *testing.T) {
	before := testutil.ToFloat64(metrics.AuthRequestsTotal.WithLabelValues("bearer_session", "token_expired"))
	r, _ := newEngine(t, auth.VariantBearerSession, &fakeSessions{}, &fakeUsers{})

	w := do(r, map[string]string{"Authorization": "Bearer " + sessionToken(t, "test@example.com", "sess-1", -time.Hour)})

	assertError(t, w, http.StatusUnauthorized, "Token expired")
	after := testutil.ToFloat64(metrics.AuthRequestsTotal.WithLabelValues("bearer_session", "token_expired"))
	if after-before != 1 {
		t.Errorf("token_expired counter moved by %v, want 1", after-before)
	}
}

func TestAuth_TokenEmailWithoutTLD_Returns400(t *testing.T) {
	r, _ := newEngine(t, auth.VariantBearerSession, &fakeSessions{}, &fakeUsers{})

	w := do(r, map[string]string{"Authorization": "Bearer " + sessionToken(t, "test@domain", "sess-1", time.Hour)})

	assertError(t, w, http.StatusBadRequest, "Invalid email format in token")
}

func TestAuth_SessionMissing_Returns401(t *testing.T) {
	sessions := &fakeSessions{findByID: func(context.Context, string) (*domain.Session, error) {
		return nil, domain.ErrSessionNotFound
	}}
	users := &fakeUsers{findByEmail: knownUser}
	r, d := newEngine(t, auth.VariantBearerSession, sessions, users)

	w := do(r, map[string]string{"Authorization": "Bearer " + sessionToken(t, "test@example.com", "sess-1", time.Hour)})

	assertError(t, w, http.StatusUnauthorized, "Session expired or invalid")
	if d.called {
		t.Error("downstream handler ran")
	}
}

func TestAuth_UserLookupFails_Returns500(t *testing.T) {
	token := sessionToken(t, "test@example.com", "sess-1", time.Hour)
	sessions := &fakeSessions{findByID: knownSession(token)}
	users := &fakeUsers{findByEmail: func(context.Context, string) (*domain.User, error) {
		return nil, errors.New("pq: connection reset by peer")
	}}
	r, _ := newEngine(t, auth.VariantBearerSession, sessions, users)

	w := do(r, map[string]string{"Authorization": "Bearer " + token})

	assertError(t, w, http.StatusInternalServerError, "Internal server error")
}

func TestAuth_UserNotFound_Returns401(t *testing.T) {
	token := sessionToken(t, "test@example.com", "sess-1", time.Hour)
	sessions := &fakeSessions{findByID: knownSession(token)}
	users := &fakeUsers{findByEmail: func(context.Context, string) (*domain.User, error) {
		return nil, domain.ErrUserNotFound
	}}
	r, _ := newEngine(t, auth.VariantBearerSession, sessions, users)

	w := do(r, map[string]string{"Authorization": "Bearer " + token})

	assertError(t, w, http.StatusUnauthorized, "User not found")
}

func TestAuth_ValidToken_BindsIdentity(t *testing.T) {
	token := sessionToken(t, "test@example.com", "sess-1", time.Hour)
	r, d := newEngine(t, auth.VariantBearerSession,
		&fakeSessions{findByID: knownSession(token)},
		&fakeUsers{findByEmail: knownUser},
	)

	for i := 0; i < 2; i++ {
		w := do(r, map[string]string{"Authorization": "Bearer " + token})
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, w.Code)
		}
	}
	if d.email != "test@example.com" {
		t.Errorf("userEmail = %q, want test@example.com", d.email)
	}
	if d.sid != "sess-1" {
		t.Errorf("sessionID = %q, want sess-1", d.sid)
	}
	if d.ctxID == nil || d.ctxID.UserID != "user-1" {
		t.Errorf("context identity = %+v, want user-1", d.ctxID)
	}
}

// ---- header_email ----

func TestAuth_HeaderEmail_ProvisionsUser(t *testing.T) {
	users := &fakeUsers{}
	users.findOrCreateByEmail = func(_ context.Context, email string) (*domain.User, bool, error) {
		users.inserted = append(users.inserted, email)
		return &domain.User{ID: "user-new", Email: email}, true, nil
	}
	r, d := newEngine(t, auth.VariantHeaderEmail, nil, users)

	w := do(r, map[string]string{"x-user-email": "newuser@example.com"})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(users.inserted) != 1 || users.inserted[0] != "newuser@example.com" {
		t.Errorf("inserted = %v, want [newuser@example.com]", users.inserted)
	}
	if d.email != "newuser@example.com" {
		t.Errorf("userEmail = %q, want newuser@example.com", d.email)
	}
}

func TestAuth_HeaderEmail_NoTLD_Returns400(t *testing.T) {
	users := &fakeUsers{}
	r, d := newEngine(t, auth.VariantHeaderEmail, nil, users)

	w := do(r, map[string]string{"x-user-email": "test@domain"})

	assertError(t, w, http.StatusBadRequest, "Invalid email format")
	if d.called || users.calls != 0 {
		t.Errorf("downstream = %v, store calls = %d", d.called, users.calls)
	}
}

func TestAuth_HeaderEmail_Missing_Returns401(t *testing.T) {
	r, _ := newEngine(t, auth.VariantHeaderEmail, nil, &fakeUsers{})

	w := do(r, nil)

	assertError(t, w, http.StatusUnauthorized, "User email header required")
}
