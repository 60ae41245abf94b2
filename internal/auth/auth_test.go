package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"edustack/internal/common"
	"edustack/internal/model"
	"edustack/internal/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "admin123" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("unexpected hash %q", hash)
	}
	if !CheckPassword(hash, "admin123") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "admin124") {
		t.Fatal("wrong password accepted")
	}
	if CheckPassword("", "anything") {
		t.Fatal("empty hash must never match")
	}

	_, err = HashPassword(strings.Repeat("é", 40))
	var vErr *common.ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "password" {
		t.Fatalf("expected password validation error, got %v", err)
	}
}

func TestCookieSigner(t *testing.T) {
	s := NewCookieSigner("secret", "edustack")
	token, err := s.Sign("sess-1", 42)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	claims, err := s.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.ID != "sess-1" || claims.Subject != "42" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if _, err := NewCookieSigner("other", "edustack").Parse(token); err == nil {
		t.Fatal("token signed with another key accepted")
	}
	if _, err := NewCookieSigner("secret", "someone-else").Parse(token); err == nil {
		t.Fatal("token from another issuer accepted")
	}
	if _, err := s.Parse(token[:len(token)-2] + "xx"); err == nil {
		t.Fatal("tampered token accepted")
	}
}

func TestMemorySessionsExpireAndSlide(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 18, 9, 0, 0, 0, time.UTC)
	s := NewMemorySessions()
	s.now = func() time.Time { return now }

	id, err := s.Create(ctx, 7, time.Hour)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	now = now.Add(50 * time.Minute)
	if uid, ok, _ := s.Lookup(ctx, id, time.Hour); !ok || uid != 7 {
		t.Fatalf("Lookup = %d, %v", uid, ok)
	}
	// the lookup above moved expiry to 10:50
	now = now.Add(50 * time.Minute)
	if _, ok, _ := s.Lookup(ctx, id, time.Hour); !ok {
		t.Fatal("session should have slid")
	}
	now = now.Add(2 * time.Hour)
	if _, ok, _ := s.Lookup(ctx, id, time.Hour); ok {
		t.Fatal("session should have expired")
	}

	id, _ = s.Create(ctx, 8, time.Hour)
	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Lookup(ctx, id, time.Hour); ok {
		t.Fatal("deleted session still resolves")
	}
}

func TestRedisSessions(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	s := NewRedisSessions(client)

	id, err := s.Create(ctx, 3, time.Minute)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if uid, ok, err := s.Lookup(ctx, id, time.Hour); err != nil || !ok || uid != 3 {
		t.Fatalf("Lookup = %d, %v, %v", uid, ok, err)
	}
	if ttl := client.TTL(ctx, sessionKeyPrefix+id).Val(); ttl < 59*time.Minute {
		t.Fatalf("ttl not extended: %s", ttl)
	}
	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, err := s.Lookup(ctx, id, time.Hour); err != nil || ok {
		t.Fatalf("Lookup after delete = %v, %v", ok, err)
	}
}

type fakeUsers struct {
	byID   map[int64]model.User
	nextID int64
	err    error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[int64]model.User{}}
}

func (f *fakeUsers) GetUser(_ context.Context, id int64) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUsers) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) CreateUser(_ context.Context, u model.User) (model.User, error) {
	f.nextID++
	u.ID = f.nextID
	f.byID[u.ID] = u
	return u, nil
}

func TestServiceRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	svc := NewService(users)

	reg := validation.Registration{
		User:     model.User{Username: "neo", Email: "neo@erp.com", FullName: "Neo", Role: "user"},
		Password: "redpill",
	}
	u, err := svc.Register(ctx, reg)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.ID == 0 || u.PasswordHash == "" || u.PasswordHash == "redpill" {
		t.Fatalf("unexpected user %+v", u)
	}

	_, err = svc.Register(ctx, reg)
	var dup *common.DuplicateError
	if !errors.As(err, &dup) || dup.Field != "username" || dup.Message != "Username already exists" {
		t.Fatalf("expected duplicate username, got %v", err)
	}

	got, err := svc.Login(ctx, validation.Credentials{Username: "neo", Password: "redpill"})
	if err != nil || got.ID != u.ID {
		t.Fatalf("Login = %+v, %v", got, err)
	}
	for _, creds := range []validation.Credentials{
		{Username: "neo", Password: "bluepill"},
		{Username: "smith", Password: "redpill"},
	} {
		if _, err := svc.Login(ctx, creds); !errors.Is(err, common.ErrInvalidCredentials) {
			t.Fatalf("Login(%s) = %v, want invalid credentials", creds.Username, err)
		}
	}

	if _, err := svc.User(ctx, 99); !errors.Is(err, common.ErrUserNotFound) {
		t.Fatalf("User(99) = %v", err)
	}
}

func TestServicePropagatesStoreFailures(t *testing.T) {
	users := newFakeUsers()
	users.err = errors.New("connection reset")
	svc := NewService(users)
	_, err := svc.Login(context.Background(), validation.Credentials{Username: "neo", Password: "x"})
	if common.HTTPStatusFromError(err) != http.StatusInternalServerError {
		t.Fatalf("store failure should be internal, got %v", err)
	}
}

func newGateRouter(gate *Gate) *gin.Engine {
	r := gin.New()
	r.Use(gate.Resolve())
	r.POST("/login/:id", func(c *gin.Context) {
		if err := gate.Begin(c, 5); err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	r.POST("/logout", func(c *gin.Context) {
		if err := gate.End(c); err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	r.GET("/private", gate.RequireSession(), func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": id})
	})
	return r
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	var last *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			last = c
		}
	}
	if last == nil {
		t.Fatalf("no %s cookie in response", name)
	}
	return last
}

func TestGateLifecycle(t *testing.T) {
	sessions := NewMemorySessions()
	gate := NewGate(sessions, NewCookieSigner("secret", "edustack"), CookieConfig{Name: "sid", TTL: time.Hour})
	r := newGateRouter(gate)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), "Not authenticated") {
		t.Fatalf("anonymous access = %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login/5", nil))
	cookie := sessionCookie(t, w, "sid")
	if !cookie.HttpOnly || cookie.SameSite != http.SameSiteLaxMode || cookie.MaxAge != 3600 {
		t.Fatalf("unexpected cookie attributes %+v", cookie)
	}

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"userId":5`) {
		t.Fatalf("authenticated access = %d %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if cleared := sessionCookie(t, w, "sid"); cleared.MaxAge >= 0 {
		t.Fatalf("logout should expire the cookie, got %+v", cleared)
	}

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("old cookie after logout = %d", w.Code)
	}
}

func TestGateRejectsTamperedCookie(t *testing.T) {
	gate := NewGate(NewMemorySessions(), NewCookieSigner("secret", "edustack"), CookieConfig{Name: "sid"})
	r := newGateRouter(gate)

	forged, err := NewCookieSigner("guessed", "edustack").Sign("whatever", 1)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: forged})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("forged cookie = %d", w.Code)
	}
	if cleared := sessionCookie(t, w, "sid"); cleared.MaxAge >= 0 {
		t.Fatalf("forged cookie should be cleared, got %+v", cleared)
	}
}
