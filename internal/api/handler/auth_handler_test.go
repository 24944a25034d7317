package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/influconnect/marketplace-api/internal/core/domain"
	"github.com/influconnect/marketplace-api/internal/core/ports"
)

type stubAuthService struct {
	register func(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error)
	login    func(ctx context.Context, email, password string) (string, *domain.User, error)
	me       func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	return s.register(ctx, in)
}
func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.login(ctx, email, password)
}
func (s *stubAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.me(ctx, userID)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegister_Created(t *testing.T) {
	svc := &stubAuthService{register: func(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
		if in.Role != domain.RoleInfluencer {
			t.Fatalf("unexpected role %q", in.Role)
		}
		return "tok", &domain.User{ID: "u1", Name: in.Name, Role: in.Role, Slug: "alice"}, nil
	}}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"hunter2hunter2","role":"influencer"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"token":"tok"`) {
		t.Fatalf("token missing from response: %s", rec.Body.String())
	}
}

func TestRegister_SchemaRejections(t *testing.T) {
	cases := map[string]string{
		"missing name":   `{"email":"a@b.co","password":"longenough","role":"client"}`,
		"bad email":      `{"name":"Alice","email":"nope","password":"longenough","role":"client"}`,
		"short password": `{"name":"Alice","email":"a@b.co","password":"short","role":"client"}`,
		"admin role":     `{"name":"Alice","email":"a@b.co","password":"longenough","role":"admin"}`,
	}

	h := NewAuthHandler(&stubAuthService{register: func(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
		t.Fatalf("service must not be reached")
		return "", nil, nil
	}})

	for name, body := range cases {
		c, _ := newTestContext(t, http.MethodPost, "/auth/register", body)
		err := h.Register(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %v", name, err)
		}
	}
}

func TestLogin_ServiceErrorPropagates(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{login: func(ctx context.Context, email, password string) (string, *domain.User, error) {
		return "", nil, domain.ErrInvalidCredentials
	}})

	c, _ := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"wrong"}`)

	err := h.Login(c)
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestMe_RequiresClaims(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{me: func(ctx context.Context, userID string) (*domain.User, error) {
		return &domain.User{ID: userID}, nil
	}})

	c, _ := newTestContext(t, http.MethodGet, "/auth/me", "")
	err := h.Me(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %v", err)
	}

	c, rec := newTestContext(t, http.MethodGet, "/auth/me", "")
	c.Set("user_id", "u1")
	c.Set("role", domain.RoleClient)
	if err := h.Me(c); err != nil {
		t.Fatalf("me: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
