package userhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paintingauction/internal/apperrors"
	"paintingauction/internal/auth"
	"paintingauction/internal/http/middleware"
	"paintingauction/internal/services/user"
)

var admin = auth.Identity{UserID: uuid.MustParse("0b8d2c52-7a43-4bde-9d0f-5a3d4cdb9f11"), Role: auth.RoleAdmin}

type fixedVerifier struct{ id auth.Identity }

func (v fixedVerifier) Verify(string) (auth.Identity, error) { return v.id, nil }

type fakeUserService struct {
	user.IUserService

	gotRegister user.RegisterInput
	gotIdentity auth.Identity
	gotUserID   uuid.UUID
	gotRole     string
	err         error
}

func (f *fakeUserService) Register(_ context.Context, in user.RegisterInput) (*user.AuthResponse, error) {
	f.gotRegister = in
	if f.err != nil {
		return nil, f.err
	}
	return &user.AuthResponse{Token: "tok", Email: in.Email, Role: auth.RoleBidder}, nil
}

func (f *fakeUserService) Login(_ context.Context, email, password string) (*user.AuthResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &user.AuthResponse{Token: "tok", Email: email}, nil
}

func (f *fakeUserService) Me(_ context.Context, id auth.Identity) (*user.UserDTO, error) {
	f.gotIdentity = id
	return &user.UserDTO{ID: id.UserID, Role: id.Role}, f.err
}

func (f *fakeUserService) ListUsers(context.Context) ([]user.UserDTO, error) {
	return []user.UserDTO{{ID: admin.UserID, Role: auth.RoleAdmin}}, f.err
}

func (f *fakeUserService) SetRole(_ context.Context, actor auth.Identity, userID uuid.UUID, role string) error {
	f.gotIdentity, f.gotUserID, f.gotRole = actor, userID, role
	return f.err
}

func newRouter(svc user.IUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := r.Group("", middleware.Authenticate(fixedVerifier{admin}))
	New(svc).Register(r, authed, authed)
	return r
}

func do(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	svc := &fakeUserService{}
	r := newRouter(svc)

	w := do(r, http.MethodPost, "/auth/register", `{"email":"ada@example.com","password":"secret123","name":"Ada"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "ada@example.com", svc.gotRegister.Email)
	assert.Empty(t, svc.gotRegister.Role)

	var resp user.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tok", resp.Token)

	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"bad email", `{"email":"nope","password":"secret123","name":"Ada"}`, nil, http.StatusBadRequest},
		{"short password", `{"email":"ada@example.com","password":"123","name":"Ada"}`, nil, http.StatusBadRequest},
		{"admin role", `{"email":"ada@example.com","password":"secret123","name":"Ada","role":"Admin"}`, apperrors.Forbidden("the Admin role cannot be self-assigned"), http.StatusForbidden},
		{"duplicate", `{"email":"ada@example.com","password":"secret123","name":"Ada"}`, apperrors.Conflict("email already in use"), http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc.err = tt.err
			w := do(r, http.MethodPost, "/auth/register", tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	svc := &fakeUserService{}
	r := newRouter(svc)

	w := do(r, http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"secret123"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	svc.err = apperrors.Unauthenticated("invalid credentials")
	w = do(r, http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid credentials"}`, w.Body.String())
}

func TestMe(t *testing.T) {
	svc := &fakeUserService{}
	r := newRouter(svc)

	w := do(r, http.MethodGet, "/auth/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, admin, svc.gotIdentity)
}

func TestSetRole(t *testing.T) {
	svc := &fakeUserService{}
	r := newRouter(svc)
	target := uuid.New()

	w := do(r, http.MethodPut, "/admin/users/"+target.String()+"/role", `{"role":"Admin"}`)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, target, svc.gotUserID)
	assert.Equal(t, "Admin", svc.gotRole)
	assert.Equal(t, admin, svc.gotIdentity)

	w = do(r, http.MethodPut, "/admin/users/not-a-uuid/role", `{"role":"Admin"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.err = apperrors.Conflict("cannot demote the only admin, create another admin first")
	w = do(r, http.MethodPut, "/admin/users/"+admin.UserID.String()+"/role", `{"role":"Bidder"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	svc.err = nil
	w = do(r, http.MethodGet, "/admin/users", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
