package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"catalogo/internal/domain"
	apperror "catalogo/internal/errors"
	"catalogo/internal/pkg/logger"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) FindByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.UserProfile)
	return p, args.Error(1)
}

func (m *MockUserService) FindAll(ctx context.Context) ([]domain.UserProfile, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]domain.UserProfile)
	return p, args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id string, input domain.UpdateUserProfileInput) (domain.UserProfile, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(domain.UserProfile), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func newRouter(svc *MockUserService) http.Handler {
	h := NewHandler(svc, logger.NewNopLogger())
	r := chi.NewRouter()
	r.Get("/api/users", h.ListUsersHandler)
	r.Get("/api/users/{id}", h.GetUserHandler)
	r.Patch("/api/users/{id}", h.UpdateUserHandler)
	r.Delete("/api/users/{id}", h.DeleteUserHandler)
	return r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader(body)))
	return w
}

func TestListUsersHandler(t *testing.T) {
	svc := new(MockUserService)
	svc.On("FindAll", mock.Anything).Return([]domain.UserProfile{{Account: domain.Account{ID: "u1", Email: "a@b.com"}}}, nil)

	w := do(newRouter(svc), http.MethodGet, "/api/users", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"a@b.com"`)
}

func TestGetUserHandler_Absent(t *testing.T) {
	svc := new(MockUserService)
	svc.On("FindByID", mock.Anything, "ghost").Return(nil, nil)

	w := do(newRouter(svc), http.MethodGet, "/api/users/ghost", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUserHandler_Conflict(t *testing.T) {
	svc := new(MockUserService)
	email := "outro@b.com"
	svc.On("Update", mock.Anything, "u1", domain.UpdateUserProfileInput{Email: &email}).
		Return(domain.UserProfile{}, apperror.NewConflictError("Já existe um usuário com o email outro@b.com"))

	w := do(newRouter(svc), http.MethodPatch, "/api/users/u1", `{"email":"outro@b.com"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "outro@b.com")
}

func TestUpdateUserHandler_InvalidEmailFormat(t *testing.T) {
	svc := new(MockUserService)

	w := do(newRouter(svc), http.MethodPatch, "/api/users/u1", `{"email":"nao-e-email"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteUserHandler(t *testing.T) {
	svc := new(MockUserService)
	svc.On("Delete", mock.Anything, "u1").Return(nil)

	w := do(newRouter(svc), http.MethodDelete, "/api/users/u1", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
}
