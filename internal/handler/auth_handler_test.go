package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Pili-73/Libreria-Pier/internal/dto"
	"github.com/Pili-73/Libreria-Pier/internal/model"
	"github.com/Pili-73/Libreria-Pier/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthService is a canned-response AuthService for handler tests.
type stubAuthService struct {
	loginResp  *dto.LoginResponse
	loginErr   error
	signupResp *dto.UsuarioResponse
	signupErr  error
}

func (s *stubAuthService) SignIn(_ context.Context, _ dto.LoginRequest) (*dto.LoginResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubAuthService) SignUp(_ context.Context, _ dto.RegistroRequest) (*dto.UsuarioResponse, error) {
	return s.signupResp, s.signupErr
}

func (s *stubAuthService) SignOut(_ context.Context, _ string) error { return nil }

func (s *stubAuthService) CurrentUser(_ context.Context, _ string) (*dto.UsuarioResponse, error) {
	return s.signupResp, s.signupErr
}

var _ service.AuthService = (*stubAuthService)(nil)

func newAuthRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(svc)
	r := gin.New()
	r.POST("/v1/auth/login", h.Login)
	r.POST("/v1/auth/register", h.Registro)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_Exitoso(t *testing.T) {
	svc := &stubAuthService{loginResp: &dto.LoginResponse{
		AccessToken: "tok",
		TokenType:   "bearer",
		ExpiresIn:   28800,
		User:        dto.UsuarioResponse{Nombre: "maria", Rol: model.RolUser},
	}}
	r := newAuthRouter(svc)

	w := postJSON(t, r, "/v1/auth/login", dto.LoginRequest{Nombre: "maria", Password: "secreta123"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tok", resp.AccessToken)
	assert.Equal(t, "maria", resp.User.Nombre)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	r := newAuthRouter(&stubAuthService{loginErr: service.ErrCredencialesInvalidas})

	w := postJSON(t, r, "/v1/auth/login", dto.LoginRequest{Nombre: "maria", Password: "incorrecta"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "auth_error")
	assert.Contains(t, w.Body.String(), "Usuario o contraseña incorrectos")
}

func TestLogin_BodyIncompleto(t *testing.T) {
	r := newAuthRouter(&stubAuthService{})
	w := postJSON(t, r, "/v1/auth/login", gin.H{"nombre": "maria"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
}

func TestRegistro_Exitoso(t *testing.T) {
	svc := &stubAuthService{signupResp: &dto.UsuarioResponse{
		Nombre: "maria", Rol: model.RolUser, Ciudad: "Sevilla",
	}}
	r := newAuthRouter(svc)

	w := postJSON(t, r, "/v1/auth/register", dto.RegistroRequest{
		Nombre: "maria", Password: "secreta123", Ciudad: "Sevilla",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "maria")
}

func TestRegistro_NombreEnUso(t *testing.T) {
	r := newAuthRouter(&stubAuthService{signupErr: service.ErrNombreEnUso})

	w := postJSON(t, r, "/v1/auth/register", dto.RegistroRequest{
		Nombre: "maria", Password: "secreta123", Ciudad: "Sevilla",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
}
