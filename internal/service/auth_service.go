package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Pili-73/Libreria-Pier/internal/config"
	"github.com/Pili-73/Libreria-Pier/internal/dto"
	"github.com/Pili-73/Libreria-Pier/internal/model"
	"github.com/Pili-73/Libreria-Pier/internal/repository"
	"github.com/Pili-73/Libreria-Pier/internal/session"
	"github.com/Pili-73/Libreria-Pier/internal/worker"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService translates a nombre/password pair into a credential check
// against the synthetic email derived from nombre, and manages the
// server-side session created on success.
type AuthService interface {
	SignIn(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	SignUp(ctx context.Context, req dto.RegistroRequest) (*dto.UsuarioResponse, error)
	SignOut(ctx context.Context, sid string) error
	// CurrentUser re-validates the session against the authoritative
	// profile, re-deriving the stored copy and clearing the session when
	// the profile no longer exists.
	CurrentUser(ctx context.Context, sid string) (*dto.UsuarioResponse, error)
}

type authService struct {
	usuarios     repository.UsuarioRepository
	credenciales repository.CredencialRepository
	sesiones     session.Store
	dispatcher   *worker.Dispatcher
	cfg          *config.Config
}

func NewAuthService(
	usuarios repository.UsuarioRepository,
	credenciales repository.CredencialRepository,
	sesiones session.Store,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) AuthService {
	return &authService{
		usuarios:     usuarios,
		credenciales: credenciales,
		sesiones:     sesiones,
		dispatcher:   dispatcher,
		cfg:          cfg,
	}
}

// emailSintetico derives the internal login email from the nombre. This
// is the single resolution strategy: nombre → nombre@dominio, no
// fallback through user listings.
func (s *authService) emailSintetico(nombre string) string {
	return fmt.Sprintf("%s@%s", nombre, s.cfg.EmailDomain)
}

func (s *authService) SignIn(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	// Every resolution failure maps to the same error so login never
	// reveals whether the nombre exists.
	perfil, err := s.usuarios.FindByNombre(ctx, req.Nombre)
	if err != nil {
		return nil, ErrCredencialesInvalidas
	}

	cred, err := s.credenciales.FindByEmail(ctx, s.emailSintetico(req.Nombre))
	if err != nil {
		return nil, ErrCredencialesInvalidas
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredencialesInvalidas
	}

	sid := uuid.NewString()
	ses := session.Sesion{
		UserID: perfil.ID.String(),
		Email:  cred.Email,
		Nombre: perfil.Nombre,
		Rol:    perfil.Rol,
		Ciudad: perfil.Ciudad,
	}
	if err := s.sesiones.Set(ctx, sid, ses); err != nil {
		return nil, err
	}

	token, err := s.generateToken(perfil, sid)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		User: dto.UsuarioResponse{
			ID:     perfil.ID.String(),
			Nombre: perfil.Nombre,
			Rol:    perfil.Rol,
			Ciudad: perfil.Ciudad,
		},
	}, nil
}

func (s *authService) SignUp(ctx context.Context, req dto.RegistroRequest) (*dto.UsuarioResponse, error) {
	if _, err := s.usuarios.FindByNombre(ctx, req.Nombre); err == nil {
		return nil, ErrNombreEnUso
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}

	cred := &model.Credencial{
		Email:        s.emailSintetico(req.Nombre),
		PasswordHash: string(hash),
	}
	if err := s.credenciales.Create(ctx, cred); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNombreEnUso
		}
		return nil, err
	}

	perfil := &model.Usuario{
		ID:     cred.ID,
		Nombre: req.Nombre,
		Rol:    model.RolUser,
		Ciudad: req.Ciudad,
	}
	if err := s.usuarios.Create(ctx, perfil); err != nil {
		// The credential already exists at this point and is not rolled
		// back; the account stays half-created until fixed by hand.
		log.Warn().
			Str("nombre", req.Nombre).
			Str("credencial_id", cred.ID.String()).
			Err(err).
			Msg("perfil no creado tras crear la credencial")
		return nil, err
	}

	// Welcome email — best effort, never blocks registration.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
			ToEmail: cred.Email,
			Subject: "Bienvenido a Librería Pier",
			Body:    fmt.Sprintf("Hola %s, tu cuenta ha sido creada.", perfil.Nombre),
		})
	}

	return &dto.UsuarioResponse{
		ID:     perfil.ID.String(),
		Nombre: perfil.Nombre,
		Rol:    perfil.Rol,
		Ciudad: perfil.Ciudad,
	}, nil
}

func (s *authService) SignOut(ctx context.Context, sid string) error {
	// Tolerant of backend failure: the caller drops its token either way.
	if err := s.sesiones.Clear(ctx, sid); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar la sesión en el backend")
	}
	return nil
}

func (s *authService) CurrentUser(ctx context.Context, sid string) (*dto.UsuarioResponse, error) {
	ses, err := s.sesiones.Get(ctx, sid)
	if err != nil {
		return nil, err
	}

	uid, err := uuid.Parse(ses.UserID)
	if err != nil {
		_ = s.sesiones.Clear(ctx, sid)
		return nil, session.ErrNoSesion
	}

	perfil, err := s.usuarios.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Self-healing: the backend no longer recognizes this user.
			_ = s.sesiones.Clear(ctx, sid)
			return nil, session.ErrNoSesion
		}
		return nil, err
	}

	// Re-derive the stored copy from the authoritative profile.
	ses.Nombre = perfil.Nombre
	ses.Rol = perfil.Rol
	ses.Ciudad = perfil.Ciudad
	if err := s.sesiones.Set(ctx, sid, *ses); err != nil {
		return nil, err
	}

	return &dto.UsuarioResponse{
		ID:     perfil.ID.String(),
		Nombre: perfil.Nombre,
		Rol:    perfil.Rol,
		Ciudad: perfil.Ciudad,
	}, nil
}

func (s *authService) generateToken(u *model.Usuario, sid string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID.String(),
		"nombre":  u.Nombre,
		"rol":     u.Rol,
		"sid":     sid,
		"exp":     time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
