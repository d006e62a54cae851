package middleware

import (
	"net/http"
	"strings"

	"github.com/Pili-73/Libreria-Pier/internal/apierror"
	"github.com/Pili-73/Libreria-Pier/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimsKey = "claims"
	SesionKey = "sesion"
)

// JWTClaims are the custom claims embedded in every access token.
// SID points at the server-side session; a token whose session was
// cleared (sign-out, self-healing) is rejected even if still unexpired.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Nombre string `json:"nombre"`
	Rol    string `json:"rol"`
	SID    string `json:"sid"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token and its backing session on every
// protected route.
func JWTAuth(secret string, sesiones session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New(apierror.KindNoSession, "Autenticacion requerida"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New(apierror.KindAuth, "Token invalido o expirado"))
			return
		}

		ses, err := sesiones.Get(c.Request.Context(), claims.SID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New(apierror.KindNoSession, "No hay sesión activa"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(SesionKey, ses)
		c.Next()
	}
}

// RequireRole rejects requests whose session role is not in the allowed list.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		ses, ok := c.MustGet(SesionKey).(*session.Sesion)
		if !ok || !allowed[ses.Rol] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New(apierror.KindAuth, "Permisos insuficientes"))
			return
		}
		c.Next()
	}
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *JWTClaims {
	claims, _ := c.MustGet(ClaimsKey).(*JWTClaims)
	return claims
}

// GetSesion retrieves the session projection loaded by JWTAuth.
func GetSesion(c *gin.Context) *session.Sesion {
	ses, _ := c.MustGet(SesionKey).(*session.Sesion)
	return ses
}
