package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles reconocidos por el sistema.
const (
	RolUser  = "user"
	RolAdmin = "admin"
)

// Credencial is the authentication record (email + password hash).
// The email is synthetic — derived deterministically from the profile's
// nombre — and exists only to satisfy the credential store.
type Credencial struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Credencial) TableName() string { return "credenciales" }

// Usuario is the user profile. Shares its ID with the matching
// Credencial row; Nombre doubles as the login handle.
type Usuario struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Rol       string    `gorm:"type:varchar(20);not null;default:'user'"`
	Ciudad    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Usuario) TableName() string { return "user_profiles" }
