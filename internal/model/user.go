package model

import (
	"github.com/google/uuid"
)

// User is a staff account used only for access control, independent of
// the clinical entities.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
}

// Principal is the authenticated identity restored per request.
type Principal struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token     string     `json:"token"`
	Principal *Principal `json:"principal"`
}
