package models

import (
	"strings"
	"time"
)

// RoleType is the role stored on a user account
type RoleType string

const (
	RoleStudent   RoleType = "estudiante"
	RoleApplicant RoleType = "aspirante"
	RoleAdmin     RoleType = "administrador"
	RoleEvaluator RoleType = "evaluador"
)

// NormalizeRole lower-cases and trims a role name
func NormalizeRole(role string) RoleType {
	return RoleType(strings.ToLower(strings.TrimSpace(role)))
}

// Valid reports whether r is a known role
func (r RoleType) Valid() bool {
	switch r {
	case RoleStudent, RoleApplicant, RoleAdmin, RoleEvaluator:
		return true
	}
	return false
}

// User defines the user model based on the 'users' table
type User struct {
	ID               int64     `json:"id" db:"id" example:"1"`
	Name             string    `json:"name" db:"name" example:"Ana Pérez"`
	Email            string    `json:"email" db:"email" example:"ana@ucr.ac.cr"`
	Password         string    `json:"-" db:"password"`
	Role             RoleType  `json:"role" db:"role" example:"estudiante"`
	TwoFactorEnabled bool      `json:"twofactor_enabled" db:"twofactor_enabled"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
