package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Nickname     string
	Role         string
	Tags         []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
