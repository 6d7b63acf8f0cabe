package model

import "time"

const (
	RoleVolunteer    = "volunteer"
	RoleOrganization = "organization"
	RoleAdmin        = "admin"
)

type User struct {
	UUID         string    `db:"uuid" json:"uuid"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
