package model

import "time"

type Organization struct {
	UUID        string    `db:"uuid" json:"uuid"`
	OwnerUUID   string    `db:"owner_uuid" json:"owner_uuid"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Website     string    `db:"website" json:"website"`
	City        string    `db:"city" json:"city"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
