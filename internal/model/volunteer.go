package model

import "time"

type VolunteerProfile struct {
	UUID      string    `db:"uuid" json:"uuid"`
	UserUUID  string    `db:"user_uuid" json:"user_uuid"`
	FullName  string    `db:"full_name" json:"full_name"`
	Bio       string    `db:"bio" json:"bio"`
	Skills    string    `db:"skills" json:"skills"`
	City      string    `db:"city" json:"city"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
