package model

import "time"

const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusAccepted  = "accepted"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusWithdrawn = "withdrawn"
)

type Application struct {
	UUID            string    `db:"uuid" json:"uuid"`
	OpportunityUUID string    `db:"opportunity_uuid" json:"opportunity_uuid"`
	VolunteerUUID   string    `db:"volunteer_uuid" json:"volunteer_uuid"`
	Message         string    `db:"message" json:"message"`
	Status          string    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
