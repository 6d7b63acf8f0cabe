package model

import "time"

const (
	OpportunityStatusOpen   = "open"
	OpportunityStatusClosed = "closed"
)

type Opportunity struct {
	UUID             string    `db:"uuid" json:"uuid"`
	OrganizationUUID string    `db:"organization_uuid" json:"organization_uuid"`
	Title            string    `db:"title" json:"title"`
	Description      string    `db:"description" json:"description"`
	Category         string    `db:"category" json:"category"`
	City             string    `db:"city" json:"city"`
	StartsAt         time.Time `db:"starts_at" json:"starts_at"`
	EndsAt           time.Time `db:"ends_at" json:"ends_at"`
	Capacity         int       `db:"capacity" json:"capacity"`
	Status           string    `db:"status" json:"status"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
