package domain

import "time"

type Organization struct {
	ID        string
	Name      string
	CreatedBy string // identity id of the first admin
	CreatedAt time.Time
	UpdatedAt time.Time
}
