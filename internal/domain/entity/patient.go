package entity

import "time"

// Patient paciente de la clínica; una orden puede referenciarlo.
type Patient struct {
	ID         string
	FullName   string
	Phone      string
	Email      string
	DocumentID string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
