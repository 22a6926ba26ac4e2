package model

import (
	"github.com/google/uuid"
)

// Doctor is immutable once registered; only its availability window
// participates in booking validation.
type Doctor struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Specialization string    `db:"specialization" json:"specialization"`
	AvailStartTime TimeOfDay `db:"avail_start_time" json:"avail_start_time"`
	AvailEndTime   TimeOfDay `db:"avail_end_time" json:"avail_end_time"`
}

type CreateDoctorRequest struct {
	Name           string `json:"name" binding:"required"`
	Specialization string `json:"specialization" binding:"required"`
	AvailStartTime string `json:"avail_start_time" binding:"required,timeofday"`
	AvailEndTime   string `json:"avail_end_time" binding:"required,timeofday"`
}
