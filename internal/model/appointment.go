package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

type Appointment struct {
	ID           uuid.UUID         `db:"id" json:"id"`
	PatientID    uuid.UUID         `db:"patient_id" json:"patient_id"`
	DoctorID     uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	ApptDatetime time.Time         `db:"appt_datetime" json:"appt_datetime"`
	Status       AppointmentStatus `db:"status" json:"status"`
}

// AppointmentRow is the joined listing shape returned to the
// presentation layer.
type AppointmentRow struct {
	ID           uuid.UUID         `db:"id" json:"id"`
	PatientName  string            `db:"patient_name" json:"patient_name"`
	DoctorName   string            `db:"doctor_name" json:"doctor_name"`
	ApptDatetime time.Time         `db:"appt_datetime" json:"appt_datetime"`
	Status       AppointmentStatus `db:"status" json:"status"`
}

type BookAppointmentRequest struct {
	PatientID    uuid.UUID `json:"patient_id" binding:"required"`
	DoctorID     uuid.UUID `json:"doctor_id" binding:"required"`
	ApptDatetime string    `json:"appt_datetime" binding:"required"`
}

type UpdateAppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required,oneof=Scheduled Completed Cancelled"`
}

// StatusChange reports the outcome of a status update, including the
// bill issued when the update moved the appointment into Completed.
type StatusChange struct {
	Appointment *Appointment      `json:"appointment"`
	OldStatus   AppointmentStatus `json:"old_status"`
	IssuedBill  *Bill             `json:"issued_bill,omitempty"`
}
