package model

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	DOB            time.Time `db:"dob" json:"dob"`
	Contact        string    `db:"contact" json:"contact"`
	MedicalHistory string    `db:"medical_history" json:"medical_history"`
}

// PatientAppointment is one row of a patient's visit history.
type PatientAppointment struct {
	ApptDatetime time.Time         `db:"appt_datetime" json:"appt_datetime"`
	DoctorName   string            `db:"doctor_name" json:"doctor_name"`
	Status       AppointmentStatus `db:"status" json:"status"`
}

// PatientDetail combines the record with its appointment history.
type PatientDetail struct {
	Patient      *Patient              `json:"patient"`
	Appointments []*PatientAppointment `json:"appointments"`
}

type CreatePatientRequest struct {
	Name           string `json:"name" binding:"required"`
	DOB            string `json:"dob" binding:"required,datetime=2006-01-02"`
	Contact        string `json:"contact" binding:"required"`
	MedicalHistory string `json:"medical_history"`
}

type UpdateMedicalHistoryRequest struct {
	MedicalHistory string `json:"medical_history" binding:"required"`
}
