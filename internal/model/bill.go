package model

import (
	"time"

	"github.com/google/uuid"
)

type BillStatus string

const (
	BillStatusPending BillStatus = "Pending"
	BillStatusPaid    BillStatus = "Paid"
)

// DefaultConsultationFee is the flat amount of every derived bill.
const DefaultConsultationFee = 150.00

// Bill is never created by a direct user action; it is derived when an
// appointment transitions into Completed.
type Bill struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	AppointmentID uuid.UUID  `db:"appointment_id" json:"appointment_id"`
	Amount        float64    `db:"amount" json:"amount"`
	Status        BillStatus `db:"status" json:"status"`
	IssuedDate    time.Time  `db:"issued_date" json:"issued_date"`
}

// BillRow is the joined listing shape for the billing view.
type BillRow struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Amount       float64    `db:"amount" json:"amount"`
	Status       BillStatus `db:"status" json:"status"`
	IssuedDate   time.Time  `db:"issued_date" json:"issued_date"`
	PatientName  string     `db:"patient_name" json:"patient_name"`
	DoctorName   string     `db:"doctor_name" json:"doctor_name"`
	ApptDatetime time.Time  `db:"appt_datetime" json:"appt_datetime"`
}

type UpdateBillStatusRequest struct {
	Status BillStatus `json:"status" binding:"required,oneof=Pending Paid"`
}
