package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinic-api/internal/model"
)

// All repository interfaces in one file
type (
	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		List(ctx context.Context) ([]*model.Doctor, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		List(ctx context.Context) ([]*model.Patient, error)
		UpdateMedicalHistory(ctx context.Context, id uuid.UUID, history string) error
		ListAppointments(ctx context.Context, patientID uuid.UUID) ([]*model.PatientAppointment, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		List(ctx context.Context) ([]*model.AppointmentRow, error)
		ListUpcoming(ctx context.Context, from time.Time) ([]*model.AppointmentRow, error)
		// ExistsScheduledAt reports whether the doctor already has a
		// Scheduled appointment at exactly the given timestamp.
		ExistsScheduledAt(ctx context.Context, doctorID uuid.UUID, at time.Time) (bool, error)
		// SetStatus overwrites the status and returns the prior value.
		SetStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) (model.AppointmentStatus, error)
	}

	BillRepository interface {
		Create(ctx context.Context, bill *model.Bill) error
		Get(ctx context.Context, id uuid.UUID) (*model.Bill, error)
		List(ctx context.Context) ([]*model.BillRow, error)
		SetStatus(ctx context.Context, id uuid.UUID, status model.BillStatus) error
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByUsername(ctx context.Context, username string) (*model.User, error)
	}
)
