package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinic-api/internal/model"
	"github.com/clinicdesk/clinic-api/internal/repository"
	apperrors "github.com/clinicdesk/clinic-api/pkg/errors"
)

const dobLayout = "2006-01-02"

type Service struct {
	patients repository.PatientRepository
}

func NewService(patients repository.PatientRepository) *Service {
	return &Service{patients: patients}
}

func (s *Service) Register(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	dob, err := time.Parse(dobLayout, req.DOB)
	if err != nil {
		return nil, apperrors.InvalidInput(apperrors.ReasonInvalidDateTime,
			"invalid date of birth", err)
	}

	patient := &model.Patient{
		Name:           req.Name,
		DOB:            dob,
		Contact:        req.Contact,
		MedicalHistory: req.MedicalHistory,
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to register patient: %w", err)
	}
	return patient, nil
}

// GetDetail returns the record plus its full appointment history,
// newest first.
func (s *Service) GetDetail(ctx context.Context, id uuid.UUID) (*model.PatientDetail, error) {
	patient, err := s.patients.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	history, err := s.patients.ListAppointments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment history: %w", err)
	}

	return &model.PatientDetail{Patient: patient, Appointments: history}, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

// UpdateMedicalHistory overwrites the history field. No versioning.
func (s *Service) UpdateMedicalHistory(ctx context.Context, id uuid.UUID, history string) (*model.Patient, error) {
	if err := s.patients.UpdateMedicalHistory(ctx, id, history); err != nil {
		return nil, err
	}
	return s.patients.Get(ctx, id)
}
