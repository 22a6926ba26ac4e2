package doctor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinic-api/internal/model"
	"github.com/clinicdesk/clinic-api/internal/repository"
	apperrors "github.com/clinicdesk/clinic-api/pkg/errors"
)

type Service struct {
	doctors repository.DoctorRepository
}

func NewService(doctors repository.DoctorRepository) *Service {
	return &Service{doctors: doctors}
}

// Register validates the availability window (strict start < end) and
// inserts the doctor. No uniqueness or overlap checks against existing
// doctors.
func (s *Service) Register(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	start, err := model.ParseTimeOfDay(req.AvailStartTime)
	if err != nil {
		return nil, apperrors.InvalidInput(apperrors.ReasonInvalidDateTime,
			"invalid availability start time", err)
	}
	end, err := model.ParseTimeOfDay(req.AvailEndTime)
	if err != nil {
		return nil, apperrors.InvalidInput(apperrors.ReasonInvalidDateTime,
			"invalid availability end time", err)
	}

	if !start.Before(end) {
		return nil, apperrors.BusinessRule(apperrors.ReasonInvalidAvailabilityWindow,
			"available start time must be before end time")
	}

	doctor := &model.Doctor{
		Name:           req.Name,
		Specialization: req.Specialization,
		AvailStartTime: start,
		AvailEndTime:   end,
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to register doctor: %w", err)
	}
	return doctor, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	return s.doctors.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.doctors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}
