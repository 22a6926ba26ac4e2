package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinic-api/internal/model"
	"github.com/clinicdesk/clinic-api/internal/repository"
)

// Service reads and updates derived bills. It never creates them; only
// the appointment status transition does.
type Service struct {
	bills repository.BillRepository
}

func NewService(bills repository.BillRepository) *Service {
	return &Service{bills: bills}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Bill, error) {
	return s.bills.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.BillRow, error) {
	rows, err := s.bills.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return rows, nil
}

// SetStatus overwrites the bill status. No side effects.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status model.BillStatus) (*model.Bill, error) {
	if err := s.bills.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.bills.Get(ctx, id)
}
