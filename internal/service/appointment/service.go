package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinic-api/internal/model"
	"github.com/clinicdesk/clinic-api/internal/repository"
	apperrors "github.com/clinicdesk/clinic-api/pkg/errors"
	"github.com/clinicdesk/clinic-api/pkg/metrics"
)

// Accepted request formats for the combined date+time value.
var datetimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

type Service struct {
	appointments repository.AppointmentRepository
	doctors      repository.DoctorRepository
	bills        repository.BillRepository
	metrics      *metrics.Metrics
}

func NewService(appointments repository.AppointmentRepository, doctors repository.DoctorRepository,
	bills repository.BillRepository, m *metrics.Metrics) *Service {
	return &Service{
		appointments: appointments,
		doctors:      doctors,
		bills:        bills,
		metrics:      m,
	}
}

// Book validates and inserts a new Scheduled appointment. Every
// rejection leaves the store untouched and carries a distinct reason:
// invalid_datetime, doctor_not_found, outside_availability or
// slot_conflict.
func (s *Service) Book(ctx context.Context, req *model.BookAppointmentRequest) (*model.Appointment, error) {
	when, err := parseDateTime(req.ApptDatetime)
	if err != nil {
		s.metrics.RecordBooking("invalid_datetime")
		return nil, apperrors.InvalidInput(apperrors.ReasonInvalidDateTime,
			"invalid date/time format", err)
	}

	doctor, err := s.doctors.Get(ctx, req.DoctorID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.metrics.RecordBooking("doctor_not_found")
			return nil, &apperrors.AppError{
				Code:    apperrors.CodeNotFound,
				Reason:  apperrors.ReasonDoctorNotFound,
				Message: "doctor not found",
				Err:     err,
			}
		}
		return nil, fmt.Errorf("failed to look up doctor: %w", err)
	}

	// Inclusive on both ends, second precision.
	requested := model.TimeOfDayFrom(when)
	if requested.Before(doctor.AvailStartTime) || requested.After(doctor.AvailEndTime) {
		s.metrics.RecordBooking("outside_availability")
		return nil, apperrors.BusinessRule(apperrors.ReasonOutsideAvailability,
			fmt.Sprintf("doctor available from %s to %s", doctor.AvailStartTime, doctor.AvailEndTime))
	}

	// Exact-timestamp equality only; appointments a minute apart never
	// conflict. Not serialized against concurrent bookings.
	taken, err := s.appointments.ExistsScheduledAt(ctx, req.DoctorID, when)
	if err != nil {
		return nil, fmt.Errorf("failed to check slot: %w", err)
	}
	if taken {
		s.metrics.RecordBooking("slot_conflict")
		return nil, apperrors.BusinessRule(apperrors.ReasonSlotConflict,
			"doctor already has an appointment at this time")
	}

	appt := &model.Appointment{
		PatientID:    req.PatientID,
		DoctorID:     req.DoctorID,
		ApptDatetime: when,
		Status:       model.AppointmentStatusScheduled,
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.metrics.RecordBooking("booked")
	return appt, nil
}

// SetStatus overwrites the status unconditionally (no transition graph)
// and derives a bill whenever the update moves the appointment from a
// non-Completed status into Completed. The derivation keys purely on
// the old/new values of this update, so transitioning away and back
// produces a second bill.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) (*model.StatusChange, error) {
	old, err := s.appointments.SetStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordStatusTransition(string(status))

	appt, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload appointment: %w", err)
	}

	change := &model.StatusChange{
		Appointment: appt,
		OldStatus:   old,
	}

	if status == model.AppointmentStatusCompleted && old != model.AppointmentStatusCompleted {
		bill := &model.Bill{
			AppointmentID: id,
			Amount:        model.DefaultConsultationFee,
			Status:        model.BillStatusPending,
		}
		if err := s.bills.Create(ctx, bill); err != nil {
			// Status update already committed; report without reverting.
			return nil, fmt.Errorf("status updated but failed to issue bill: %w", err)
		}
		s.metrics.RecordBillIssued()
		change.IssuedBill = bill
	}

	return change, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.appointments.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.AppointmentRow, error) {
	rows, err := s.appointments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return rows, nil
}

// ListUpcoming returns Scheduled appointments from now on, soonest first.
func (s *Service) ListUpcoming(ctx context.Context) ([]*model.AppointmentRow, error) {
	rows, err := s.appointments.ListUpcoming(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming appointments: %w", err)
	}
	return rows, nil
}

func parseDateTime(s string) (time.Time, error) {
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", s)
}
