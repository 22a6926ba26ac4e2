package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/clinicdesk/clinic-api/internal/model"
	apperrors "github.com/clinicdesk/clinic-api/pkg/errors"
)

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, patient_id, doctor_id, appt_datetime, status
		) VALUES ($1, $2, $3, $4, $5)
	`
	appointment.ID = uuid.New()

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.ApptDatetime,
		appointment.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, patient_id, doctor_id, appt_datetime, status
		FROM appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.AppointmentRow, error) {
	query := `
		SELECT a.id, p.name AS patient_name, d.name AS doctor_name,
			   a.appt_datetime, a.status
		FROM appointments a
		JOIN patients p ON a.patient_id = p.id
		JOIN doctors d ON a.doctor_id = d.id
		ORDER BY a.appt_datetime DESC
	`
	var rows []*model.AppointmentRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return rows, nil
}

func (r *appointmentRepository) ListUpcoming(ctx context.Context, from time.Time) ([]*model.AppointmentRow, error) {
	query := `
		SELECT a.id, p.name AS patient_name, d.name AS doctor_name,
			   a.appt_datetime, a.status
		FROM appointments a
		JOIN patients p ON a.patient_id = p.id
		JOIN doctors d ON a.doctor_id = d.id
		WHERE a.status = $1 AND a.appt_datetime >= $2
		ORDER BY a.appt_datetime ASC
	`
	var rows []*model.AppointmentRow
	if err := r.db.SelectContext(ctx, &rows, query, model.AppointmentStatusScheduled, from); err != nil {
		return nil, fmt.Errorf("failed to list upcoming appointments: %w", err)
	}
	return rows, nil
}

func (r *appointmentRepository) ExistsScheduledAt(ctx context.Context, doctorID uuid.UUID, at time.Time) (bool, error) {
	// Exact-timestamp equality, not interval overlap.
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE doctor_id = $1 AND status = $2 AND appt_datetime = $3
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, doctorID, model.AppointmentStatusScheduled, at); err != nil {
		return false, fmt.Errorf("failed to check slot: %w", err)
	}
	return exists, nil
}

func (r *appointmentRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) (model.AppointmentStatus, error) {
	var old model.AppointmentStatus

	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &old,
			`SELECT status FROM appointments WHERE id = $1 FOR UPDATE`, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NotFound("appointment", err)
			}
			return fmt.Errorf("failed to read appointment status: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE appointments SET status = $1 WHERE id = $2`, status, id); err != nil {
			return fmt.Errorf("failed to update appointment status: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return old, nil
}
