package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinic-api/internal/model"
	apperrors "github.com/clinicdesk/clinic-api/pkg/errors"
)

func (r *billRepository) Create(ctx context.Context, bill *model.Bill) error {
	query := `
		INSERT INTO billing (
			id, appointment_id, amount, status, issued_date
		) VALUES ($1, $2, $3, $4, $5)
	`
	bill.ID = uuid.New()
	if bill.IssuedDate.IsZero() {
		bill.IssuedDate = todayDate()
	}

	_, err := r.db.ExecContext(ctx, query,
		bill.ID,
		bill.AppointmentID,
		bill.Amount,
		bill.Status,
		bill.IssuedDate,
	)
	if err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return nil
}

// todayDate is midnight of the current calendar date in the server's
// zone, matching the column's CURRENT_DATE default. Truncating against
// the epoch would shift the date near midnight outside UTC.
func todayDate() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func (r *billRepository) Get(ctx context.Context, id uuid.UUID) (*model.Bill, error) {
	query := `
		SELECT id, appointment_id, amount, status, issued_date
		FROM billing
		WHERE id = $1
	`
	var bill model.Bill
	if err := r.db.GetContext(ctx, &bill, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("bill", err)
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return &bill, nil
}

func (r *billRepository) List(ctx context.Context) ([]*model.BillRow, error) {
	query := `
		SELECT b.id, b.amount, b.status, b.issued_date,
			   p.name AS patient_name, d.name AS doctor_name, a.appt_datetime
		FROM billing b
		JOIN appointments a ON b.appointment_id = a.id
		JOIN patients p ON a.patient_id = p.id
		JOIN doctors d ON a.doctor_id = d.id
		ORDER BY b.issued_date DESC
	`
	var rows []*model.BillRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return rows, nil
}

func (r *billRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.BillStatus) error {
	query := `
		UPDATE billing
		SET status = $1
		WHERE id = $2
	`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update bill status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("bill", nil)
	}
	return nil
}
