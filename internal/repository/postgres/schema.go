package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Bootstrap schema. Re-running InitSchema drops everything, so callers
// must check SchemaExists first unless a destructive re-init is wanted.
// Bill derivation happens in the appointment service, not a DB trigger,
// so the duplicate-bill behavior stays visible at the application layer.
var schemaStatements = []string{
	`DROP TABLE IF EXISTS billing`,
	`DROP TABLE IF EXISTS appointments`,
	`DROP TABLE IF EXISTS patients`,
	`DROP TABLE IF EXISTS doctors`,
	`DROP TABLE IF EXISTS users`,

	`CREATE TABLE doctors (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		specialization TEXT NOT NULL,
		avail_start_time TIME NOT NULL,
		avail_end_time TIME NOT NULL
	)`,

	`CREATE TABLE users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	)`,

	`CREATE TABLE patients (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		dob DATE NOT NULL,
		contact TEXT NOT NULL,
		medical_history TEXT
	)`,

	`CREATE TABLE appointments (
		id UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES patients (id),
		doctor_id UUID NOT NULL REFERENCES doctors (id),
		appt_datetime TIMESTAMP NOT NULL,
		status TEXT NOT NULL DEFAULT 'Scheduled'
	)`,

	`CREATE TABLE billing (
		id UUID PRIMARY KEY,
		appointment_id UUID NOT NULL REFERENCES appointments (id),
		amount NUMERIC(10,2) NOT NULL,
		status TEXT NOT NULL DEFAULT 'Pending',
		issued_date DATE NOT NULL DEFAULT CURRENT_DATE
	)`,
}

type seedDoctor struct {
	name, specialization, start, end string
}

type seedPatient struct {
	name, dob, contact, history string
}

var seedDoctors = []seedDoctor{
	{"Dr. Alice Smith", "Cardiologist", "09:00:00", "17:00:00"},
	{"Dr. Bob Johnson", "Pediatrician", "10:00:00", "18:00:00"},
}

var seedPatients = []seedPatient{
	{"John Doe", "1990-05-15", "555-1234", "Allergy to penicillin."},
	{"Jane Roe", "1985-11-20", "555-5678", "History of asthma."},
}

// SchemaExists reports whether the store has already been initialized.
func SchemaExists(ctx context.Context, db *sqlx.DB) (bool, error) {
	var exists bool
	err := db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = 'appointments'
		)
	`)
	if err != nil {
		return false, fmt.Errorf("failed to check schema: %w", err)
	}
	return exists, nil
}

// InitSchema drops and recreates all tables. Destructive.
func InitSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}

// Seed inserts the fixed reference rows.
func Seed(ctx context.Context, db *sqlx.DB) error {
	for _, d := range seedDoctors {
		_, err := db.ExecContext(ctx, `
			INSERT INTO doctors (id, name, specialization, avail_start_time, avail_end_time)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New(), d.name, d.specialization, d.start, d.end)
		if err != nil {
			return fmt.Errorf("failed to seed doctor %s: %w", d.name, err)
		}
	}

	for _, p := range seedPatients {
		_, err := db.ExecContext(ctx, `
			INSERT INTO patients (id, name, dob, contact, medical_history)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New(), p.name, p.dob, p.contact, p.history)
		if err != nil {
			return fmt.Errorf("failed to seed patient %s: %w", p.name, err)
		}
	}
	return nil
}
