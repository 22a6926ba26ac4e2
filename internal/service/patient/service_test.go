package patient

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinic-api/internal/model"
	apperrors "github.com/clinicdesk/clinic-api/pkg/errors"
)

type fakePatientRepo struct {
	patients map[uuid.UUID]*model.Patient
	history  map[uuid.UUID][]*model.PatientAppointment
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{
		patients: make(map[uuid.UUID]*model.Patient),
		history:  make(map[uuid.UUID][]*model.PatientAppointment),
	}
}

func (f *fakePatientRepo) Create(_ context.Context, p *model.Patient) error {
	p.ID = uuid.New()
	f.patients[p.ID] = p
	return nil
}

func (f *fakePatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	if p, ok := f.patients[id]; ok {
		return p, nil
	}
	return nil, apperrors.NotFound("patient", nil)
}

func (f *fakePatientRepo) List(context.Context) ([]*model.Patient, error) {
	out := make([]*model.Patient, 0, len(f.patients))
	for _, p := range f.patients {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePatientRepo) UpdateMedicalHistory(_ context.Context, id uuid.UUID, history string) error {
	p, ok := f.patients[id]
	if !ok {
		return apperrors.NotFound("patient", nil)
	}
	p.MedicalHistory = history
	return nil
}

func (f *fakePatientRepo) ListAppointments(_ context.Context, patientID uuid.UUID) ([]*model.PatientAppointment, error) {
	return f.history[patientID], nil
}

func TestRegisterPatient(t *testing.T) {
	repo := newFakePatientRepo()
	svc := NewService(repo)

	p, err := svc.Register(context.Background(), &model.CreatePatientRequest{
		Name:           "John Doe",
		DOB:            "1990-05-15",
		Contact:        "555-0101",
		MedicalHistory: "None",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC), p.DOB)
	assert.Len(t, repo.patients, 1)
}

func TestRegisterPatientInvalidDOB(t *testing.T) {
	svc := NewService(newFakePatientRepo())

	for _, dob := range []string{"15-05-1990", "1990/05/15", "not-a-date", ""} {
		_, err := svc.Register(context.Background(), &model.CreatePatientRequest{
			Name: "John Doe",
			DOB:  dob,
		})
		require.Error(t, err, "dob %q", dob)
		assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))
	}
}

func TestGetDetailIncludesHistory(t *testing.T) {
	repo := newFakePatientRepo()
	svc := NewService(repo)

	p, err := svc.Register(context.Background(), &model.CreatePatientRequest{
		Name: "Jane Roe",
		DOB:  "1985-11-20",
	})
	require.NoError(t, err)

	repo.history[p.ID] = []*model.PatientAppointment{
		{DoctorName: "Dr. Alice Smith", ApptDatetime: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), Status: model.AppointmentStatusCompleted},
	}

	detail, err := svc.GetDetail(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", detail.Patient.Name)
	require.Len(t, detail.Appointments, 1)
	assert.Equal(t, "Dr. Alice Smith", detail.Appointments[0].DoctorName)
}

func TestGetDetailUnknownPatient(t *testing.T) {
	svc := NewService(newFakePatientRepo())

	_, err := svc.GetDetail(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateMedicalHistory(t *testing.T) {
	repo := newFakePatientRepo()
	svc := NewService(repo)

	p, err := svc.Register(context.Background(), &model.CreatePatientRequest{
		Name:           "John Doe",
		DOB:            "1990-05-15",
		MedicalHistory: "None",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateMedicalHistory(context.Background(), p.ID, "Hypertension diagnosed 2024")
	require.NoError(t, err)
	assert.Equal(t, "Hypertension diagnosed 2024", updated.MedicalHistory)
}

func TestUpdateMedicalHistoryUnknownPatient(t *testing.T) {
	svc := NewService(newFakePatientRepo())

	_, err := svc.UpdateMedicalHistory(context.Background(), uuid.New(), "anything")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
