package appointment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinic-api/internal/model"
	"github.com/clinicdesk/clinic-api/internal/service/appointment"
	apperrors "github.com/clinicdesk/clinic-api/pkg/errors"
)

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]*model.Doctor
}

func (f *fakeDoctorRepo) Create(_ context.Context, d *model.Doctor) error {
	d.ID = uuid.New()
	f.doctors[d.ID] = d
	return nil
}

func (f *fakeDoctorRepo) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	if d, ok := f.doctors[id]; ok {
		return d, nil
	}
	return nil, apperrors.NotFound("doctor", nil)
}

func (f *fakeDoctorRepo) List(context.Context) ([]*model.Doctor, error) { return nil, nil }

type fakeAppointmentRepo struct {
	appointments []*model.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, a *model.Appointment) error {
	a.ID = uuid.New()
	stored := *a
	f.appointments = append(f.appointments, &stored)
	return nil
}

func (f *fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	for _, a := range f.appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apperrors.NotFound("appointment", nil)
}

func (f *fakeAppointmentRepo) List(context.Context) ([]*model.AppointmentRow, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) ListUpcoming(context.Context, time.Time) ([]*model.AppointmentRow, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) ExistsScheduledAt(_ context.Context, doctorID uuid.UUID, at time.Time) (bool, error) {
	for _, a := range f.appointments {
		if a.DoctorID == doctorID && a.Status == model.AppointmentStatusScheduled && a.ApptDatetime.Equal(at) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAppointmentRepo) SetStatus(_ context.Context, id uuid.UUID, status model.AppointmentStatus) (model.AppointmentStatus, error) {
	for _, a := range f.appointments {
		if a.ID == id {
			old := a.Status
			a.Status = status
			return old, nil
		}
	}
	return "", apperrors.NotFound("appointment", nil)
}

type fakeBillRepo struct {
	bills []*model.Bill
}

func (f *fakeBillRepo) Create(_ context.Context, b *model.Bill) error {
	b.ID = uuid.New()
	stored := *b
	f.bills = append(f.bills, &stored)
	return nil
}

func (f *fakeBillRepo) Get(context.Context, uuid.UUID) (*model.Bill, error) { return nil, nil }
func (f *fakeBillRepo) List(context.Context) ([]*model.BillRow, error)      { return nil, nil }
func (f *fakeBillRepo) SetStatus(context.Context, uuid.UUID, model.BillStatus) error {
	return nil
}

func setupRouter(t *testing.T) (*gin.Engine, uuid.UUID, *fakeBillRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	doctors := &fakeDoctorRepo{doctors: make(map[uuid.UUID]*model.Doctor)}
	appointments := &fakeAppointmentRepo{}
	bills := &fakeBillRepo{}

	start, err := model.ParseTimeOfDay("09:00:00")
	require.NoError(t, err)
	end, err := model.ParseTimeOfDay("17:00:00")
	require.NoError(t, err)
	doc := &model.Doctor{Name: "Dr. Alice Smith", Specialization: "Cardiologist", AvailStartTime: start, AvailEndTime: end}
	require.NoError(t, doctors.Create(context.Background(), doc))

	svc := appointment.NewService(appointments, doctors, bills, nil)
	h := NewHandler(svc)

	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine, doc.ID, bills
}

func doRequest(engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestBookAppointmentEndpoint(t *testing.T) {
	engine, doctorID, _ := setupRouter(t)

	w := doRequest(engine, http.MethodPost, "/api/v1/appointments", map[string]interface{}{
		"patient_id":    uuid.New().String(),
		"doctor_id":     doctorID.String(),
		"appt_datetime": "2025-03-10T10:00",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool              `json:"success"`
		Data    model.Appointment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, model.AppointmentStatusScheduled, resp.Data.Status)
}

func TestBookAppointmentSlotConflict(t *testing.T) {
	engine, doctorID, _ := setupRouter(t)

	body := map[string]interface{}{
		"patient_id":    uuid.New().String(),
		"doctor_id":     doctorID.String(),
		"appt_datetime": "2025-03-10T10:00",
	}
	w := doRequest(engine, http.MethodPost, "/api/v1/appointments", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(engine, http.MethodPost, "/api/v1/appointments", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), string(apperrors.ReasonSlotConflict))
}

func TestBookAppointmentOutsideAvailability(t *testing.T) {
	engine, doctorID, _ := setupRouter(t)

	w := doRequest(engine, http.MethodPost, "/api/v1/appointments", map[string]interface{}{
		"patient_id":    uuid.New().String(),
		"doctor_id":     doctorID.String(),
		"appt_datetime": "2025-03-10T08:59",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), string(apperrors.ReasonOutsideAvailability))
	// The doctor's actual window is surfaced.
	assert.Contains(t, w.Body.String(), "09:00:00")
}

func TestBookAppointmentMissingFields(t *testing.T) {
	engine, _, _ := setupRouter(t)

	w := doRequest(engine, http.MethodPost, "/api/v1/appointments", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusIssuesBill(t *testing.T) {
	engine, doctorID, bills := setupRouter(t)

	w := doRequest(engine, http.MethodPost, "/api/v1/appointments", map[string]interface{}{
		"patient_id":    uuid.New().String(),
		"doctor_id":     doctorID.String(),
		"appt_datetime": "2025-03-10T10:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data model.Appointment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doRequest(engine, http.MethodPut,
		fmt.Sprintf("/api/v1/appointments/%s/status", created.Data.ID), map[string]interface{}{
			"status": "Completed",
		})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data model.StatusChange `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data.Appointment)
	assert.Equal(t, doctorID, resp.Data.Appointment.DoctorID)
	assert.False(t, resp.Data.Appointment.ApptDatetime.IsZero())
	require.NotNil(t, resp.Data.IssuedBill)
	assert.Equal(t, 150.00, resp.Data.IssuedBill.Amount)
	assert.Len(t, bills.bills, 1)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	engine, _, _ := setupRouter(t)

	w := doRequest(engine, http.MethodPut,
		fmt.Sprintf("/api/v1/appointments/%s/status", uuid.New()), map[string]interface{}{
			"status": "Rescheduled",
		})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
