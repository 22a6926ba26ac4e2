package doctor

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinic-api/internal/handler"
	"github.com/clinicdesk/clinic-api/internal/model"
	"github.com/clinicdesk/clinic-api/internal/service/doctor"
	apperrors "github.com/clinicdesk/clinic-api/pkg/errors"
)

type fakeDoctorRepo struct {
	doctors []*model.Doctor
}

func (f *fakeDoctorRepo) Create(_ context.Context, d *model.Doctor) error {
	d.ID = uuid.New()
	f.doctors = append(f.doctors, d)
	return nil
}

func (f *fakeDoctorRepo) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	for _, d := range f.doctors {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, apperrors.NotFound("doctor", nil)
}

func (f *fakeDoctorRepo) List(context.Context) ([]*model.Doctor, error) {
	return f.doctors, nil
}

func setupRouter() (*gin.Engine, *fakeDoctorRepo) {
	gin.SetMode(gin.TestMode)
	handler.RegisterValidators()

	repo := &fakeDoctorRepo{}
	h := NewHandler(doctor.NewService(repo))

	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine, repo
}

func postDoctor(engine *gin.Engine, body map[string]interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/doctors", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRegisterDoctorEndpoint(t *testing.T) {
	engine, repo := setupRouter()

	w := postDoctor(engine, map[string]interface{}{
		"name":             "Dr. Bob Johnson",
		"specialization":   "Pediatrician",
		"avail_start_time": "10:00:00",
		"avail_end_time":   "18:00:00",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.doctors, 1)
	assert.Equal(t, "10:00:00", repo.doctors[0].AvailStartTime.String())
}

func TestRegisterDoctorRejectsBadTimeFormat(t *testing.T) {
	// The timeofday binding rejects this before the service runs.
	engine, repo := setupRouter()

	w := postDoctor(engine, map[string]interface{}{
		"name":             "Dr. Bob Johnson",
		"specialization":   "Pediatrician",
		"avail_start_time": "ten o'clock",
		"avail_end_time":   "18:00:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.doctors)
}

func TestRegisterDoctorRejectsInvertedWindow(t *testing.T) {
	engine, repo := setupRouter()

	w := postDoctor(engine, map[string]interface{}{
		"name":             "Dr. Bob Johnson",
		"specialization":   "Pediatrician",
		"avail_start_time": "18:00:00",
		"avail_end_time":   "10:00:00",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), string(apperrors.ReasonInvalidAvailabilityWindow))
	assert.Empty(t, repo.doctors)
}
