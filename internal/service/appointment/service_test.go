package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/repository"
)

type fakeApptRepo struct {
	repository.AppointmentRepository
	appts    map[uuid.UUID]*model.Appointment
	statuses map[uuid.UUID]string
	listed   *model.AppointmentFilters
}

func (f *fakeApptRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appt, ok := f.appts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return appt, nil
}

func (f *fakeApptRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if _, ok := f.appts[id]; !ok {
		return repository.ErrNotFound
	}
	if f.statuses == nil {
		f.statuses = map[uuid.UUID]string{}
	}
	f.statuses[id] = status
	return nil
}

func (f *fakeApptRepo) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	f.listed = filters
	var out []*model.Appointment
	for _, a := range f.appts {
		if a.PatientID == filters.PatientID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakePatientRepo struct {
	repository.PatientRepository
	byUser map[uuid.UUID]*model.Patient
}

func (f *fakePatientRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Patient, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func scheduled(patientID uuid.UUID) *model.Appointment {
	return &model.Appointment{
		ID:                  uuid.New(),
		PatientID:           patientID,
		ClinicID:            uuid.New(),
		CaseID:              uuid.New(),
		AppointmentDatetime: time.Now().Format(time.RFC3339),
		Status:              model.AppointmentStatusScheduled,
	}
}

func TestCancelOwnCancelsScheduledAppointment(t *testing.T) {
	userID := uuid.New()
	patient := &model.Patient{ID: uuid.New(), UserID: userID}
	appt := scheduled(patient.ID)

	repo := &fakeApptRepo{appts: map[uuid.UUID]*model.Appointment{appt.ID: appt}}
	patients := &fakePatientRepo{byUser: map[uuid.UUID]*model.Patient{userID: patient}}
	svc := NewService(repo, nil, patients, nil, nil, zerolog.Nop())

	require.NoError(t, svc.CancelOwn(context.Background(), userID, appt.ID))
	assert.Equal(t, model.AppointmentStatusCancelled, repo.statuses[appt.ID])
}

func TestCancelOwnRejectsForeignAppointment(t *testing.T) {
	userID := uuid.New()
	patient := &model.Patient{ID: uuid.New(), UserID: userID}
	appt := scheduled(uuid.New()) // someone else's

	repo := &fakeApptRepo{appts: map[uuid.UUID]*model.Appointment{appt.ID: appt}}
	patients := &fakePatientRepo{byUser: map[uuid.UUID]*model.Patient{userID: patient}}
	svc := NewService(repo, nil, patients, nil, nil, zerolog.Nop())

	err := svc.CancelOwn(context.Background(), userID, appt.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Empty(t, repo.statuses)
}

func TestCancelOwnRejectsTerminalStates(t *testing.T) {
	userID := uuid.New()
	patient := &model.Patient{ID: uuid.New(), UserID: userID}
	patients := &fakePatientRepo{byUser: map[uuid.UUID]*model.Patient{userID: patient}}

	for _, status := range []string{
		model.AppointmentStatusCancelled,
		model.AppointmentStatusCompleted,
		model.AppointmentStatusMissed,
	} {
		appt := scheduled(patient.ID)
		appt.Status = status
		repo := &fakeApptRepo{appts: map[uuid.UUID]*model.Appointment{appt.ID: appt}}
		svc := NewService(repo, nil, patients, nil, nil, zerolog.Nop())

		err := svc.CancelOwn(context.Background(), userID, appt.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition, status)
		assert.Empty(t, repo.statuses, status)
	}
}

func TestListOwnScopesToCaller(t *testing.T) {
	userID := uuid.New()
	patient := &model.Patient{ID: uuid.New(), UserID: userID}
	mine := scheduled(patient.ID)
	other := scheduled(uuid.New())

	repo := &fakeApptRepo{appts: map[uuid.UUID]*model.Appointment{
		mine.ID:  mine,
		other.ID: other,
	}}
	patients := &fakePatientRepo{byUser: map[uuid.UUID]*model.Patient{userID: patient}}
	svc := NewService(repo, nil, patients, nil, nil, zerolog.Nop())

	appts, err := svc.ListOwn(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, mine.ID, appts[0].ID)
	assert.Equal(t, patient.ID, repo.listed.PatientID)
}
