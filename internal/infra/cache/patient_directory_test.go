package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igabaycare/clinic-core/internal/models"
)

type countingDirectory struct {
	patients map[uuid.UUID]models.Patient
	calls    int
}

func (c *countingDirectory) GetPatient(_ context.Context, id uuid.UUID) (*models.Patient, error) {
	c.calls++
	p, ok := c.patients[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &p, nil
}

func TestPatientDirectoryCachesLookups(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	patient := models.Patient{ID: uuid.New(), UserID: uuid.New(), FirstName: "Ana"}
	next := &countingDirectory{patients: map[uuid.UUID]models.Patient{patient.ID: patient}}
	dir := NewPatientDirectory(next, rdb, time.Minute, zerolog.Nop())
	ctx := context.Background()

	first, err := dir.GetPatient(ctx, patient.ID)
	require.NoError(t, err)
	second, err := dir.GetPatient(ctx, patient.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, patient.UserID, first.UserID)
	assert.Equal(t, patient.UserID, second.UserID)
	assert.True(t, mr.Exists(patientKey(patient.ID)))

	mr.FastForward(2 * time.Minute)
	_, err = dir.GetPatient(ctx, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestPatientDirectoryFallsBackWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	patient := models.Patient{ID: uuid.New(), UserID: uuid.New()}
	next := &countingDirectory{patients: map[uuid.UUID]models.Patient{patient.ID: patient}}
	dir := NewPatientDirectory(next, rdb, time.Minute, zerolog.Nop())

	mr.Close()

	got, err := dir.GetPatient(context.Background(), patient.ID)
	require.NoError(t, err)
	assert.Equal(t, patient.UserID, got.UserID)
}

func TestPatientDirectoryMissIsNotCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	dir := NewPatientDirectory(&countingDirectory{}, rdb, 0, zerolog.Nop())

	id := uuid.New()
	_, err := dir.GetPatient(context.Background(), id)

	assert.Error(t, err)
	assert.False(t, mr.Exists(patientKey(id)))
}

func TestPatientDirectoryInvalidate(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	patient := models.Patient{ID: uuid.New()}
	next := &countingDirectory{patients: map[uuid.UUID]models.Patient{patient.ID: patient}}
	dir := NewPatientDirectory(next, rdb, time.Minute, zerolog.Nop())
	ctx := context.Background()

	_, err := dir.GetPatient(ctx, patient.ID)
	require.NoError(t, err)
	require.NoError(t, dir.Invalidate(ctx, patient.ID))

	assert.False(t, mr.Exists(patientKey(patient.ID)))
}
