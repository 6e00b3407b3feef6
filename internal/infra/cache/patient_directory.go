package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	notifyDomain "github.com/igabaycare/clinic-core/internal/domain/notification"
	"github.com/igabaycare/clinic-core/internal/models"
)

const DefaultPatientTTL = 15 * time.Minute

// PatientDirectory is a read-through Redis cache in front of the patient
// store. Redis outages degrade to direct lookups.
type PatientDirectory struct {
	next notifyDomain.PatientDirectory
	rdb  *redis.Client
	ttl  time.Duration
	log  zerolog.Logger
}

func NewPatientDirectory(
	next notifyDomain.PatientDirectory,
	rdb *redis.Client,
	ttl time.Duration,
	log zerolog.Logger,
) *PatientDirectory {
	if ttl <= 0 {
		ttl = DefaultPatientTTL
	}
	return &PatientDirectory{next: next, rdb: rdb, ttl: ttl, log: log}
}

func patientKey(id uuid.UUID) string {
	return "clinic:patient:" + id.String()
}

func (d *PatientDirectory) GetPatient(ctx context.Context, patientID uuid.UUID) (*models.Patient, error) {
	key := patientKey(patientID)

	raw, err := d.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var p models.Patient
		if jsonErr := json.Unmarshal(raw, &p); jsonErr == nil {
			return &p, nil
		}
		d.log.Warn().Str("key", key).Msg("discarding undecodable cached patient")
	case !errors.Is(err, redis.Nil):
		d.log.Warn().Err(err).Str("key", key).Msg("patient cache read failed")
	}

	p, err := d.next.GetPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(p); err == nil {
		if err := d.rdb.Set(ctx, key, b, d.ttl).Err(); err != nil {
			d.log.Warn().Err(err).Str("key", key).Msg("patient cache write failed")
		}
	}
	return p, nil
}

func (d *PatientDirectory) Invalidate(ctx context.Context, patientID uuid.UUID) error {
	return d.rdb.Del(ctx, patientKey(patientID)).Err()
}

var _ notifyDomain.PatientDirectory = (*PatientDirectory)(nil)
