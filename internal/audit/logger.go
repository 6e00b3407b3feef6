package audit

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/igabaycare/clinic-core/internal/models"
)

// Recorder persists one audit event.
type Recorder interface {
	Record(ctx context.Context, ev Event) error
}

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Record(ctx context.Context, ev Event) error {
	row := models.AuditLog{
		ClinicID: ev.ClinicID,
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metadataJSON(ev.Metadata),
	}

	return l.db.WithContext(ctx).Create(&row).Error
}

// LogRecorder writes audit events to the application log. Used when no
// database is configured.
type LogRecorder struct {
	log zerolog.Logger
}

func NewLogRecorder(log zerolog.Logger) *LogRecorder {
	return &LogRecorder{log: log}
}

func (r *LogRecorder) Record(_ context.Context, ev Event) error {
	e := r.log.Info().
		Str("audit_action", ev.Action).
		Str("entity", ev.Entity).
		Str("clinic_id", ev.ClinicID.String())
	if ev.EntityID != nil {
		e = e.Str("entity_id", ev.EntityID.String())
	}
	if ev.UserID != nil {
		e = e.Str("user_id", ev.UserID.String())
	}
	if meta := metadataJSON(ev.Metadata); meta != "" {
		e = e.RawJSON("metadata", []byte(meta))
	}
	e.Msg("audit")
	return nil
}

func metadataJSON(metadata any) string {
	if metadata == nil {
		return ""
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}
