package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/igabaycare/clinic-core/internal/httperr"
)

const pgUniqueViolation = "23505"

// collection is the generic create / get / update-by-id / query access the
// clinic tables share. No operation spans more than one collection.
type collection[T any] struct {
	db *gorm.DB
}

func newCollection[T any](db *gorm.DB) collection[T] {
	return collection[T]{db: db}
}

func (c collection[T]) Create(ctx context.Context, rec *T) error {
	return translate(c.db.WithContext(ctx).Create(rec).Error)
}

func (c collection[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	return c.First(ctx, map[string]any{"id": id})
}

func (c collection[T]) First(ctx context.Context, where map[string]any, preload ...string) (*T, error) {
	var rec T
	q := c.db.WithContext(ctx)
	for _, p := range preload {
		q = q.Preload(p)
	}
	if err := q.Where(where).First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

// UpdateByID applies patch to the row with the given id. guard adds extra
// equality conditions; the returned count is zero when none matched.
func (c collection[T]) UpdateByID(
	ctx context.Context,
	id uuid.UUID,
	patch map[string]any,
	guard map[string]any,
) (int64, error) {

	q := c.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id)
	if len(guard) > 0 {
		q = q.Where(guard)
	}

	res := q.Updates(patch)
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	return res.RowsAffected, nil
}

func (c collection[T]) Query(ctx context.Context, filter map[string]any, order string) ([]T, error) {
	var out []T
	q := c.db.WithContext(ctx).Where(filter)
	if order != "" {
		q = q.Order(order)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	if isUniqueViolation(err) {
		return httperr.ErrBusiness(httperr.CodeDuplicateRecord)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
