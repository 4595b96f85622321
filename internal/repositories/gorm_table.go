package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/KDAtkins/infrastructure/internal/identity"

	"gorm.io/gorm"
)

// gormTable holds the insert/update/delete/find discipline every entity
// repository shares: rows are addressed by their binary primary key only,
// inserts never overwrite, and writes that touch no row are reported.
type gormTable[T any] struct {
	db     *gorm.DB
	entity string
	pk     string
}

func (t gormTable[T]) insert(ctx context.Context, id identity.ID, row *T) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(new(T)).Where(t.pk+" = ?", id).Count(&count).Error; err != nil {
			return connectionFailure("insert "+t.entity, err)
		}
		if count > 0 {
			return fmt.Errorf("%s %s: %w", t.entity, id, ErrAlreadyExists)
		}
		if err := tx.Create(row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%s %s: %w", t.entity, id, ErrAlreadyExists)
			}
			return connectionFailure("insert "+t.entity, err)
		}
		return nil
	})
}

func (t gormTable[T]) update(ctx context.Context, id identity.ID, columns map[string]any) error {
	res := t.db.WithContext(ctx).Model(new(T)).Where(t.pk+" = ?", id).Updates(columns)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%s %s: %w", t.entity, id, ErrAlreadyExists)
		}
		return connectionFailure("update "+t.entity, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %s not found for update: %w", t.entity, id, ErrNotFound)
	}
	return nil
}

func (t gormTable[T]) delete(ctx context.Context, id identity.ID) error {
	res := t.db.WithContext(ctx).Where(t.pk+" = ?", id).Delete(new(T))
	if res.Error != nil {
		return connectionFailure("delete "+t.entity, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %s not found for deletion: %w", t.entity, id, ErrNotFound)
	}
	return nil
}

// first returns nil, nil when no row matches.
func (t gormTable[T]) first(ctx context.Context, query string, args ...any) (*T, error) {
	var row T
	if err := t.db.WithContext(ctx).Where(query, args...).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, connectionFailure("get "+t.entity, err)
	}
	return &row, nil
}

func (t gormTable[T]) findByID(ctx context.Context, id identity.ID) (*T, error) {
	return t.first(ctx, t.pk+" = ?", id)
}

// find returns every matching row; an empty result is not an error.
func (t gormTable[T]) find(ctx context.Context, order string, query string, args ...any) ([]T, error) {
	rows := make([]T, 0)
	tx := t.db.WithContext(ctx)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	if order != "" {
		tx = tx.Order(order)
	}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, connectionFailure("list "+t.entity, err)
	}
	return rows, nil
}
