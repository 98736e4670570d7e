package persistence

import (
	"errors"
	"fmt"

	"github.com/money/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translate maps gorm's not-found error to the domain sentinel and wraps the rest
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// clearTable deletes every row of model's table
func clearTable(tx *gorm.DB, model any) error {
	return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error
}
