package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// translate maps gorm errors onto the package sentinels. The connection is
// opened with TranslateError so driver-specific codes arrive as gorm errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrInUse, err)
	}
	return err
}
