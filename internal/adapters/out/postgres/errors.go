package postgres

import (
	"errors"
	"strings"

	"orders/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// integrityViolationClass is the SQLSTATE class of integrity constraint violations.
const integrityViolationClass = "23"

// classifyError maps storage integrity failures to errs.ConstraintViolationError.
// Other errors pass through untouched.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, integrityViolationClass) {
		return errs.NewConstraintViolationErrorWithCause(pgErr.ConstraintName, err)
	}

	// gorm has already translated the driver error and dropped the constraint name.
	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errs.NewConstraintViolationErrorWithCause("foreign key", err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.NewConstraintViolationErrorWithCause("unique", err)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return errs.NewConstraintViolationErrorWithCause("check", err)
	}

	return err
}
