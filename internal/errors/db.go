package errors

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapDBError maps database errors from the audit sink to AppError instances.
// It distinguishes connection-level failures (our dependency's fault) from
// everything else so the audit worker can log them at the right severity.
//
// If the error is not a recognized database error, it returns the original error.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "database operation timed out",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "database operation was canceled",
			Cause:   err,
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgerrcode.IsConnectionException(pgErr.Code) ||
			pgerrcode.IsOperatorIntervention(pgErr.Code) {
			return &AppError{
				Code:    ErrCodeProviderTransient,
				Message: "database unavailable",
				Cause:   err,
			}
		}
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "database error",
			Cause:   err,
		}
	}

	return err
}
