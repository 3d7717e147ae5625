package usecase

import (
	"errors"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
)

// StoreError converts a repository error into the AppError for domain.
// AppErrors pass through unchanged.
func StoreError(domain string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := httperr.As(err); ok {
		return err
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return httperr.NotFound(domain, "")
	case errors.Is(err, repository.ErrDuplicate):
		return httperr.Conflict(domain, "")
	}
	return httperr.Internal(domain, err)
}

func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

func IsDuplicate(err error) bool {
	return errors.Is(err, repository.ErrDuplicate)
}
