package application

import (
	"errors"
	"fmt"

	"github.com/everestcart/storefront-api/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrConflict signals the order's current state forbids the operation.
	ErrConflict = errors.New("order state conflict")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var transition *domain.TransitionError
	if errors.As(err, &transition) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	var conflict *domain.CancellationConflictError
	if errors.As(err, &conflict) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	if errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrMissingShipping) ||
		errors.Is(err, domain.ErrMissingPayment) ||
		errors.Is(err, domain.ErrMissingReason) ||
		errors.Is(err, domain.ErrInvalidProductID) ||
		errors.Is(err, domain.ErrInvalidQuantity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
