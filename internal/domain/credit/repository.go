package credit

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Save inserts the credit and fills in the store-assigned fields.
	Save(ctx context.Context, cred *Credit) error

	// FindByCreditCode returns apperrors.ErrNotFound when no credit carries
	// the code. The owning customer is loaded alongside the credit.
	FindByCreditCode(ctx context.Context, creditCode uuid.UUID) (*Credit, error)

	// FindAllByCustomerID returns an empty slice, never an error, for
	// customer ids with no credits.
	FindAllByCustomerID(ctx context.Context, customerID int64) ([]*Credit, error)
}
