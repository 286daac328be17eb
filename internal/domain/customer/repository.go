package customer

import (
	"context"
)

type CustomerRepository interface {
	// Save inserts the customer when CustomerID is zero, updates otherwise.
	// A CPF or email collision surfaces as apperrors.ErrAlreadyExists; the
	// store's unique constraint is authoritative, no pre-check happens here.
	Save(ctx context.Context, cust *Customer) error

	// FindByID returns apperrors.ErrNotFound when no row matches.
	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	ExistsByCPF(ctx context.Context, cpf string) (bool, error)

	FindAll(ctx context.Context) ([]*Customer, error)

	// Delete removes the customer row. A foreign-key rejection (customer
	// still referenced by credits) surfaces as apperrors.ErrConflict.
	Delete(ctx context.Context, customerID int64) error
}
