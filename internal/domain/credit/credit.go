package credit

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"credit-engine/internal/domain/customer"
	"credit-engine/internal/pkg/apperrors"
)

// DefaultMaxFirstInstallmentMonths bounds how far in the future the first
// installment may fall. The boundary is inclusive: a date exactly this many
// calendar months from now is still eligible.
const DefaultMaxFirstInstallmentMonths = 3

type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusApproved   Status = "APPROVED"
	StatusRejected   Status = "REJECTED"
)

// Credit is a credit line issued to a customer. The numeric ID is the store
// key; CreditCode is the generated token used for external lookups.
type Credit struct {
	ID                   int64
	CreditCode           uuid.UUID
	CreditValue          decimal.Decimal
	DayFirstInstallment  time.Time
	NumberOfInstallments int
	Status               Status
	CustomerID           int64
	Customer             *customer.Customer
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func NewCredit(customerID int64, creditValue decimal.Decimal, numberOfInstallments int, dayFirstInstallment time.Time) (*Credit, error) {
	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customer id must be positive", apperrors.ErrInvalidArgument)
	}
	if !creditValue.IsPositive() {
		return nil, fmt.Errorf("%w: credit value must be positive", apperrors.ErrInvalidArgument)
	}
	if numberOfInstallments <= 0 {
		return nil, fmt.Errorf("%w: number of installments must be positive", apperrors.ErrInvalidArgument)
	}
	if dayFirstInstallment.IsZero() {
		return nil, fmt.Errorf("%w: day of first installment is required", apperrors.ErrInvalidArgument)
	}

	return &Credit{
		CreditValue:          creditValue,
		NumberOfInstallments: numberOfInstallments,
		DayFirstInstallment:  dayFirstInstallment,
		CustomerID:           customerID,
		Status:               StatusInProgress,
	}, nil
}
