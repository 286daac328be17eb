package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"credit-engine/internal/domain/credit"
	"credit-engine/internal/pkg/apperrors"
)

const dateLayout = "2006-01-02"

type CreditRequest struct {
	CustomerID           int64   `json:"customerId" validate:"required,gt=0"`
	CreditValue          float64 `json:"creditValue" validate:"required,gt=0"`
	NumberOfInstallments int     `json:"numberOfInstallments" validate:"required,gt=0,lte=48"`
	DayFirstInstallment  string  `json:"dayFirstOfInstallment" validate:"required"`
}

func (r *CreditRequest) Validate() error {
	if err := translateFieldError(validate.Struct(r)); err != nil {
		return err
	}
	if _, err := time.Parse(dateLayout, r.DayFirstInstallment); err != nil {
		return apperrors.NewValidationError("dayFirstOfInstallment", "must be a date in YYYY-MM-DD format")
	}
	return nil
}

func (r *CreditRequest) ToDomain() (*credit.Credit, error) {
	dayFirst, err := time.Parse(dateLayout, r.DayFirstInstallment)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid dayFirstOfInstallment: %v", apperrors.ErrInvalidArgument, err)
	}
	return credit.NewCredit(r.CustomerID, decimal.NewFromFloat(r.CreditValue), r.NumberOfInstallments, dayFirst)
}

// CreditView is the detail projection of a single credit, including data
// from the owning customer.
type CreditView struct {
	CreditCode          string `json:"creditCode"`
	CreditValue         string `json:"creditValue"`
	NumberOfInstallment int    `json:"numberOfInstallment"`
	Status              string `json:"status"`
	EmailCustomer       string `json:"emailCustomer"`
	IncomeCustomer      string `json:"incomeCustomer"`
}

func NewCreditView(cred *credit.Credit) CreditView {
	if cred == nil {
		return CreditView{}
	}
	view := CreditView{
		CreditCode:          cred.CreditCode.String(),
		CreditValue:         cred.CreditValue.StringFixed(2),
		NumberOfInstallment: cred.NumberOfInstallments,
		Status:              string(cred.Status),
	}
	if cred.Customer != nil {
		view.EmailCustomer = cred.Customer.Email
		view.IncomeCustomer = cred.Customer.Income.StringFixed(2)
	}
	return view
}

// CreditViewList is the summary projection used when listing a customer's
// credits.
type CreditViewList struct {
	CreditCode           string `json:"creditCode"`
	CreditValue          string `json:"creditValue"`
	NumberOfInstallments int    `json:"numberOfInstallments"`
}

func NewCreditViewList(cred *credit.Credit) CreditViewList {
	if cred == nil {
		return CreditViewList{}
	}
	return CreditViewList{
		CreditCode:           cred.CreditCode.String(),
		CreditValue:          cred.CreditValue.StringFixed(2),
		NumberOfInstallments: cred.NumberOfInstallments,
	}
}

type CreditCreatedResponse struct {
	Message string `json:"message"`
}

func NewCreditCreatedResponse(cred *credit.Credit) CreditCreatedResponse {
	firstName := ""
	if cred != nil && cred.Customer != nil {
		firstName = cred.Customer.FirstName
	}
	code := ""
	if cred != nil {
		code = cred.CreditCode.String()
	}
	return CreditCreatedResponse{
		Message: fmt.Sprintf("Credit %s - Customer %s saved!", code, firstName),
	}
}
