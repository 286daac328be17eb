package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"credit-engine/internal/domain/customer"
	"credit-engine/internal/pkg/apperrors"
)

var validate = validator.New()

// translateFieldError collapses validator output into the first failing
// field so the response carries a single actionable message.
func translateFieldError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperrors.NewValidationError(fe.Field(), "failed on rule '"+fe.Tag()+"'")
	}
	return apperrors.NewValidationError("", err.Error())
}

type CreateCustomerRequest struct {
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	CPF       string  `json:"cpf" validate:"required,len=11,numeric"`
	Email     string  `json:"email" validate:"required,email"`
	Income    float64 `json:"income" validate:"gte=0"`
	Password  string  `json:"password" validate:"required"`
	ZipCode   string  `json:"zipCode" validate:"required"`
	Street    string  `json:"street" validate:"required"`
}

func (r *CreateCustomerRequest) Validate() error {
	return translateFieldError(validate.Struct(r))
}

func (r *CreateCustomerRequest) ToDomain() *customer.Customer {
	return customer.NewCustomer(
		r.FirstName,
		r.LastName,
		r.CPF,
		r.Email,
		r.Password,
		decimal.NewFromFloat(r.Income),
		customer.Address{ZipCode: r.ZipCode, Street: r.Street},
	)
}

type CustomerUpdateRequest struct {
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	Income    float64 `json:"income" validate:"gte=0"`
	ZipCode   string  `json:"zipCode" validate:"required"`
	Street    string  `json:"street" validate:"required"`
}

func (r *CustomerUpdateRequest) Validate() error {
	return translateFieldError(validate.Struct(r))
}

func (r *CustomerUpdateRequest) ToDomain() customer.CustomerUpdate {
	return customer.CustomerUpdate{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Income:    decimal.NewFromFloat(r.Income),
		ZipCode:   r.ZipCode,
		Street:    r.Street,
	}
}

type CustomerView struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	CPF       string `json:"cpf"`
	Email     string `json:"email"`
	Income    string `json:"income"`
	ZipCode   string `json:"zipCode"`
	Street    string `json:"street"`
}

func NewCustomerView(cust *customer.Customer) CustomerView {
	if cust == nil {
		return CustomerView{}
	}
	return CustomerView{
		ID:        cust.CustomerID,
		FirstName: cust.FirstName,
		LastName:  cust.LastName,
		CPF:       cust.CPF,
		Email:     cust.Email,
		Income:    cust.Income.StringFixed(2),
		ZipCode:   cust.Address.ZipCode,
		Street:    cust.Address.Street,
	}
}

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
