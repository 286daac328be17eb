package dto

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"credit-engine/internal/domain/customer"
	"credit-engine/internal/pkg/apperrors"
)

func validCreateRequest() CreateCustomerRequest {
	return CreateCustomerRequest{
		FirstName: "Cami",
		LastName:  "Cavalcante",
		CPF:       "28475934625",
		Email:     "camila@email.com",
		Income:    1000.0,
		Password:  "1234",
		ZipCode:   "12345",
		Street:    "Rua da Cami",
	}
}

func TestCreateCustomerRequestValidate(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		req := validCreateRequest()
		assert.NoError(t, req.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*CreateCustomerRequest)
	}{
		{"empty first name", func(r *CreateCustomerRequest) { r.FirstName = "" }},
		{"empty last name", func(r *CreateCustomerRequest) { r.LastName = "" }},
		{"cpf too short", func(r *CreateCustomerRequest) { r.CPF = "123" }},
		{"cpf with letters", func(r *CreateCustomerRequest) { r.CPF = "2847593462a" }},
		{"invalid email", func(r *CreateCustomerRequest) { r.Email = "not-an-email" }},
		{"negative income", func(r *CreateCustomerRequest) { r.Income = -1.0 }},
		{"empty password", func(r *CreateCustomerRequest) { r.Password = "" }},
		{"empty zip code", func(r *CreateCustomerRequest) { r.ZipCode = "" }},
		{"empty street", func(r *CreateCustomerRequest) { r.Street = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)
			err := req.Validate()
			assert.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestCreateCustomerRequestToDomain(t *testing.T) {
	req := validCreateRequest()
	cust := req.ToDomain()

	assert.Equal(t, "Cami", cust.FirstName)
	assert.Equal(t, "28475934625", cust.CPF)
	assert.Equal(t, "camila@email.com", cust.Email)
	assert.True(t, cust.Income.Equal(decimal.NewFromFloat(1000.0)))
	assert.Equal(t, "12345", cust.Address.ZipCode)
	assert.Equal(t, int64(0), cust.CustomerID)
}

func TestCustomerUpdateRequestValidate(t *testing.T) {
	req := CustomerUpdateRequest{
		FirstName: "CamiUpdate",
		LastName:  "CavalcanteUpdate",
		Income:    5000.0,
		ZipCode:   "45656",
		Street:    "Rua Updated",
	}
	assert.NoError(t, req.Validate())

	req.FirstName = ""
	assert.ErrorIs(t, req.Validate(), apperrors.ErrValidation)
}

func TestNewCustomerView(t *testing.T) {
	cust := &customer.Customer{
		CustomerID: 1,
		FirstName:  "Cami",
		LastName:   "Cavalcante",
		CPF:        "28475934625",
		Email:      "camila@email.com",
		Income:     decimal.NewFromFloat(1000.0),
		Password:   "1234",
		Address:    customer.Address{ZipCode: "12345", Street: "Rua da Cami"},
	}

	view := NewCustomerView(cust)

	assert.Equal(t, int64(1), view.ID)
	assert.Equal(t, "1000.00", view.Income)
	assert.Equal(t, "Rua da Cami", view.Street)

	assert.Equal(t, CustomerView{}, NewCustomerView(nil))
}
