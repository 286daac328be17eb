package customer

import (
	"time"

	"github.com/shopspring/decimal"
)

type Address struct {
	ZipCode string `json:"zipCode"`
	Street  string `json:"street"`
}

// Customer is a natural person identified system-wide by CPF. CPF and email
// are immutable after creation; Update only touches the fields in
// CustomerUpdate.
type Customer struct {
	CustomerID int64           `json:"customerId"`
	FirstName  string          `json:"firstName"`
	LastName   string          `json:"lastName"`
	CPF        string          `json:"cpf"`
	Email      string          `json:"email"`
	Income     decimal.Decimal `json:"income"`
	Password   string          `json:"-"`
	Address    Address         `json:"address"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func NewCustomer(firstName, lastName, cpf, email, password string, income decimal.Decimal, address Address) *Customer {
	now := time.Now()
	return &Customer{
		FirstName: firstName,
		LastName:  lastName,
		CPF:       cpf,
		Email:     email,
		Password:  password,
		Income:    income,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// CustomerUpdate is the set of fields a customer may change post-creation.
type CustomerUpdate struct {
	FirstName string
	LastName  string
	Income    decimal.Decimal
	ZipCode   string
	Street    string
}

func (c *Customer) Apply(upd CustomerUpdate) {
	c.FirstName = upd.FirstName
	c.LastName = upd.LastName
	c.Income = upd.Income
	c.Address.ZipCode = upd.ZipCode
	c.Address.Street = upd.Street
	c.UpdatedAt = time.Now()
}
