package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"credit-engine/internal/domain/credit"
	"credit-engine/internal/pkg/apperrors"
)

var creditCodeTest = uuid.MustParse("aa547c0f-9a6a-451f-8c89-afddce916a29")

func creditFixture() *credit.Credit {
	return &credit.Credit{
		ID:                   1,
		CreditCode:           creditCodeTest,
		CreditValue:          decimal.NewFromFloat(500.0),
		DayFirstInstallment:  time.Now().AddDate(0, 2, 0),
		NumberOfInstallments: 15,
		Status:               credit.StatusInProgress,
		CustomerID:           1,
		CreatedAt:            time.Now(),
		UpdatedAt:            time.Now(),
	}
}

func setupCreditRepo(t *testing.T) (context.Context, *CreditRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	ctx := context.Background()
	repo := NewCreditRepository(mockPool, logger)

	return ctx, repo, mockPool
}

func TestCreateCreditWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()

	cred := creditFixture()
	cred.ID = 0

	query := `
        INSERT INTO credits (credit_code, credit_value, day_first_installment, number_of_installments, status, customer_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(
		cred.CreditCode,
		cred.CreditValue,
		cred.DayFirstInstallment,
		cred.NumberOfInstallments,
		cred.Status,
		cred.CustomerID,
	).WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
		AddRow(int64(1), cred.CreatedAt, cred.UpdatedAt))

	err := repo.Save(ctx, cred)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), cred.ID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindCreditByCodeReturnOne(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()

	cred := creditFixture()
	cust := customerFixture()

	query := `
        SELECT c.id, c.credit_code, c.credit_value, c.day_first_installment, c.number_of_installments, c.status, c.customer_id, c.created_at, c.updated_at,
               cu.id, cu.first_name, cu.last_name, cu.cpf, cu.email, cu.income, cu.password, cu.zip_code, cu.street, cu.created_at, cu.updated_at
        FROM credits c
        JOIN customers cu ON cu.id = c.customer_id
        WHERE c.credit_code = $1`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(cred.CreditCode).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "credit_code", "credit_value", "day_first_installment", "number_of_installments", "status", "customer_id", "created_at", "updated_at",
			"cu_id", "first_name", "last_name", "cpf", "email", "income", "password", "zip_code", "street", "cu_created_at", "cu_updated_at",
		}).AddRow(
			cred.ID, cred.CreditCode, cred.CreditValue, cred.DayFirstInstallment, cred.NumberOfInstallments, cred.Status, cred.CustomerID, cred.CreatedAt, cred.UpdatedAt,
			cust.CustomerID, cust.FirstName, cust.LastName, cust.CPF, cust.Email, cust.Income, cust.Password, cust.Address.ZipCode, cust.Address.Street, cust.CreatedAt, cust.UpdatedAt,
		))

	result, err := repo.FindByCreditCode(ctx, cred.CreditCode)
	assert.NoError(t, err)
	assert.Equal(t, cred.CreditCode, result.CreditCode)
	assert.Equal(t, credit.StatusInProgress, result.Status)
	assert.NotNil(t, result.Customer)
	assert.Equal(t, cust.Email, result.Customer.Email)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindCreditByCodeReturnNone(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()

	query := `
        SELECT c.id, c.credit_code, c.credit_value, c.day_first_installment, c.number_of_installments, c.status, c.customer_id, c.created_at, c.updated_at,
               cu.id, cu.first_name, cu.last_name, cu.cpf, cu.email, cu.income, cu.password, cu.zip_code, cu.street, cu.created_at, cu.updated_at
        FROM credits c
        JOIN customers cu ON cu.id = c.customer_id
        WHERE c.credit_code = $1`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(creditCodeTest).WillReturnError(pgx.ErrNoRows)

	result, err := repo.FindByCreditCode(ctx, creditCodeTest)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, result)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindAllCreditsByCustomerID(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()

	cred := creditFixture()
	second := creditFixture()
	second.ID = 2
	second.CreditCode = uuid.MustParse("49f740be-46a7-449b-84e7-ff5b7986d7ef")

	query := `
        SELECT id, credit_code, credit_value, day_first_installment, number_of_installments, status, customer_id, created_at, updated_at
        FROM credits
        WHERE customer_id = $1
        ORDER BY id`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "credit_code", "credit_value", "day_first_installment", "number_of_installments", "status", "customer_id", "created_at", "updated_at"}).
			AddRow(cred.ID, cred.CreditCode, cred.CreditValue, cred.DayFirstInstallment, cred.NumberOfInstallments, cred.Status, cred.CustomerID, cred.CreatedAt, cred.UpdatedAt).
			AddRow(second.ID, second.CreditCode, second.CreditValue, second.DayFirstInstallment, second.NumberOfInstallments, second.Status, second.CustomerID, second.CreatedAt, second.UpdatedAt))

	result, err := repo.FindAllByCustomerID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(result))
	assert.Equal(t, cred.CreditCode, result[0].CreditCode)
	assert.Equal(t, second.CreditCode, result[1].CreditCode)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindAllCreditsByCustomerIDReturnEmpty(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()

	query := `
        SELECT id, credit_code, credit_value, day_first_installment, number_of_installments, status, customer_id, created_at, updated_at
        FROM credits
        WHERE customer_id = $1
        ORDER BY id`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "credit_code", "credit_value", "day_first_installment", "number_of_installments", "status", "customer_id", "created_at", "updated_at"}))

	result, err := repo.FindAllByCustomerID(ctx, 99)
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
