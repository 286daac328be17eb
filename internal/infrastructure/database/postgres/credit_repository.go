package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"credit-engine/internal/domain/credit"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/pkg/apperrors"
)

type CreditRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ credit.Repository = (*CreditRepository)(nil)

func NewCreditRepository(db DBPool, logger *slog.Logger) *CreditRepository {
	return &CreditRepository{db: db, logger: logger.With("component", "CreditRepository")}
}

func (r *CreditRepository) Save(ctx context.Context, cred *credit.Credit) error {
	if cred == nil {
		return fmt.Errorf("%w: credit cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to insert new credit", slog.Int64("customerID", cred.CustomerID))

	query := `
        INSERT INTO credits (credit_code, credit_value, day_first_installment, number_of_installments, status, customer_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		cred.CreditCode,
		cred.CreditValue,
		cred.DayFirstInstallment,
		cred.NumberOfInstallments,
		cred.Status,
		cred.CustomerID,
	).Scan(
		&cred.ID,
		&cred.CreatedAt,
		&cred.UpdatedAt,
	)

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to insert credit due to unique constraint violation", slog.String("creditCode", cred.CreditCode.String()))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert credit", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert credit: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Credit inserted successfully", slog.Int64("creditID", cred.ID))
	return nil
}

func (r *CreditRepository) FindByCreditCode(ctx context.Context, creditCode uuid.UUID) (*credit.Credit, error) {
	r.logger.InfoContext(ctx, "Attempting to find credit by code")

	query := `
        SELECT c.id, c.credit_code, c.credit_value, c.day_first_installment, c.number_of_installments, c.status, c.customer_id, c.created_at, c.updated_at,
               cu.id, cu.first_name, cu.last_name, cu.cpf, cu.email, cu.income, cu.password, cu.zip_code, cu.street, cu.created_at, cu.updated_at
        FROM credits c
        JOIN customers cu ON cu.id = c.customer_id
        WHERE c.credit_code = $1`

	var cred credit.Credit
	var cust customer.Customer
	err := r.db.QueryRow(ctx, query, creditCode).Scan(
		&cred.ID,
		&cred.CreditCode,
		&cred.CreditValue,
		&cred.DayFirstInstallment,
		&cred.NumberOfInstallments,
		&cred.Status,
		&cred.CustomerID,
		&cred.CreatedAt,
		&cred.UpdatedAt,
		&cust.CustomerID,
		&cust.FirstName,
		&cust.LastName,
		&cust.CPF,
		&cust.Email,
		&cust.Income,
		&cust.Password,
		&cust.Address.ZipCode,
		&cust.Address.Street,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Credit not found")
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan credit by code", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get credit by code: %w", apperrors.ErrDatabase, err)
	}

	cred.Customer = &cust
	r.logger.InfoContext(ctx, "Credit found successfully", slog.Int64("creditID", cred.ID))
	return &cred, nil
}

func (r *CreditRepository) FindAllByCustomerID(ctx context.Context, customerID int64) ([]*credit.Credit, error) {
	r.logger.InfoContext(ctx, "Attempting to find credits by customer ID", slog.Int64("customerID", customerID))

	query := `
        SELECT id, credit_code, credit_value, day_first_installment, number_of_installments, status, customer_id, created_at, updated_at
        FROM credits
        WHERE customer_id = $1
        ORDER BY id`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query credits by customer ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query credits: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	credits := make([]*credit.Credit, 0)
	for rows.Next() {
		var cred credit.Credit
		err := rows.Scan(
			&cred.ID,
			&cred.CreditCode,
			&cred.CreditValue,
			&cred.DayFirstInstallment,
			&cred.NumberOfInstallments,
			&cred.Status,
			&cred.CustomerID,
			&cred.CreatedAt,
			&cred.UpdatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan credit row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan credit row: %w", apperrors.ErrDatabase, err)
		}
		credits = append(credits, &cred)
	}

	if err := rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating credit rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating credit rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Credits found successfully", slog.Int("count", len(credits)))
	return credits, nil
}
