package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"credit-engine/internal/infrastructure/monitoring"
	"credit-engine/internal/pkg/apperrors"
)

const customerNotFound = "Customer not found by repository"

type CustomerService interface {
	// Save persists a new customer and returns it with the assigned id.
	// Uniqueness of CPF/email is enforced by the store; a violation
	// propagates unchanged as apperrors.ErrAlreadyExists.
	Save(ctx context.Context, cust *Customer) (*Customer, error)

	// FindByID fails with "Id {id} not found" when no customer matches.
	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	// Update loads the customer via FindByID (propagating its failure),
	// applies the patch and saves. CPF and email never change.
	Update(ctx context.Context, customerID int64, upd CustomerUpdate) (*Customer, error)

	// Delete loads the customer via FindByID (propagating its failure),
	// then removes it.
	Delete(ctx context.Context, customerID int64) error

	FindAll(ctx context.Context) ([]*Customer, error)
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   CustomerRepository
	logger *slog.Logger
}

func NewCustomerService(repo CustomerRepository, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}
	return &customerService{
		repo:   repo,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func (s *customerService) Save(ctx context.Context, cust *Customer) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to save new customer", slog.String("cpf", cust.CPF))

	err := s.repo.Save(ctx, cust)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			s.logger.WarnContext(ctx, "Duplicate key rejected by repository", slog.Any("error", err))
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Repository failed to save new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}

	monitoring.RecordCustomerCreated()
	s.logger.InfoContext(ctx, "Successfully saved new customer", slog.Int64("customerID", cust.CustomerID))
	return cust, nil
}

func (s *customerService) FindByID(ctx context.Context, customerID int64) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to get customer by ID", slog.Int64("customerID", customerID))

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, customerNotFound, slog.Int64("customerID", customerID))
			return nil, apperrors.NewNotFound("Id %d not found", customerID)
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved customer")
	return cust, nil
}

func (s *customerService) Update(ctx context.Context, customerID int64, upd CustomerUpdate) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to update customer", slog.Int64("customerID", customerID))

	cust, err := s.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	cust.Apply(upd)

	err = s.repo.Save(ctx, cust)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.ErrorContext(ctx, "Customer disappeared before save completed", slog.Int64("customerID", customerID))
			return nil, apperrors.NewNotFound("Id %d not found", customerID)
		}
		s.logger.ErrorContext(ctx, "Repository failed to save updated customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save updated customer %d: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Successfully updated customer")
	return cust, nil
}

func (s *customerService) Delete(ctx context.Context, customerID int64) error {
	s.logger.InfoContext(ctx, "Attempting to delete customer", slog.Int64("customerID", customerID))

	if _, err := s.FindByID(ctx, customerID); err != nil {
		return err
	}

	err := s.repo.Delete(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.logger.WarnContext(ctx, "Delete blocked: customer still referenced by credits", slog.Int64("customerID", customerID))
			return err
		}
		s.logger.ErrorContext(ctx, "Repository error deleting customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %d: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Successfully deleted customer")
	return nil
}

func (s *customerService) FindAll(ctx context.Context) ([]*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to list all customers")

	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved customers", slog.Int("count", len(customers)))
	return customers, nil
}
