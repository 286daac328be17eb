package credit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"credit-engine/internal/domain/customer"
	"credit-engine/internal/infrastructure/monitoring"
	"credit-engine/internal/pkg/apperrors"
)

type CreditService interface {
	// Save resolves the owning customer, checks the first-installment
	// eligibility window, assigns a credit code if absent and persists.
	// A date beyond the window fails with BusinessError("Invalid Date")
	// before any repository write.
	Save(ctx context.Context, cred *Credit) (*Credit, error)

	// FindByCreditCode looks up a credit by code and verifies it belongs to
	// customerID. Unknown codes fail with
	// BusinessError("Creditcode {code} not found"); a code owned by a
	// different customer fails with InvariantViolation("Contact admin").
	FindByCreditCode(ctx context.Context, customerID int64, creditCode uuid.UUID) (*Credit, error)

	// FindAllByCustomer returns the customer's credits in store order; an
	// unknown customer id yields an empty slice, never an error.
	FindAllByCustomer(ctx context.Context, customerID int64) ([]*Credit, error)
}

var _ CreditService = (*creditService)(nil)

type creditService struct {
	repo            Repository
	customerService customer.CustomerService
	codes           CodeGenerator
	maxOffsetMonths int
	logger          *slog.Logger
}

func NewCreditService(repo Repository, cs customer.CustomerService, codes CodeGenerator, maxOffsetMonths int, logger *slog.Logger) CreditService {
	if repo == nil {
		panic("credit repository cannot be nil")
	}
	if cs == nil {
		panic("customer service cannot be nil")
	}
	if codes == nil {
		codes = NewUUIDCodeGenerator()
	}
	if maxOffsetMonths <= 0 {
		maxOffsetMonths = DefaultMaxFirstInstallmentMonths
	}
	return &creditService{
		repo:            repo,
		customerService: cs,
		codes:           codes,
		maxOffsetMonths: maxOffsetMonths,
		logger:          logger.With(slog.String("component", "creditService")),
	}
}

func (s *creditService) Save(ctx context.Context, cred *Credit) (*Credit, error) {
	s.logger.InfoContext(ctx, "Attempting to save new credit", slog.Int64("customerID", cred.CustomerID))

	cust, err := s.customerService.FindByID(ctx, cred.CustomerID)
	if err != nil {
		s.logger.WarnContext(ctx, "Owning customer could not be resolved", slog.Any("error", err))
		return nil, err
	}

	maxDate := time.Now().AddDate(0, s.maxOffsetMonths, 0)
	if cred.DayFirstInstallment.After(maxDate) {
		s.logger.WarnContext(ctx, "First installment date beyond eligibility window",
			slog.Time("dayFirstInstallment", cred.DayFirstInstallment),
			slog.Time("maxDate", maxDate))
		monitoring.RecordCreditRejected("invalid_date")
		return nil, apperrors.NewBusinessError("Invalid Date")
	}

	if cred.CreditCode == uuid.Nil {
		cred.CreditCode = s.codes.NewCode()
	}
	if cred.Status == "" {
		cred.Status = StatusInProgress
	}
	cred.Customer = cust

	err = s.repo.Save(ctx, cred)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save credit", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to save credit: %w", apperrors.ErrInternalServer, err)
	}

	monitoring.RecordCreditCreated()
	s.logger.InfoContext(ctx, "Credit created successfully",
		slog.Int64("creditID", cred.ID),
		slog.String("creditCode", cred.CreditCode.String()))
	return cred, nil
}

func (s *creditService) FindByCreditCode(ctx context.Context, customerID int64, creditCode uuid.UUID) (*Credit, error) {
	s.logger.InfoContext(ctx, "Attempting to find credit by code",
		slog.String("creditCode", creditCode.String()),
		slog.Int64("customerID", customerID))

	cred, err := s.repo.FindByCreditCode(ctx, creditCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Credit not found by repository")
			return nil, apperrors.NewBusinessError("Creditcode %s not found", creditCode)
		}
		s.logger.ErrorContext(ctx, "Repository error finding credit by code", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get credit %s: %w", creditCode, err)
	}

	if cred.CustomerID != customerID {
		s.logger.ErrorContext(ctx, "Credit owner does not match caller-supplied customer id",
			slog.Int64("ownerID", cred.CustomerID),
			slog.Int64("customerID", customerID))
		return nil, apperrors.NewInvariantViolation("Contact admin")
	}

	s.logger.InfoContext(ctx, "Successfully retrieved credit")
	return cred, nil
}

func (s *creditService) FindAllByCustomer(ctx context.Context, customerID int64) ([]*Credit, error) {
	s.logger.InfoContext(ctx, "Attempting to list credits for customer", slog.Int64("customerID", customerID))

	credits, err := s.repo.FindAllByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing credits", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list credits for customer %d: %w", customerID, err)
	}
	if credits == nil {
		credits = []*Credit{}
	}

	s.logger.InfoContext(ctx, "Successfully retrieved credits", slog.Int("count", len(credits)))
	return credits, nil
}
