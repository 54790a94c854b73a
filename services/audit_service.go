package services

import (
	"context"
	"time"

	"grocerflow-backend/models"
	"grocerflow-backend/repository"
	"grocerflow-backend/utils/logger"
)

type AuditService struct {
	collections repository.CashCollectionRepositoryInterface
	orders      repository.OrderRepositoryInterface
	audit       repository.AuditRepositoryInterface
	config      *models.Config
	logger      logger.Logger
}

func NewAuditService(
	collections repository.CashCollectionRepositoryInterface,
	orders repository.OrderRepositoryInterface,
	audit repository.AuditRepositoryInterface,
	cfg *models.Config,
	log logger.Logger,
) *AuditService {
	return &AuditService{
		collections: collections,
		orders:      orders,
		audit:       audit,
		config:      cfg,
		logger:      log,
	}
}

func validPaymentMethod(method string) bool {
	switch method {
	case models.PaymentMethodCash, models.PaymentMethodCard, models.PaymentMethodUPI:
		return true
	}
	return false
}

// VerifyCashCollections reviews every recorded collection and flags
// zero amounts, negative amounts, and unrecognized payment methods.
func (s *AuditService) VerifyCashCollections(ctx context.Context, actorID string) (*models.CashVerificationReport, error) {
	collections, err := s.collections.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.CashVerificationReport{
		TotalCollections: len(collections),
		GeneratedAt:      time.Now().UTC().Format(time.RFC3339),
	}

	for _, c := range collections {
		report.TotalAmount += c.AmountCollected
		switch {
		case c.AmountCollected < 0:
			report.NegativeAmount = append(report.NegativeAmount, *c)
		case c.AmountCollected == 0:
			report.ZeroAmount = append(report.ZeroAmount, *c)
		}
		if !validPaymentMethod(c.PaymentMethod) {
			report.InvalidPayment = append(report.InvalidPayment, *c)
		}
	}
	if report.TotalCollections > 0 {
		report.AverageAmount = round2(report.TotalAmount / float64(report.TotalCollections))
	}
	report.TotalAmount = round2(report.TotalAmount)
	report.FlaggedCount = len(report.ZeroAmount) + len(report.NegativeAmount) + len(report.InvalidPayment)

	s.audit.Write(ctx, "CASH_AUDIT_RUN", "collections", actorID, string(models.RoleAuditor),
		"Cash collection verification completed")

	return report, nil
}

// VerifyOrders reviews all orders for negative amounts and flags
// high-value transactions above the configured threshold.
func (s *AuditService) VerifyOrders(ctx context.Context, actorID string) (*models.OrderVerificationReport, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.OrderVerificationReport{
		TotalOrders:     len(orders),
		StatusBreakdown: map[string]int{},
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	for _, o := range orders {
		report.TotalValue += o.FinalAmount
		report.StatusBreakdown[o.Status]++
		if o.FinalAmount < 0 {
			report.NegativeAmounts = append(report.NegativeAmounts, *o)
		}
		if o.FinalAmount > s.config.HighValueThreshold {
			report.HighValueOrders = append(report.HighValueOrders, *o)
		}
	}
	if report.TotalOrders > 0 {
		report.AverageValue = round2(report.TotalValue / float64(report.TotalOrders))
	}
	report.TotalValue = round2(report.TotalValue)
	report.FlaggedCount = len(report.HighValueOrders) + len(report.NegativeAmounts)

	s.audit.Write(ctx, "ORDER_AUDIT_RUN", "orders", actorID, string(models.RoleAuditor),
		"Order verification completed")

	return report, nil
}

func (s *AuditService) ListAuditLogs(ctx context.Context) ([]*models.AuditLog, error) {
	return s.audit.ListAll(ctx)
}

func (s *AuditService) ListEntityAuditLogs(ctx context.Context, entityID string) ([]*models.AuditLog, error) {
	return s.audit.ListByEntity(ctx, entityID)
}
