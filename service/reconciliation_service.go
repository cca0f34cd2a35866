package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"carnes-boutique/logger"
	"carnes-boutique/models"
	"carnes-boutique/reconciliation"
	"carnes-boutique/repository"
	"carnes-boutique/sender"
)

// ReconciliationService recomputes delivered orders from distributor weights
type ReconciliationService struct {
	repository repository.CatalogRepositoryInterface
	sender     sender.MessageSender
}

// NewReconciliationService creates a new ReconciliationService.
// msgSender may be nil; SendRecalculation then fails with ErrSenderNotConfigured.
func NewReconciliationService(repo repository.CatalogRepositoryInterface, msgSender sender.MessageSender) *ReconciliationService {
	return &ReconciliationService{repository: repo, sender: msgSender}
}

// Recalculate prices the reported weights against the current catalog
func (s *ReconciliationService) Recalculate(ctx context.Context, region string, reports []models.WeightReport) (*models.RecalculateResponse, error) {
	if err := checkRegion(region); err != nil {
		return nil, err
	}

	// The whole catalog is loaded so that an item unavailable in the region
	// is reported as such instead of as unknown.
	items, err := s.repository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	order, err := reconciliation.RecalculateOrder(items, region, reports)
	if err != nil {
		logger.Warn(ctx, "⚠️  Order recalculation rejected", zap.String("region", region), zap.Error(err))
		return nil, err
	}

	logger.Info(ctx, "🧮 Order recalculated",
		zap.String("region", region),
		zap.Int("lines", len(order.Lines)),
		zap.Float64("total", order.Total),
	)
	return &models.RecalculateResponse{
		Order:   order,
		Message: reconciliation.FormatRecalculationMessage(order),
	}, nil
}

// RecalculateText parses a free-form distributor message and recalculates it
func (s *ReconciliationService) RecalculateText(ctx context.Context, region, text string) (*models.RecalculateResponse, error) {
	reports, err := reconciliation.ParseWeightReports(text)
	if err != nil {
		return nil, err
	}
	return s.Recalculate(ctx, region, reports)
}

// Calculate runs the request's structured reports, or its text when there are none
func (s *ReconciliationService) Calculate(ctx context.Context, req models.RecalculateRequest) (*models.RecalculateResponse, error) {
	if len(req.Reports) > 0 {
		return s.Recalculate(ctx, req.Region, req.Reports)
	}
	return s.RecalculateText(ctx, req.Region, req.Text)
}

// SendRecalculation recalculates the order and sends the message to the
// customer. Nothing is sent unless every line was reconciled.
func (s *ReconciliationService) SendRecalculation(ctx context.Context, req models.RecalculateRequest) (*models.RecalculateResponse, error) {
	if s.sender == nil {
		return nil, ErrSenderNotConfigured
	}
	if strings.TrimSpace(req.Phone) == "" {
		return nil, ErrPhoneRequired
	}

	resp, err := s.Calculate(ctx, req)
	if err != nil {
		return nil, err
	}

	sent, err := s.sender.SendText(ctx, req.Phone, resp.Message)
	if err != nil {
		return nil, fmt.Errorf("failed to send recalculation: %w", err)
	}
	resp.MessageID = sent.MessageID

	logger.Info(ctx, "📤 Recalculation sent", zap.String("messageId", sent.MessageID))
	return resp, nil
}
