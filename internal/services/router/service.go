package router

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"submission-routing-engine/internal/models"
	"submission-routing-engine/internal/services/metrics"
	"submission-routing-engine/internal/utils"
)

// UnderwriterSource supplies the full underwriter list for one routing call.
type UnderwriterSource interface {
	ListUnderwriters(ctx context.Context) ([]*models.Underwriter, error)
}

// Service routes mapped forms against an underwriter source.
type Service struct {
	source UnderwriterSource
	topN   int
}

// RoutingResult is the outcome of routing one mapped form.
type RoutingResult struct {
	Profile         models.RiskProfile             `json:"risk_profile"`
	Recommendations []models.RoutingRecommendation `json:"recommendations"`
}

// NewService creates a routing service. topN <= 0 uses DefaultTopN.
func NewService(source UnderwriterSource, topN int) *Service {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Service{source: source, topN: topN}
}

// Route derives the risk profile and ranks the current underwriters.
func (s *Service) Route(ctx context.Context, form *models.MappedForm) (*RoutingResult, error) {
	return s.RouteTop(ctx, form, s.topN)
}

// RouteTop is Route with an explicit recommendation count.
func (s *Service) RouteTop(ctx context.Context, form *models.MappedForm, topN int) (*RoutingResult, error) {
	metrics.RoutingRequests.Inc()

	underwriters, err := s.source.ListUnderwriters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list underwriters: %w", err)
	}

	profile := ExtractRiskProfile(form)
	recommendations := Rank(profile, underwriters, topN)

	metrics.RoutingRecommendationsReturned.Observe(float64(len(recommendations)))

	fields := []zap.Field{
		zap.String("naics_code", models.StringValue(profile.NAICSCode)),
		zap.String("business_type", models.StringValue(profile.BusinessType)),
		zap.Int("underwriters", len(underwriters)),
		zap.Int("recommendations", len(recommendations)),
	}
	if len(recommendations) > 0 {
		fields = append(fields,
			zap.String("top_underwriter", recommendations[0].Underwriter.Name),
			zap.Float64("top_score", recommendations[0].Score),
		)
	}
	utils.Logger.Info("Routing complete", fields...)

	return &RoutingResult{
		Profile:         profile,
		Recommendations: recommendations,
	}, nil
}
