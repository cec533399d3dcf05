package dashboard

import (
	"context"
	"math"
	"time"

	"subhub/internal/application/dashboard/dto"
	sharedvo "subhub/internal/domain/shared/valueobjects"
	domainsub "subhub/internal/domain/subscription"
	subvo "subhub/internal/domain/subscription/valueobjects"
	"subhub/internal/shared/biztime"
	"subhub/internal/shared/logger"
)

const displayDateLayout = "January 02, 2006"

// Service computes read-only per-user subscription statistics.
type Service struct {
	subscriptionRepo domainsub.Repository
	logger           logger.Interface
}

func NewService(subscriptionRepo domainsub.Repository, logger logger.Interface) *Service {
	return &Service{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// GetStats aggregates all of a user's subscriptions into dashboard counters.
func (s *Service) GetStats(ctx context.Context, userID uint) (*dto.DashboardResponse, error) {
	subs, err := s.subscriptionRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := biztime.Now()
	stats := &dto.DashboardStatsDTO{
		TotalSubscriptions: len(subs),
	}

	for _, sub := range subs {
		switch sub.Status() {
		case subvo.StatusActive:
			stats.ActiveSubscriptions++
			stats.Subscriptions.Active++
		case subvo.StatusCanceled:
			stats.CanceledSubscriptions++
		}

		switch sub.Plan() {
		case sharedvo.PlanStarter:
			stats.Subscriptions.Starter++
		case sharedvo.PlanProfessional:
			stats.Subscriptions.Professional++
		case sharedvo.PlanEnterprise:
			stats.Subscriptions.Enterprise++
		}
	}

	if current := mostRecentBillable(subs); current != nil {
		stats.Billing.Current = current.Amount()

		next := current.EndDate()
		if next == nil {
			fallback := now.AddDate(0, 0, 30)
			next = &fallback
		}
		formatted := next.Format(displayDateLayout)
		stats.Billing.NextBillingDate = &formatted
	}

	stats.AverageSubscriptionDuration = averageDurationDays(subs, now)

	return &dto.DashboardResponse{Stats: stats}, nil
}

// mostRecentBillable picks the newest subscription that is currently
// usable, nil when the user has none.
func mostRecentBillable(subs []*domainsub.Subscription) *domainsub.Subscription {
	var latest *domainsub.Subscription
	for _, sub := range subs {
		if !sub.IsActive() {
			continue
		}
		if latest == nil || sub.CreatedAt().After(latest.CreatedAt()) {
			latest = sub
		}
	}
	return latest
}

// averageDurationDays averages (end_date or now) - start_date over all
// subscriptions, rounded to the nearest whole day. Zero when there are none.
func averageDurationDays(subs []*domainsub.Subscription, now time.Time) int {
	if len(subs) == 0 {
		return 0
	}

	totalDays := 0
	for _, sub := range subs {
		end := now
		if sub.EndDate() != nil {
			end = *sub.EndDate()
		}
		totalDays += int(end.Sub(sub.StartDate()).Hours() / 24)
	}
	return int(math.Round(float64(totalDays) / float64(len(subs))))
}
