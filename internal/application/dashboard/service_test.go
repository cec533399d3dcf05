package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	sharedvo "subhub/internal/domain/shared/valueobjects"
	domainsub "subhub/internal/domain/subscription"
	subvo "subhub/internal/domain/subscription/valueobjects"
	"subhub/internal/infrastructure/persistence/models"
	"subhub/internal/infrastructure/repository"
	"subhub/internal/shared/logger"
)

func setupDashboard(t *testing.T) (*Service, domainsub.Repository) {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = gormDB.AutoMigrate(&models.SubscriptionModel{}, &models.SubscriptionEventModel{})
	require.NoError(t, err)

	log := logger.NewLogger()
	repo := repository.NewSubscriptionRepository(gormDB, log)
	return NewService(repo, log), repo
}

func seedSubscription(t *testing.T, repo domainsub.Repository, userID uint, plan sharedvo.Plan, start time.Time, end *time.Time) *domainsub.Subscription {
	sub, err := domainsub.NewSubscription(userID, 1, plan, 9.99, "INR", subvo.BillingCycleMonthly, start, end)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), sub))
	return sub
}

func TestService_GetStats(t *testing.T) {
	ctx := context.Background()

	t.Run("zero subscriptions yields empty stats", func(t *testing.T) {
		service, _ := setupDashboard(t)

		result, err := service.GetStats(ctx, 42)
		require.NoError(t, err)

		stats := result.Stats
		assert.Equal(t, 0, stats.TotalSubscriptions)
		assert.Equal(t, 0, stats.ActiveSubscriptions)
		assert.Equal(t, 0, stats.CanceledSubscriptions)
		assert.Equal(t, 0, stats.AverageSubscriptionDuration)
		assert.Equal(t, 0.0, stats.Billing.Current)
		assert.Nil(t, stats.Billing.NextBillingDate)
	})

	t.Run("one lapsed subscription spanning ten days averages ten", func(t *testing.T) {
		service, repo := setupDashboard(t)

		now := time.Now().UTC()
		end := now
		seedSubscription(t, repo, 1, sharedvo.PlanStarter, now.AddDate(0, 0, -10), &end)

		result, err := service.GetStats(ctx, 1)
		require.NoError(t, err)

		stats := result.Stats
		assert.Equal(t, 1, stats.TotalSubscriptions)
		assert.Equal(t, 10, stats.AverageSubscriptionDuration)
		// lapsed, so there is nothing to bill
		assert.Equal(t, 0.0, stats.Billing.Current)
		assert.Nil(t, stats.Billing.NextBillingDate)
	})

	t.Run("counts plans and sources billing from the active subscription", func(t *testing.T) {
		service, repo := setupDashboard(t)
		now := time.Now().UTC()

		active := seedSubscription(t, repo, 2, sharedvo.PlanProfessional, now, nil)

		canceled := seedSubscription(t, repo, 2, sharedvo.PlanStarter, now.AddDate(0, 0, -10), nil)
		canceled.Cancel(true)
		require.NoError(t, repo.Update(ctx, canceled))

		result, err := service.GetStats(ctx, 2)
		require.NoError(t, err)

		stats := result.Stats
		assert.Equal(t, 2, stats.TotalSubscriptions)
		assert.Equal(t, 1, stats.ActiveSubscriptions)
		assert.Equal(t, 1, stats.CanceledSubscriptions)
		assert.Equal(t, 1, stats.Subscriptions.Active)
		assert.Equal(t, 1, stats.Subscriptions.Starter)
		assert.Equal(t, 1, stats.Subscriptions.Professional)
		assert.Equal(t, 0, stats.Subscriptions.Enterprise)

		assert.Equal(t, 9.99, stats.Billing.Current)
		require.NotNil(t, stats.Billing.NextBillingDate)
		expected := active.EndDate().Format("January 02, 2006")
		assert.Equal(t, expected, *stats.Billing.NextBillingDate)

		// active ran 30 days forward, canceled ran 10 days to its immediate end
		assert.Equal(t, 20, stats.AverageSubscriptionDuration)
	})
}
