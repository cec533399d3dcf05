package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"subhub/internal/application/subscription/dto"
	"subhub/internal/domain/catalog"
	sharedvo "subhub/internal/domain/shared/valueobjects"
	domainsub "subhub/internal/domain/subscription"
	subvo "subhub/internal/domain/subscription/valueobjects"
	"subhub/internal/infrastructure/persistence/models"
	"subhub/internal/infrastructure/repository"
	"subhub/internal/shared/db"
	"subhub/internal/shared/errors"
	"subhub/internal/shared/logger"
)

type testEnv struct {
	service          *Service
	productRepo      catalog.ProductRepository
	subscriptionRepo domainsub.Repository
	eventRepo        domainsub.EventRepository
}

func setupTestService(t *testing.T) *testEnv {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = gormDB.AutoMigrate(
		&models.ProductModel{},
		&models.ProductFeatureModel{},
		&models.SubscriptionModel{},
		&models.SubscriptionEventModel{},
	)
	require.NoError(t, err)

	log := logger.NewLogger()
	subscriptionRepo := repository.NewSubscriptionRepository(gormDB, log)
	eventRepo := repository.NewSubscriptionEventRepository(gormDB, log)
	productRepo := repository.NewProductRepository(gormDB, log)
	txManager := db.NewTransactionManager(gormDB)

	return &testEnv{
		service:          NewService(subscriptionRepo, eventRepo, productRepo, txManager, log),
		productRepo:      productRepo,
		subscriptionRepo: subscriptionRepo,
		eventRepo:        eventRepo,
	}
}

func createTestProduct(t *testing.T, env *testEnv, slug string, starter, professional *float64) uint {
	product, err := catalog.NewProduct("Acme SaaS", slug, "A product", "Short")
	require.NoError(t, err)
	product.SetPricing(starter, professional, nil)

	err = env.productRepo.Create(context.Background(), product)
	require.NoError(t, err)
	return product.ID()
}

func floatPtr(v float64) *float64 { return &v }

func TestService_Create(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	t.Run("amount resolves from the product tier price", func(t *testing.T) {
		productID := createTestProduct(t, env, "acme", floatPtr(9.99), floatPtr(29.99))

		result, err := env.service.Create(ctx, &dto.CreateSubscriptionRequest{
			UserID:    1,
			ProductID: productID,
			Plan:      "starter",
		})
		require.NoError(t, err)

		assert.Equal(t, 9.99, result.Amount)
		assert.Equal(t, "active", result.Status)
		assert.Equal(t, "INR", result.Currency)
		require.NotNil(t, result.EndDate)
		assert.WithinDuration(t, result.StartDate.AddDate(0, 0, 30), *result.EndDate, time.Second)

		events, err := env.eventRepo.ListBySubscriptionID(ctx, result.ID)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, domainsub.EventTypeCreated, events[0].EventType())
		assert.Contains(t, events[0].Description(), "Acme SaaS")
		assert.False(t, events[0].CreatedAt().Before(result.CreatedAt))
	})

	t.Run("explicit amount wins over the tier price", func(t *testing.T) {
		productID := createTestProduct(t, env, "acme-explicit", floatPtr(9.99), nil)

		result, err := env.service.Create(ctx, &dto.CreateSubscriptionRequest{
			UserID:    2,
			ProductID: productID,
			Plan:      "starter",
			Amount:    floatPtr(5.55),
		})
		require.NoError(t, err)
		assert.Equal(t, 5.55, result.Amount)
	})

	t.Run("unpriced tier without an explicit amount fails", func(t *testing.T) {
		productID := createTestProduct(t, env, "acme-unpriced", floatPtr(9.99), nil)

		_, err := env.service.Create(ctx, &dto.CreateSubscriptionRequest{
			UserID:    3,
			ProductID: productID,
			Plan:      "enterprise",
		})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("unknown product fails with not found", func(t *testing.T) {
		_, err := env.service.Create(ctx, &dto.CreateSubscriptionRequest{
			UserID:    4,
			ProductID: 9999,
			Plan:      "starter",
		})
		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("duplicate active subscription conflicts", func(t *testing.T) {
		productID := createTestProduct(t, env, "acme-dup", floatPtr(9.99), nil)

		_, err := env.service.Create(ctx, &dto.CreateSubscriptionRequest{
			UserID:    5,
			ProductID: productID,
			Plan:      "starter",
		})
		require.NoError(t, err)

		_, err = env.service.Create(ctx, &dto.CreateSubscriptionRequest{
			UserID:    5,
			ProductID: productID,
			Plan:      "professional",
		})
		require.Error(t, err)
		assert.True(t, errors.IsConflictError(err))
	})

	t.Run("quarterly cycle derives a 90 day period", func(t *testing.T) {
		productID := createTestProduct(t, env, "acme-quarterly", floatPtr(9.99), nil)

		result, err := env.service.Create(ctx, &dto.CreateSubscriptionRequest{
			UserID:       6,
			ProductID:    productID,
			Plan:         "starter",
			BillingCycle: "quarterly",
		})
		require.NoError(t, err)
		require.NotNil(t, result.EndDate)
		assert.WithinDuration(t, result.StartDate.AddDate(0, 0, 90), *result.EndDate, time.Second)
	})
}

func TestService_ChangePlan(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	productID := createTestProduct(t, env, "acme-plan", floatPtr(9.99), floatPtr(29.99))
	created, err := env.service.Create(ctx, &dto.CreateSubscriptionRequest{
		UserID:    1,
		ProductID: productID,
		Plan:      "starter",
	})
	require.NoError(t, err)

	t.Run("reprices from the product and appends an event", func(t *testing.T) {
		result, err := env.service.ChangePlan(ctx, created.ID, "professional", true)
		require.NoError(t, err)

		assert.Equal(t, "professional", result.Plan)
		assert.Equal(t, 29.99, result.Amount)
		assert.Equal(t, "active", result.Status)
		assert.Equal(t, created.EndDate.Unix(), result.EndDate.Unix())

		events, err := env.eventRepo.ListBySubscriptionID(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, domainsub.EventTypePlanChanged, events[0].EventType())
		assert.Equal(t, "Plan changed from starter to professional", events[0].Description())
		assert.Equal(t, true, events[0].Metadata()["prorate"])
		assert.Equal(t, "starter", events[0].Metadata()["old_plan"])
		assert.Equal(t, "professional", events[0].Metadata()["new_plan"])
	})

	t.Run("keeps the amount when the new tier has no price", func(t *testing.T) {
		result, err := env.service.ChangePlan(ctx, created.ID, "enterprise", false)
		require.NoError(t, err)
		assert.Equal(t, "enterprise", result.Plan)
		assert.Equal(t, 29.99, result.Amount)
	})

	t.Run("unknown subscription fails with not found", func(t *testing.T) {
		_, err := env.service.ChangePlan(ctx, 9999, "starter", false)
		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
	})
}

func TestService_Cancel(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()
	productID := createTestProduct(t, env, "acme-cancel", floatPtr(9.99), nil)

	t.Run("immediate cancel terminates the subscription", func(t *testing.T) {
		created, err := env.service.Create(ctx, &dto.CreateSubscriptionRequest{
			UserID:    1,
			ProductID: productID,
			Plan:      "starter",
		})
		require.NoError(t, err)

		reason := "too expensive"
		result, err := env.service.Cancel(ctx, created.ID, true, &reason)
		require.NoError(t, err)

		assert.Equal(t, "canceled", result.Status)
		require.NotNil(t, result.CanceledAt)
		require.NotNil(t, result.EndDate)
		assert.WithinDuration(t, time.Now(), *result.EndDate, 5*time.Second)
		assert.False(t, result.IsActive)

		events, err := env.eventRepo.ListBySubscriptionID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, domainsub.EventTypeCanceled, events[0].EventType())
		assert.Equal(t, "Subscription canceled - Reason: too expensive", events[0].Description())
		assert.Equal(t, true, events[0].Metadata()["end_immediately"])
		assert.Equal(t, "too expensive", events[0].Metadata()["reason"])
	})

	t.Run("cancel at period end only stamps canceled_at", func(t *testing.T) {
		created, err := env.service.Create(ctx, &dto.CreateSubscriptionRequest{
			UserID:    2,
			ProductID: productID,
			Plan:      "starter",
		})
		require.NoError(t, err)

		result, err := env.service.Cancel(ctx, created.ID, false, nil)
		require.NoError(t, err)

		assert.Equal(t, "active", result.Status)
		require.NotNil(t, result.CanceledAt)
		assert.Equal(t, created.EndDate.Unix(), result.EndDate.Unix())
		assert.True(t, result.IsActive)
	})
}

func TestService_Reactivate(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	t.Run("restores a recently canceled subscription", func(t *testing.T) {
		productID := createTestProduct(t, env, "acme-react", floatPtr(9.99), nil)
		created, err := env.service.Create(ctx, &dto.CreateSubscriptionRequest{
			UserID:    1,
			ProductID: productID,
			Plan:      "starter",
		})
		require.NoError(t, err)

		_, err = env.service.Cancel(ctx, created.ID, true, nil)
		require.NoError(t, err)

		result, err := env.service.Reactivate(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, "active", result.Status)
		assert.Nil(t, result.CanceledAt)
		require.NotNil(t, result.EndDate)
		assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), *result.EndDate, 5*time.Second)

		events, err := env.eventRepo.ListBySubscriptionID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, domainsub.EventTypeReactivated, events[0].EventType())
	})

	t.Run("no-op when the subscription is not canceled", func(t *testing.T) {
		productID := createTestProduct(t, env, "acme-react-active", floatPtr(9.99), nil)
		created, err := env.service.Create(ctx, &dto.CreateSubscriptionRequest{
			UserID:    2,
			ProductID: productID,
			Plan:      "starter",
		})
		require.NoError(t, err)

		result, err := env.service.Reactivate(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("fails when the product was deactivated", func(t *testing.T) {
		productID := createTestProduct(t, env, "acme-react-gone", floatPtr(9.99), nil)
		created, err := env.service.Create(ctx, &dto.CreateSubscriptionRequest{
			UserID:    3,
			ProductID: productID,
			Plan:      "starter",
		})
		require.NoError(t, err)

		_, err = env.service.Cancel(ctx, created.ID, true, nil)
		require.NoError(t, err)

		product, err := env.productRepo.GetByID(ctx, productID)
		require.NoError(t, err)
		product.Deactivate()
		require.NoError(t, env.productRepo.Update(ctx, product))

		_, err = env.service.Reactivate(ctx, created.ID)
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestService_Update(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	productID := createTestProduct(t, env, "acme-update", floatPtr(9.99), floatPtr(29.99))
	created, err := env.service.Create(ctx, &dto.CreateSubscriptionRequest{
		UserID:    1,
		ProductID: productID,
		Plan:      "starter",
	})
	require.NoError(t, err)

	t.Run("updates supplied fields and names changes in the event", func(t *testing.T) {
		plan := "professional"
		status := "past_due"
		maxUsers := 10

		result, err := env.service.Update(ctx, created.ID, &dto.UpdateSubscriptionRequest{
			Plan:     &plan,
			Status:   &status,
			MaxUsers: &maxUsers,
		})
		require.NoError(t, err)

		assert.Equal(t, "professional", result.Plan)
		assert.Equal(t, "past_due", result.Status)
		assert.Equal(t, 10, result.MaxUsers)
		assert.Equal(t, 9.99, result.Amount)

		events, err := env.eventRepo.ListBySubscriptionID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, domainsub.EventTypeUpdated, events[0].EventType())
		assert.Equal(t, "Subscription updated - Plan changed to professional - Status changed to past_due", events[0].Description())
	})

	t.Run("unknown subscription fails with not found", func(t *testing.T) {
		_, err := env.service.Update(ctx, 9999, &dto.UpdateSubscriptionRequest{})
		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("status outside the lifecycle matrix is rejected", func(t *testing.T) {
		status := "trialing"
		_, err := env.service.Update(ctx, created.ID, &dto.UpdateSubscriptionRequest{
			Status: &status,
		})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestService_Create_Trial(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	productID := createTestProduct(t, env, "acme-trial", floatPtr(9.99), nil)

	t.Run("trial end date starts the subscription in trial", func(t *testing.T) {
		trialEnd := time.Now().AddDate(0, 0, 14)
		result, err := env.service.Create(ctx, &dto.CreateSubscriptionRequest{
			UserID:       1,
			ProductID:    productID,
			Plan:         "starter",
			TrialEndDate: &trialEnd,
		})
		require.NoError(t, err)

		assert.Equal(t, "trialing", result.Status)
		assert.True(t, result.IsInTrial)
		require.NotNil(t, result.TrialEndDate)
	})

	t.Run("trial end date in the past is rejected", func(t *testing.T) {
		trialEnd := time.Now().AddDate(0, 0, -1)
		_, err := env.service.Create(ctx, &dto.CreateSubscriptionRequest{
			UserID:       2,
			ProductID:    productID,
			Plan:         "starter",
			TrialEndDate: &trialEnd,
		})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestService_GetActiveForUser(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	productID := createTestProduct(t, env, "acme-active", floatPtr(9.99), nil)

	t.Run("nil when the user has no active subscription", func(t *testing.T) {
		result, err := env.service.GetActiveForUser(ctx, 55)
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("finds the active subscription behind a long canceled history", func(t *testing.T) {
		active, err := domainsub.NewSubscription(77, productID, sharedvo.PlanStarter, 9.99, "INR", subvo.BillingCycleMonthly, time.Now(), nil)
		require.NoError(t, err)
		require.NoError(t, env.subscriptionRepo.Create(ctx, active))

		for i := 0; i < 120; i++ {
			canceled, err := domainsub.NewSubscription(77, productID, sharedvo.PlanStarter, 9.99, "INR", subvo.BillingCycleMonthly, time.Now(), nil)
			require.NoError(t, err)
			canceled.Cancel(true)
			require.NoError(t, env.subscriptionRepo.Create(ctx, canceled))
		}

		result, err := env.service.GetActiveForUser(ctx, 77)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, active.ID(), result.ID)
		assert.Equal(t, "active", result.Status)
	})
}

func TestService_ListForDashboard(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	productID := createTestProduct(t, env, "acme-dash", floatPtr(9.99), nil)
	_, err := env.service.Create(ctx, &dto.CreateSubscriptionRequest{
		UserID:    7,
		ProductID: productID,
		Plan:      "starter",
	})
	require.NoError(t, err)

	items, err := env.service.ListForDashboard(ctx, 7)
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "Starter", item.Plan)
	assert.Equal(t, "Acme SaaS", item.ProductName)
	assert.Equal(t, "acme-dash", item.ProductSlug)
	require.NotNil(t, item.StartDate)
	assert.Equal(t, time.Now().Format("January 02, 2006"), *item.StartDate)
	require.NotNil(t, item.LastEventType)
	assert.Equal(t, domainsub.EventTypeCreated, *item.LastEventType)
	assert.Greater(t, item.RemainingDays, 0)
}
