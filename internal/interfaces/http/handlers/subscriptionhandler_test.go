package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	subdto "subhub/internal/application/subscription/dto"
	"subhub/internal/interfaces/http/handlers/testutil"
	"subhub/internal/shared/errors"
)

type mockSubscriptionService struct {
	sub       *subdto.SubscriptionDTO
	items     []*subdto.SubscriptionListItemDTO
	subs      []*subdto.SubscriptionDTO
	events    []*subdto.SubscriptionEventDTO
	withEvts  *subdto.SubscriptionWithEventsDTO
	ownerID   uint
	ownerErr  error
	err       error
	createReq *subdto.CreateSubscriptionRequest
}

func (m *mockSubscriptionService) Create(ctx context.Context, req *subdto.CreateSubscriptionRequest) (*subdto.SubscriptionDTO, error) {
	m.createReq = req
	return m.sub, m.err
}

func (m *mockSubscriptionService) Update(ctx context.Context, id uint, req *subdto.UpdateSubscriptionRequest) (*subdto.SubscriptionDTO, error) {
	return m.sub, m.err
}

func (m *mockSubscriptionService) ChangePlan(ctx context.Context, id uint, newPlan string, prorate bool) (*subdto.SubscriptionDTO, error) {
	return m.sub, m.err
}

func (m *mockSubscriptionService) Cancel(ctx context.Context, id uint, endImmediately bool, reason *string) (*subdto.SubscriptionDTO, error) {
	return m.sub, m.err
}

func (m *mockSubscriptionService) Reactivate(ctx context.Context, id uint) (*subdto.SubscriptionDTO, error) {
	return m.sub, m.err
}

func (m *mockSubscriptionService) GetByID(ctx context.Context, id uint) (*subdto.SubscriptionDTO, error) {
	return m.sub, m.err
}

func (m *mockSubscriptionService) GetOwnerID(ctx context.Context, id uint) (uint, error) {
	return m.ownerID, m.ownerErr
}

func (m *mockSubscriptionService) ListByUser(ctx context.Context, userID uint) ([]*subdto.SubscriptionDTO, error) {
	return m.subs, m.err
}

func (m *mockSubscriptionService) ListForDashboard(ctx context.Context, userID uint) ([]*subdto.SubscriptionListItemDTO, error) {
	return m.items, m.err
}

func (m *mockSubscriptionService) GetActiveForUser(ctx context.Context, userID uint) (*subdto.SubscriptionDTO, error) {
	return m.sub, m.err
}

func (m *mockSubscriptionService) GetEvents(ctx context.Context, id uint) ([]*subdto.SubscriptionEventDTO, error) {
	return m.events, m.err
}

func (m *mockSubscriptionService) GetWithEvents(ctx context.Context, id uint) (*subdto.SubscriptionWithEventsDTO, error) {
	return m.withEvts, m.err
}

func testSubscriptionDTO() *subdto.SubscriptionDTO {
	now := time.Now().UTC()
	end := now.AddDate(0, 0, 30)
	return &subdto.SubscriptionDTO{
		ID:           1,
		UserID:       10,
		ProductID:    5,
		Plan:         "starter",
		Status:       "active",
		Amount:       9.99,
		Currency:     "INR",
		BillingCycle: "monthly",
		StartDate:    now,
		EndDate:      &end,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newTestSubscriptionHandler(svc subscriptionService) *SubscriptionHandler {
	return NewSubscriptionHandler(svc, testutil.NewMockLogger())
}

func TestSubscriptionHandler_Create_Success(t *testing.T) {
	svc := &mockSubscriptionService{sub: testSubscriptionDTO()}
	handler := newTestSubscriptionHandler(svc)

	reqBody := subdto.CreateSubscriptionRequest{
		ProductID: 5,
		Plan:      "starter",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions", reqBody)
	testutil.SetAuthContext(c, 10, "user")

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.createReq)
	assert.Equal(t, uint(10), svc.createReq.UserID)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
}

func TestSubscriptionHandler_Create_ForOtherUserDenied(t *testing.T) {
	svc := &mockSubscriptionService{sub: testSubscriptionDTO()}
	handler := newTestSubscriptionHandler(svc)

	reqBody := subdto.CreateSubscriptionRequest{
		UserID:    99,
		ProductID: 5,
		Plan:      "starter",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions", reqBody)
	testutil.SetAuthContext(c, 10, "user")

	handler.Create(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, svc.createReq)
}

func TestSubscriptionHandler_Create_AdminForOtherUser(t *testing.T) {
	svc := &mockSubscriptionService{sub: testSubscriptionDTO()}
	handler := newTestSubscriptionHandler(svc)

	reqBody := subdto.CreateSubscriptionRequest{
		UserID:    99,
		ProductID: 5,
		Plan:      "starter",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions", reqBody)
	testutil.SetAuthContext(c, 10, "admin")

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.createReq)
	assert.Equal(t, uint(99), svc.createReq.UserID)
}

func TestSubscriptionHandler_Create_InvalidBody(t *testing.T) {
	handler := newTestSubscriptionHandler(&mockSubscriptionService{})

	reqBody := map[string]any{"product_id": 5, "plan": "platinum"}
	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions", reqBody)
	testutil.SetAuthContext(c, 10, "user")

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscriptionHandler_Create_ServiceConflict(t *testing.T) {
	svc := &mockSubscriptionService{err: errors.NewConflictError("user already has an active subscription for Acme")}
	handler := newTestSubscriptionHandler(svc)

	reqBody := subdto.CreateSubscriptionRequest{
		ProductID: 5,
		Plan:      "starter",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions", reqBody)
	testutil.SetAuthContext(c, 10, "user")

	handler.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
}

func TestSubscriptionHandler_CreateFromDashboard_DefaultsProvider(t *testing.T) {
	svc := &mockSubscriptionService{sub: testSubscriptionDTO()}
	handler := newTestSubscriptionHandler(svc)

	reqBody := subdto.CreateSubscriptionRequest{
		UserID:    42,
		ProductID: 5,
		Plan:      "professional",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions/dashboard", reqBody)
	testutil.SetAuthContext(c, 1, "admin")

	handler.CreateFromDashboard(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.createReq)
	assert.Equal(t, "manual", svc.createReq.PaymentProvider)
}

func TestSubscriptionHandler_List_Success(t *testing.T) {
	svc := &mockSubscriptionService{items: []*subdto.SubscriptionListItemDTO{
		{ID: 1, Plan: "Starter", Status: "active", ProductID: 5, ProductName: "Acme", ProductSlug: "acme"},
	}}
	handler := newTestSubscriptionHandler(svc)

	c, w := testutil.NewTestContext(http.MethodGet, "/subscriptions", nil)
	testutil.SetAuthContext(c, 10, "user")

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
}

func TestSubscriptionHandler_List_Unauthenticated(t *testing.T) {
	handler := newTestSubscriptionHandler(&mockSubscriptionService{})

	c, w := testutil.NewTestContext(http.MethodGet, "/subscriptions", nil)

	handler.List(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubscriptionHandler_GetByID_OwnerAllowed(t *testing.T) {
	svc := &mockSubscriptionService{sub: testSubscriptionDTO(), ownerID: 10}
	handler := newTestSubscriptionHandler(svc)

	c, w := testutil.NewTestContext(http.MethodGet, "/subscriptions/1", nil)
	testutil.SetAuthContext(c, 10, "user")
	testutil.SetURLParam(c, "id", "1")

	handler.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubscriptionHandler_GetByID_NonOwnerForbidden(t *testing.T) {
	svc := &mockSubscriptionService{sub: testSubscriptionDTO(), ownerID: 99}
	handler := newTestSubscriptionHandler(svc)

	c, w := testutil.NewTestContext(http.MethodGet, "/subscriptions/1", nil)
	testutil.SetAuthContext(c, 10, "user")
	testutil.SetURLParam(c, "id", "1")

	handler.GetByID(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSubscriptionHandler_GetByID_AdminAllowed(t *testing.T) {
	svc := &mockSubscriptionService{sub: testSubscriptionDTO(), ownerID: 99}
	handler := newTestSubscriptionHandler(svc)

	c, w := testutil.NewTestContext(http.MethodGet, "/subscriptions/1", nil)
	testutil.SetAuthContext(c, 10, "admin")
	testutil.SetURLParam(c, "id", "1")

	handler.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubscriptionHandler_GetByID_NotFound(t *testing.T) {
	svc := &mockSubscriptionService{ownerErr: errors.NewNotFoundError("subscription not found")}
	handler := newTestSubscriptionHandler(svc)

	c, w := testutil.NewTestContext(http.MethodGet, "/subscriptions/77", nil)
	testutil.SetAuthContext(c, 10, "user")
	testutil.SetURLParam(c, "id", "77")

	handler.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscriptionHandler_GetByID_InvalidParam(t *testing.T) {
	handler := newTestSubscriptionHandler(&mockSubscriptionService{})

	c, w := testutil.NewTestContext(http.MethodGet, "/subscriptions/abc", nil)
	testutil.SetAuthContext(c, 10, "user")
	testutil.SetURLParam(c, "id", "abc")

	handler.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscriptionHandler_ChangePlan_Success(t *testing.T) {
	svc := &mockSubscriptionService{sub: testSubscriptionDTO(), ownerID: 10}
	handler := newTestSubscriptionHandler(svc)

	reqBody := subdto.ChangePlanRequest{NewPlan: "professional"}
	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions/1/change-plan", reqBody)
	testutil.SetAuthContext(c, 10, "user")
	testutil.SetURLParam(c, "id", "1")

	handler.ChangePlan(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubscriptionHandler_ChangePlan_InvalidPlan(t *testing.T) {
	svc := &mockSubscriptionService{sub: testSubscriptionDTO(), ownerID: 10}
	handler := newTestSubscriptionHandler(svc)

	reqBody := map[string]string{"new_plan": "platinum"}
	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions/1/change-plan", reqBody)
	testutil.SetAuthContext(c, 10, "user")
	testutil.SetURLParam(c, "id", "1")

	handler.ChangePlan(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscriptionHandler_Update_OwnerAllowed(t *testing.T) {
	svc := &mockSubscriptionService{sub: testSubscriptionDTO(), ownerID: 10}
	handler := newTestSubscriptionHandler(svc)

	reqBody := map[string]string{"status": "past_due"}
	c, w := testutil.NewTestContext(http.MethodPut, "/subscriptions/1", reqBody)
	testutil.SetAuthContext(c, 10, "user")
	testutil.SetURLParam(c, "id", "1")

	handler.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubscriptionHandler_Update_NonOwnerForbidden(t *testing.T) {
	svc := &mockSubscriptionService{sub: testSubscriptionDTO(), ownerID: 99}
	handler := newTestSubscriptionHandler(svc)

	reqBody := map[string]string{"status": "past_due"}
	c, w := testutil.NewTestContext(http.MethodPut, "/subscriptions/1", reqBody)
	testutil.SetAuthContext(c, 10, "user")
	testutil.SetURLParam(c, "id", "1")

	handler.Update(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSubscriptionHandler_Cancel_Success(t *testing.T) {
	svc := &mockSubscriptionService{sub: testSubscriptionDTO(), ownerID: 10}
	handler := newTestSubscriptionHandler(svc)

	reqBody := subdto.CancelSubscriptionRequest{EndImmediately: true}
	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions/1/cancel", reqBody)
	testutil.SetAuthContext(c, 10, "user")
	testutil.SetURLParam(c, "id", "1")

	handler.Cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubscriptionHandler_Reactivate_NotEligible(t *testing.T) {
	svc := &mockSubscriptionService{ownerID: 10}
	handler := newTestSubscriptionHandler(svc)

	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions/1/reactivate", nil)
	testutil.SetAuthContext(c, 10, "user")
	testutil.SetURLParam(c, "id", "1")

	handler.Reactivate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscriptionHandler_GetEvents_Success(t *testing.T) {
	svc := &mockSubscriptionService{
		ownerID: 10,
		events: []*subdto.SubscriptionEventDTO{
			{ID: 1, SubscriptionID: 1, EventType: "created", Description: "Subscription created"},
		},
	}
	handler := newTestSubscriptionHandler(svc)

	c, w := testutil.NewTestContext(http.MethodGet, "/subscriptions/1/events", nil)
	testutil.SetAuthContext(c, 10, "user")
	testutil.SetURLParam(c, "id", "1")

	handler.GetEvents(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubscriptionHandler_ListByUser_NonOwnerForbidden(t *testing.T) {
	handler := newTestSubscriptionHandler(&mockSubscriptionService{})

	c, w := testutil.NewTestContext(http.MethodGet, "/subscriptions/user/99", nil)
	testutil.SetAuthContext(c, 10, "user")
	testutil.SetURLParam(c, "user_id", "99")

	handler.ListByUser(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSubscriptionHandler_GetActiveByUser_NoneFound(t *testing.T) {
	handler := newTestSubscriptionHandler(&mockSubscriptionService{})

	c, w := testutil.NewTestContext(http.MethodGet, "/subscriptions/user/10/active", nil)
	testutil.SetAuthContext(c, 10, "user")
	testutil.SetURLParam(c, "user_id", "10")

	handler.GetActiveByUser(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
