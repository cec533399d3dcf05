package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdto "subhub/internal/application/auth/dto"
	domainuser "subhub/internal/domain/user"
	vo "subhub/internal/domain/user/valueobjects"
	"subhub/internal/interfaces/http/handlers/testutil"
	"subhub/internal/shared/constants"
	"subhub/internal/shared/errors"
)

type mockAuthService struct {
	user    *authdto.UserDTO
	session *authdto.SessionDTO
	err     error

	updatePasswordEmail string
}

func (m *mockAuthService) SignUp(ctx context.Context, req *authdto.SignUpRequest) (*authdto.UserDTO, error) {
	return m.user, m.err
}

func (m *mockAuthService) SignIn(ctx context.Context, req *authdto.SignInRequest) (*authdto.SessionDTO, error) {
	return m.session, m.err
}

func (m *mockAuthService) SignOut(ctx context.Context, accessToken string) error {
	return m.err
}

func (m *mockAuthService) ResetPassword(ctx context.Context, email string) error {
	return m.err
}

func (m *mockAuthService) UpdatePassword(ctx context.Context, accessToken, email string, req *authdto.UpdatePasswordRequest) error {
	m.updatePasswordEmail = email
	return m.err
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*authdto.SessionDTO, error) {
	return m.session, m.err
}

func (m *mockAuthService) GetCurrentUser(ctx context.Context, subjectID string) (*authdto.UserDTO, error) {
	return m.user, m.err
}

func (m *mockAuthService) UpdateProfile(ctx context.Context, userID uint, req *authdto.UpdateProfileRequest) (*authdto.UserDTO, error) {
	return m.user, m.err
}

func testUserDTO() *authdto.UserDTO {
	return &authdto.UserDTO{
		ID:        10,
		SubjectID: "subject-10",
		Email:     "ada@example.com",
		Role:      "user",
		Status:    "active",
	}
}

func newTestAuthHandler(svc authService) *AuthHandler {
	return NewAuthHandler(svc, testutil.NewMockLogger())
}

func TestAuthHandler_SignUp_Success(t *testing.T) {
	svc := &mockAuthService{user: testUserDTO()}
	handler := newTestAuthHandler(svc)

	reqBody := authdto.SignUpRequest{Email: "ada@example.com", Password: "correct-horse"}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/signup", reqBody)

	handler.SignUp(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
}

func TestAuthHandler_SignUp_ShortPassword(t *testing.T) {
	handler := newTestAuthHandler(&mockAuthService{})

	reqBody := map[string]string{"email": "ada@example.com", "password": "short"}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/signup", reqBody)

	handler.SignUp(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_SignUp_DuplicateEmail(t *testing.T) {
	svc := &mockAuthService{err: errors.NewConflictError("email already registered")}
	handler := newTestAuthHandler(svc)

	reqBody := authdto.SignUpRequest{Email: "ada@example.com", Password: "correct-horse"}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/signup", reqBody)

	handler.SignUp(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_SignIn_Success(t *testing.T) {
	svc := &mockAuthService{session: &authdto.SessionDTO{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "bearer",
		ExpiresIn:    3600,
		User:         testUserDTO(),
	}}
	handler := newTestAuthHandler(svc)

	reqBody := authdto.SignInRequest{Email: "ada@example.com", Password: "correct-horse"}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/signin", reqBody)

	handler.SignIn(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_SignIn_BadCredentials(t *testing.T) {
	svc := &mockAuthService{err: errors.NewUnauthorizedError("invalid credentials")}
	handler := newTestAuthHandler(svc)

	reqBody := authdto.SignInRequest{Email: "ada@example.com", Password: "wrong"}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/signin", reqBody)

	handler.SignIn(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_SignOut_MissingToken(t *testing.T) {
	handler := newTestAuthHandler(&mockAuthService{})

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/signout", nil)

	handler.SignOut(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_SignOut_Success(t *testing.T) {
	handler := newTestAuthHandler(&mockAuthService{})

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/signout", nil)
	c.Request.Header.Set("Authorization", "Bearer some-token")

	handler.SignOut(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_ResetPassword_UniformResponse(t *testing.T) {
	handler := newTestAuthHandler(&mockAuthService{})

	reqBody := authdto.ResetPasswordRequest{Email: "nobody@example.com"}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/reset-password", reqBody)

	handler.ResetPassword(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Contains(t, resp.Message, "If the address is registered")
}

func TestAuthHandler_UpdatePassword_UsesCallerEmail(t *testing.T) {
	svc := &mockAuthService{}
	handler := newTestAuthHandler(svc)

	email, err := vo.NewEmail("ada@example.com")
	require.NoError(t, err)
	user, err := domainuser.NewUser("subject-10", email)
	require.NoError(t, err)

	reqBody := authdto.UpdatePasswordRequest{CurrentPassword: "correct-horse", NewPassword: "battery-staple"}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/update-password", reqBody)
	c.Request.Header.Set("Authorization", "Bearer some-token")
	c.Set(constants.ContextKeyUser, user)

	handler.UpdatePassword(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ada@example.com", svc.updatePasswordEmail)
}

func TestAuthHandler_UpdatePassword_Unauthenticated(t *testing.T) {
	handler := newTestAuthHandler(&mockAuthService{})

	reqBody := authdto.UpdatePasswordRequest{CurrentPassword: "correct-horse", NewPassword: "battery-staple"}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/update-password", reqBody)

	handler.UpdatePassword(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_RefreshToken_MissingToken(t *testing.T) {
	handler := newTestAuthHandler(&mockAuthService{})

	reqBody := map[string]string{}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/refresh-token", reqBody)

	handler.RefreshToken(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_GetProfile_Success(t *testing.T) {
	svc := &mockAuthService{user: testUserDTO()}
	handler := newTestAuthHandler(svc)

	c, w := testutil.NewTestContext(http.MethodGet, "/auth/me", nil)
	testutil.SetAuthContext(c, 10, "user")

	handler.GetProfile(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_UpdateProfile_Success(t *testing.T) {
	svc := &mockAuthService{user: testUserDTO()}
	handler := newTestAuthHandler(svc)

	company := "Analytical Engines"
	reqBody := authdto.UpdateProfileRequest{Company: &company}
	c, w := testutil.NewTestContext(http.MethodPut, "/auth/me", reqBody)
	testutil.SetAuthContext(c, 10, "user")

	handler.UpdateProfile(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
