package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "subhub/internal/domain/user/valueobjects"
	"subhub/internal/shared/authorization"
)

func newTestUser(t *testing.T) *User {
	t.Helper()
	email, err := vo.NewEmail("jordan@example.com")
	require.NoError(t, err)
	u, err := NewUser("sub-1234", email)
	require.NoError(t, err)
	return u
}

func TestNewUser_Defaults(t *testing.T) {
	u := newTestUser(t)

	assert.Equal(t, "sub-1234", u.SubjectID())
	assert.Equal(t, authorization.RoleUser, u.Role())
	assert.Equal(t, vo.StatusActive, u.Status())
	assert.True(t, u.IsActive())
	assert.False(t, u.HasAdminAccess())
}

func TestNewUser_Invalid(t *testing.T) {
	email, err := vo.NewEmail("jordan@example.com")
	require.NoError(t, err)

	_, err = NewUser("", email)
	assert.Error(t, err)

	_, err = NewUser("sub-1234", nil)
	assert.Error(t, err)
}

func TestUser_HasAdminAccess(t *testing.T) {
	u := newTestUser(t)

	require.NoError(t, u.ChangeRole(authorization.RoleAdmin))
	assert.True(t, u.HasAdminAccess())

	require.NoError(t, u.ChangeRole(authorization.RoleUser))
	assert.False(t, u.HasAdminAccess())

	email, err := vo.NewEmail("root@example.com")
	require.NoError(t, err)
	super, err := ReconstructUser(
		2, "sub-root", email,
		nil, nil, nil, nil,
		authorization.RoleUser,
		vo.StatusActive,
		true,
		nil,
		time.Now(), time.Now(),
	)
	require.NoError(t, err)

	assert.True(t, super.HasAdminAccess(), "superuser flag grants admin access regardless of role")
	assert.Equal(t, authorization.RoleAdmin, super.EffectiveRole())
}

func TestUser_StatusChanges(t *testing.T) {
	u := newTestUser(t)

	u.Deactivate()
	assert.Equal(t, vo.StatusInactive, u.Status())
	assert.False(t, u.IsActive())

	u.Activate()
	assert.True(t, u.IsActive())

	require.NoError(t, u.ChangeStatus(vo.StatusSuspended))
	assert.False(t, u.IsActive())

	assert.Error(t, u.ChangeStatus(vo.Status("frozen")))
}

func TestUser_RecordLogin(t *testing.T) {
	u := newTestUser(t)
	assert.Nil(t, u.LastLoginAt())

	now := time.Now().UTC()
	u.RecordLogin(now)

	require.NotNil(t, u.LastLoginAt())
	assert.Equal(t, now, *u.LastLoginAt())
}

func TestNewEmail_Normalization(t *testing.T) {
	email, err := vo.NewEmail("  Jordan@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "jordan@example.com", email.String())

	_, err = vo.NewEmail("not-an-email")
	assert.Error(t, err)

	_, err = vo.NewEmail("")
	assert.Error(t, err)
}
