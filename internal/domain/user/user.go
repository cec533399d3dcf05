package user

import (
	"fmt"
	"time"

	vo "subhub/internal/domain/user/valueobjects"
	"subhub/internal/shared/authorization"
)

// User represents the user aggregate root. Users mirror accounts held by the
// external identity provider; the subject ID links the local record to the
// provider-side identity.
type User struct {
	id          uint
	subjectID   string
	email       *vo.Email
	fullName    *string
	company     *string
	phone       *string
	avatarURL   *string
	role        authorization.UserRole
	status      vo.Status
	isSuperuser bool
	lastLoginAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// NewUser creates a new user mirrored from the identity provider.
func NewUser(subjectID string, email *vo.Email) (*User, error) {
	if subjectID == "" {
		return nil, fmt.Errorf("subject ID is required")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}

	now := time.Now()
	return &User{
		subjectID: subjectID,
		email:     email,
		role:      authorization.RoleUser,
		status:    vo.StatusActive,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructUser reconstructs a user from persistence.
func ReconstructUser(
	id uint,
	subjectID string,
	email *vo.Email,
	fullName, company, phone, avatarURL *string,
	role authorization.UserRole,
	status vo.Status,
	isSuperuser bool,
	lastLoginAt *time.Time,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if subjectID == "" {
		return nil, fmt.Errorf("subject ID is required")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid user role: %s", role)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid user status: %s", status)
	}

	return &User{
		id:          id,
		subjectID:   subjectID,
		email:       email,
		fullName:    fullName,
		company:     company,
		phone:       phone,
		avatarURL:   avatarURL,
		role:        role,
		status:      status,
		isSuperuser: isSuperuser,
		lastLoginAt: lastLoginAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

// ID returns the internal user ID
func (u *User) ID() uint {
	return u.id
}

// SubjectID returns the identity provider subject ID
func (u *User) SubjectID() string {
	return u.subjectID
}

// Email returns the user email
func (u *User) Email() *vo.Email {
	return u.email
}

// FullName returns the user's full name
func (u *User) FullName() *string {
	return u.fullName
}

// Company returns the user's company
func (u *User) Company() *string {
	return u.company
}

// Phone returns the user's phone number
func (u *User) Phone() *string {
	return u.phone
}

// AvatarURL returns the user's avatar URL
func (u *User) AvatarURL() *string {
	return u.avatarURL
}

// Role returns the user role
func (u *User) Role() authorization.UserRole {
	return u.role
}

// Status returns the account status
func (u *User) Status() vo.Status {
	return u.status
}

// IsSuperuser reports whether the user is a superuser
func (u *User) IsSuperuser() bool {
	return u.isSuperuser
}

// LastLoginAt returns when the user last signed in
func (u *User) LastLoginAt() *time.Time {
	return u.lastLoginAt
}

// CreatedAt returns when the user was created
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns when the user was last updated
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// SetID sets the user ID (only for persistence layer use)
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// IsActive reports whether the account may use the service.
func (u *User) IsActive() bool {
	return u.status == vo.StatusActive
}

// HasAdminAccess reports whether the user may perform admin operations.
// Superusers always have admin access regardless of role.
func (u *User) HasAdminAccess() bool {
	return u.isSuperuser || u.role.IsAdmin()
}

// EffectiveRole resolves the role used for authorization decisions.
func (u *User) EffectiveRole() authorization.UserRole {
	if u.isSuperuser {
		return authorization.RoleAdmin
	}
	return u.role
}

// UpdateProfile updates the mutable profile fields. Nil values leave the
// corresponding field untouched.
func (u *User) UpdateProfile(fullName, company, phone, avatarURL *string) {
	if fullName != nil {
		u.fullName = fullName
	}
	if company != nil {
		u.company = company
	}
	if phone != nil {
		u.phone = phone
	}
	if avatarURL != nil {
		u.avatarURL = avatarURL
	}
	u.updatedAt = time.Now()
}

// ChangeEmail updates the user's email address.
func (u *User) ChangeEmail(email *vo.Email) error {
	if email == nil {
		return fmt.Errorf("email is required")
	}
	u.email = email
	u.updatedAt = time.Now()
	return nil
}

// ChangeRole updates the user's role.
func (u *User) ChangeRole(role authorization.UserRole) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid user role: %s", role)
	}
	u.role = role
	u.updatedAt = time.Now()
	return nil
}

// ChangeStatus moves the account to a new status.
func (u *User) ChangeStatus(status vo.Status) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid user status: %s", status)
	}
	u.status = status
	u.updatedAt = time.Now()
	return nil
}

// RecordLogin marks a successful sign-in.
func (u *User) RecordLogin(at time.Time) {
	u.lastLoginAt = &at
	u.updatedAt = time.Now()
}

// Activate re-enables a deactivated account.
func (u *User) Activate() {
	if u.status == vo.StatusActive {
		return
	}
	u.status = vo.StatusActive
	u.updatedAt = time.Now()
}

// Deactivate disables the account without deleting it.
func (u *User) Deactivate() {
	if u.status == vo.StatusInactive {
		return
	}
	u.status = vo.StatusInactive
	u.updatedAt = time.Now()
}
