package auth

import (
	"context"

	"subhub/internal/application/auth/dto"
	domainuser "subhub/internal/domain/user"
	uservo "subhub/internal/domain/user/valueobjects"
	"subhub/internal/infrastructure/identity"
	"subhub/internal/shared/biztime"
	"subhub/internal/shared/errors"
	"subhub/internal/shared/logger"
)

// Service delegates credential handling to the identity provider and keeps
// the local user mirror in sync.
type Service struct {
	identityClient *identity.Client
	userRepo       domainuser.Repository
	logger         logger.Interface
}

func NewService(identityClient *identity.Client, userRepo domainuser.Repository, logger logger.Interface) *Service {
	return &Service{
		identityClient: identityClient,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// SignUp registers the account with the identity provider and mirrors it
// locally, keyed by the provider's subject id.
func (s *Service) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.UserDTO, error) {
	email, err := uservo.NewEmail(req.Email)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.NewConflictError("email already registered")
	}

	metadata := map[string]interface{}{}
	if req.FullName != nil {
		metadata["full_name"] = *req.FullName
	}

	account, err := s.identityClient.SignUp(ctx, email.String(), req.Password, metadata)
	if err != nil {
		return nil, err
	}

	user, err := domainuser.NewUser(account.ID, email)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	user.UpdateProfile(req.FullName, req.Company, nil, nil)

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("email already registered")
		}
		return nil, err
	}

	s.logger.Infow("user signed up", "user_id", user.ID(), "subject_id", account.ID)
	return dto.ToUserDTO(user), nil
}

// SignIn verifies credentials with the identity provider and stamps the
// local user's last login.
func (s *Service) SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.SessionDTO, error) {
	session, err := s.identityClient.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if session.User == nil {
		return nil, errors.NewInternalError("identity provider returned no account")
	}

	user, err := s.userRepo.GetBySubjectID(ctx, session.User.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.NewNotFoundError("no account found for these credentials")
	}
	if !user.IsActive() {
		return nil, errors.NewForbiddenError("account is not active")
	}

	user.RecordLogin(biztime.Now())
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Warnw("failed to record login time", "user_id", user.ID(), "error", err)
	}

	return toSessionDTO(session, user), nil
}

// SignOut revokes the session at the identity provider.
func (s *Service) SignOut(ctx context.Context, accessToken string) error {
	return s.identityClient.SignOut(ctx, accessToken)
}

// ResetPassword asks the identity provider to send a recovery email. Unknown
// addresses are not reported to the caller.
func (s *Service) ResetPassword(ctx context.Context, email string) error {
	if err := s.identityClient.ResetPassword(ctx, email); err != nil {
		s.logger.Warnw("password reset request failed", "error", err)
	}
	return nil
}

// UpdatePassword verifies the current password before changing it.
func (s *Service) UpdatePassword(ctx context.Context, accessToken, email string, req *dto.UpdatePasswordRequest) error {
	return s.identityClient.UpdatePassword(ctx, accessToken, email, req.CurrentPassword, req.NewPassword)
}

// RefreshToken exchanges a refresh token for a new session.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*dto.SessionDTO, error) {
	session, err := s.identityClient.RefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	var user *domainuser.User
	if session.User != nil {
		user, err = s.userRepo.GetBySubjectID(ctx, session.User.ID)
		if err != nil {
			return nil, err
		}
	}
	return toSessionDTO(session, user), nil
}

// GetCurrentUser returns the local account for a verified subject id.
func (s *Service) GetCurrentUser(ctx context.Context, subjectID string) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user not found")
	}
	return dto.ToUserDTO(user), nil
}

// UpdateProfile applies a partial profile update to the caller's account.
func (s *Service) UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateProfileRequest) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	user.UpdateProfile(req.FullName, req.Company, req.Phone, req.AvatarURL)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Infow("profile updated", "user_id", userID)
	return dto.ToUserDTO(user), nil
}

func toSessionDTO(session *identity.Session, user *domainuser.User) *dto.SessionDTO {
	return &dto.SessionDTO{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    session.TokenType,
		ExpiresIn:    session.ExpiresIn,
		User:         dto.ToUserDTO(user),
	}
}
