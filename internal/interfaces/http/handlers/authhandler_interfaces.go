package handlers

import (
	"context"

	authdto "subhub/internal/application/auth/dto"
)

// Service interfaces for AuthHandler

type authService interface {
	SignUp(ctx context.Context, req *authdto.SignUpRequest) (*authdto.UserDTO, error)
	SignIn(ctx context.Context, req *authdto.SignInRequest) (*authdto.SessionDTO, error)
	SignOut(ctx context.Context, accessToken string) error
	ResetPassword(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, accessToken, email string, req *authdto.UpdatePasswordRequest) error
	RefreshToken(ctx context.Context, refreshToken string) (*authdto.SessionDTO, error)
	GetCurrentUser(ctx context.Context, subjectID string) (*authdto.UserDTO, error)
	UpdateProfile(ctx context.Context, userID uint, req *authdto.UpdateProfileRequest) (*authdto.UserDTO, error)
}
