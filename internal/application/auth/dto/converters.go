package dto

import domainuser "subhub/internal/domain/user"

func ToUserDTO(u *domainuser.User) *UserDTO {
	if u == nil {
		return nil
	}

	email := ""
	if u.Email() != nil {
		email = u.Email().String()
	}

	return &UserDTO{
		ID:          u.ID(),
		SubjectID:   u.SubjectID(),
		Email:       email,
		FullName:    u.FullName(),
		Company:     u.Company(),
		Phone:       u.Phone(),
		AvatarURL:   u.AvatarURL(),
		Role:        u.Role().String(),
		Status:      u.Status().String(),
		IsSuperuser: u.IsSuperuser(),
		LastLoginAt: u.LastLoginAt(),
		CreatedAt:   u.CreatedAt(),
	}
}
