package mappers

import (
	"fmt"

	"subhub/internal/domain/user"
	uservo "subhub/internal/domain/user/valueobjects"
	"subhub/internal/infrastructure/persistence/models"
	"subhub/internal/shared/authorization"
)

type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.User, error)
	ToModel(entity *user.User) (*models.UserModel, error)
	ToEntities(models []*models.UserModel) ([]*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	email, err := uservo.NewEmail(model.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email: %w", err)
	}

	status, err := uservo.NewStatus(model.Status)
	if err != nil {
		return nil, err
	}

	entity, err := user.ReconstructUser(
		model.ID,
		model.SubjectID,
		email,
		model.FullName,
		model.Company,
		model.Phone,
		model.AvatarURL,
		authorization.ParseUserRole(model.Role),
		status,
		model.IsSuperuser,
		model.LastLoginAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user: %w", err)
	}

	return entity, nil
}

func (m *UserMapperImpl) ToModel(entity *user.User) (*models.UserModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.UserModel{
		ID:          entity.ID(),
		SubjectID:   entity.SubjectID(),
		Email:       entity.Email().String(),
		FullName:    entity.FullName(),
		Company:     entity.Company(),
		Phone:       entity.Phone(),
		AvatarURL:   entity.AvatarURL(),
		Role:        entity.Role().String(),
		Status:      entity.Status().String(),
		IsSuperuser: entity.IsSuperuser(),
		LastLoginAt: entity.LastLoginAt(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

func (m *UserMapperImpl) ToEntities(userModels []*models.UserModel) ([]*user.User, error) {
	if userModels == nil {
		return nil, nil
	}

	entities := make([]*user.User, 0, len(userModels))
	for _, model := range userModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		if entity != nil {
			entities = append(entities, entity)
		}
	}
	return entities, nil
}
