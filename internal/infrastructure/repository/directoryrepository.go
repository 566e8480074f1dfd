package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"registrar/internal/domain/directory"
	"registrar/internal/infrastructure/persistence/models"
	apperrors "registrar/internal/shared/errors"
	"registrar/internal/shared/logger"
)

var _ directory.Repository = (*DirectoryRepository)(nil)

// DirectoryRepository implements the directory read contract over gorm.
type DirectoryRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewDirectoryRepository(db *gorm.DB, log logger.Interface) *DirectoryRepository {
	return &DirectoryRepository{
		db:     db,
		logger: log,
	}
}

func (r *DirectoryRepository) GetProgram(ctx context.Context, programUUID string) (*directory.Program, error) {
	var model models.ProgramModel
	err := r.db.WithContext(ctx).
		Joins("Organization").
		Where("programs.uuid = ?", programUUID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("program is not registered", programUUID)
		}
		r.logger.Errorw("failed to read program", "program_uuid", programUUID, "error", err)
		return nil, apperrors.NewStoreError("failed to read program", err.Error())
	}

	return &directory.Program{
		UUID:            model.UUID,
		Key:             model.Key,
		Title:           model.Title,
		ManagingOrgUUID: model.Organization.UUID,
	}, nil
}

func (r *DirectoryRepository) GetOrganization(ctx context.Context, orgUUID string) (*directory.Organization, error) {
	var model models.OrganizationModel
	err := r.db.WithContext(ctx).Where("uuid = ?", orgUUID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("organization is not registered", orgUUID)
		}
		r.logger.Errorw("failed to read organization", "org_uuid", orgUUID, "error", err)
		return nil, apperrors.NewStoreError("failed to read organization", err.Error())
	}

	return &directory.Organization{
		UUID: model.UUID,
		Key:  model.Key,
		Name: model.Name,
	}, nil
}

func (r *DirectoryRepository) ManagingOrganizationOf(ctx context.Context, programUUID string) (string, error) {
	program, err := r.GetProgram(ctx, programUUID)
	if err != nil {
		return "", err
	}
	return program.ManagingOrgUUID, nil
}
