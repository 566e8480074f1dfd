package repository

import (
	"context"
	"log/slog"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"registrar/internal/infrastructure/persistence/models"
	apperrors "registrar/internal/shared/errors"
	"registrar/internal/shared/logger"
)

const (
	orgUUID     = "11111111-1111-1111-1111-111111111111"
	programUUID = "22222222-2222-2222-2222-222222222222"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.OrganizationModel{}, &models.ProgramModel{}))

	org := models.OrganizationModel{UUID: orgUUID, Key: "test-org", Name: "Test Org"}
	require.NoError(t, db.Create(&org).Error)
	require.NoError(t, db.Create(&models.ProgramModel{
		UUID:           programUUID,
		Key:            "test-program",
		Title:          "Test Program",
		OrganizationID: org.ID,
	}).Error)
	return db
}

func newTestRepository(t *testing.T) *DirectoryRepository {
	t.Helper()
	return NewDirectoryRepository(setupTestDB(t), logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler)))
}

func TestGetProgram(t *testing.T) {
	repo := newTestRepository(t)

	program, err := repo.GetProgram(context.Background(), programUUID)
	require.NoError(t, err)
	assert.Equal(t, "test-program", program.Key)
	assert.Equal(t, "Test Program", program.Title)
	assert.Equal(t, orgUUID, program.ManagingOrgUUID)
}

func TestGetProgramNotRegistered(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetProgram(context.Background(), "33333333-3333-3333-3333-333333333333")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestGetOrganization(t *testing.T) {
	repo := newTestRepository(t)

	org, err := repo.GetOrganization(context.Background(), orgUUID)
	require.NoError(t, err)
	assert.Equal(t, "test-org", org.Key)
	assert.Equal(t, "Test Org", org.Name)
}

func TestGetOrganizationNotRegistered(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetOrganization(context.Background(), "33333333-3333-3333-3333-333333333333")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestManagingOrganizationOf(t *testing.T) {
	repo := newTestRepository(t)

	got, err := repo.ManagingOrganizationOf(context.Background(), programUUID)
	require.NoError(t, err)
	assert.Equal(t, orgUUID, got)
}
