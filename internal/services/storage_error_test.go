package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var errDriver = errors.New("dial tcp 10.0.0.7:3306: connection reset by peer")

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return db, mock
}

func TestStorageError_FindUser(t *testing.T) {
	db, mock := newMockDB(t)
	users := NewUserService(repository.NewUserRepository(db), zap.NewNop())

	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnError(errDriver)

	_, err := users.FindByID(context.Background(), uuid.New())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)
	assert.NotErrorIs(t, err, ErrUserNotFound)
	assert.NotContains(t, err.Error(), "10.0.0.7")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorageError_CreateUser(t *testing.T) {
	db, mock := newMockDB(t)
	users := NewUserService(repository.NewUserRepository(db), zap.NewNop())

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").WillReturnError(errDriver)
	mock.ExpectRollback()

	_, err := users.Create(context.Background(), CreateUserInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "a@x.com",
		Location:  "London",
	})

	assert.ErrorIs(t, err, ErrStorage)
	assert.NotContains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorageError_DomainCheckRunsFirst(t *testing.T) {
	db, mock := newMockDB(t)
	users := NewUserService(repository.NewUserRepository(db), zap.NewNop())

	existing := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow(existing.String(), "a@x.com"))

	_, err := users.Create(context.Background(), CreateUserInput{Email: "a@x.com"})

	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorageError_CountTasks(t *testing.T) {
	db, mock := newMockDB(t)
	log := zap.NewNop()
	users := NewUserService(repository.NewUserRepository(db), log)
	projects := NewProjectService(repository.NewProjectRepository(db), users, log)
	tasks := NewTaskService(repository.NewTaskRepository(db), users, projects, log)

	userID := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow(userID.String(), "a@x.com"))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `tasks`").WillReturnError(errDriver)

	_, err := tasks.CountByUserAndStatus(context.Background(), userID, models.TaskStatusTodo)

	assert.ErrorIs(t, err, ErrStorage)
	assert.NoError(t, mock.ExpectationsWereMet())
}
