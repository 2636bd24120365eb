package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// serviceSuite wires every service against a fresh in-memory SQLite database.
type serviceSuite struct {
	suite.Suite
	ctx      context.Context
	db       *gorm.DB
	users    *UserService
	projects *ProjectService
	tasks    *TaskService
	keys     repository.APIKeyRepository
	log      *zap.Logger
}

// SetupTest runs before each test
func (s *serviceSuite) SetupTest() {
	var err error

	s.db, err = gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	s.log = zap.NewNop()
	s.Require().NoError(database.Migrate(s.db, s.log))

	s.ctx = context.Background()
	s.users = NewUserService(repository.NewUserRepository(s.db), s.log)
	s.projects = NewProjectService(repository.NewProjectRepository(s.db), s.users, s.log)
	s.tasks = NewTaskService(repository.NewTaskRepository(s.db), s.users, s.projects, s.log)
	s.keys = repository.NewAPIKeyRepository(s.db)
}

// TearDownTest runs after each test
func (s *serviceSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *serviceSuite) createUser(email string) *models.User {
	user, err := s.users.Create(s.ctx, CreateUserInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Location:  "London",
	})
	s.Require().NoError(err)
	return user
}

func (s *serviceSuite) createProject(name string) *models.Project {
	project, err := s.projects.Create(s.ctx, CreateProjectInput{
		Name:        name,
		Description: "Test Description",
	})
	s.Require().NoError(err)
	return project
}

func (s *serviceSuite) createTask(name string, status models.TaskStatus, userID, projectID uuid.UUID) *models.Task {
	task, err := s.tasks.Create(s.ctx, CreateTaskInput{
		Name:        name,
		Description: fmt.Sprintf("%s description", name),
		Status:      status,
		UserID:      userID,
		ProjectID:   projectID,
	})
	s.Require().NoError(err)
	return task
}
