package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/services"
	"github.com/yukikurage/project-tracker-api/internal/validation"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// handlerSuite runs handlers against real services over in-memory SQLite.
type handlerSuite struct {
	suite.Suite
	ctx      context.Context
	db       *gorm.DB
	users    *services.UserService
	projects *services.ProjectService
	tasks    *services.TaskService
	router   *gin.Engine
}

// SetupTest runs before each test
func (s *handlerSuite) SetupTest() {
	var err error

	s.db, err = gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	log := zap.NewNop()
	s.Require().NoError(database.Migrate(s.db, log))

	s.ctx = context.Background()
	s.users = services.NewUserService(repository.NewUserRepository(s.db), log)
	s.projects = services.NewProjectService(repository.NewProjectRepository(s.db), s.users, log)
	s.tasks = services.NewTaskService(repository.NewTaskRepository(s.db), s.users, s.projects, log)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
	s.Require().NoError(validation.Register())

	s.router = gin.New()
}

// TearDownTest runs after each test
func (s *handlerSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *handlerSuite) do(method, url string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	return s.serve(req)
}

func (s *handlerSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *handlerSuite) decode(w *httptest.ResponseRecorder, out interface{}) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func (s *handlerSuite) errorCode(w *httptest.ResponseRecorder) string {
	var body struct {
		Code string `json:"code"`
	}
	s.decode(w, &body)
	return body.Code
}

func (s *handlerSuite) createUser(email string) *models.User {
	user, err := s.users.Create(s.ctx, services.CreateUserInput{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     email,
		Location:  "Arlington",
	})
	s.Require().NoError(err)
	return user
}

func (s *handlerSuite) createProject(name string) *models.Project {
	project, err := s.projects.Create(s.ctx, services.CreateProjectInput{Name: name})
	s.Require().NoError(err)
	return project
}
