package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/project-tracker-api/internal/models"
)

type ProjectServiceTestSuite struct {
	serviceSuite
}

func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}

func (s *ProjectServiceTestSuite) TestCreateAndFind() {
	project := s.createProject("Apollo")

	s.NotEqual(uuid.Nil, project.ID)
	s.False(project.CreatedAt.IsZero())

	found, err := s.projects.FindByID(s.ctx, project.ID, false)
	s.Require().NoError(err)
	s.Equal("Apollo", found.Name)
	s.Empty(found.Users)
}

func (s *ProjectServiceTestSuite) TestFindByID_NotFound() {
	_, err := s.projects.FindByID(s.ctx, uuid.New(), true)
	s.ErrorIs(err, ErrProjectNotFound)
}

func (s *ProjectServiceTestSuite) TestUpdate() {
	project := s.createProject("Apollo")
	description := "Moon landing"

	updated, err := s.projects.Update(s.ctx, project.ID, UpdateProjectInput{Description: &description})

	s.Require().NoError(err)
	s.Equal("Apollo", updated.Name)
	s.Equal("Moon landing", updated.Description)
}

func (s *ProjectServiceTestSuite) TestUpdate_KeepsMembers() {
	project := s.createProject("Apollo")
	user := s.createUser("a@x.com")
	_, err := s.projects.AddUser(s.ctx, project.ID, user.ID)
	s.Require().NoError(err)
	name := "Artemis"

	_, err = s.projects.Update(s.ctx, project.ID, UpdateProjectInput{Name: &name})
	s.Require().NoError(err)

	found, err := s.projects.FindByID(s.ctx, project.ID, true)
	s.Require().NoError(err)
	s.Equal("Artemis", found.Name)
	s.Len(found.Users, 1)
}

func (s *ProjectServiceTestSuite) TestAddUser_ReturnsMembers() {
	project := s.createProject("Apollo")
	user := s.createUser("a@x.com")

	updated, err := s.projects.AddUser(s.ctx, project.ID, user.ID)

	s.Require().NoError(err)
	s.Require().Len(updated.Users, 1)
	s.Equal(user.ID, updated.Users[0].ID)
}

func (s *ProjectServiceTestSuite) TestAddUser_Twice() {
	project := s.createProject("Apollo")
	user := s.createUser("a@x.com")
	_, err := s.projects.AddUser(s.ctx, project.ID, user.ID)
	s.Require().NoError(err)

	_, err = s.projects.AddUser(s.ctx, project.ID, user.ID)

	s.ErrorIs(err, ErrAlreadyProjectMember)
}

func (s *ProjectServiceTestSuite) TestAddUser_MissingReferences() {
	project := s.createProject("Apollo")
	user := s.createUser("a@x.com")

	_, err := s.projects.AddUser(s.ctx, uuid.New(), user.ID)
	s.ErrorIs(err, ErrProjectNotFound)

	_, err = s.projects.AddUser(s.ctx, project.ID, uuid.New())
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *ProjectServiceTestSuite) TestRemoveUser_NotMember() {
	project := s.createProject("Apollo")
	user := s.createUser("a@x.com")

	_, err := s.projects.RemoveUser(s.ctx, project.ID, user.ID)

	s.ErrorIs(err, ErrNotProjectMember)
}

func (s *ProjectServiceTestSuite) TestAddThenRemove_RestoresMembership() {
	project := s.createProject("Apollo")
	user := s.createUser("a@x.com")

	_, err := s.projects.AddUser(s.ctx, project.ID, user.ID)
	s.Require().NoError(err)
	updated, err := s.projects.RemoveUser(s.ctx, project.ID, user.ID)
	s.Require().NoError(err)

	s.Empty(updated.Users)
	var count int64
	s.Require().NoError(s.db.Model(&models.ProjectMember{}).Count(&count).Error)
	s.Zero(count)
}

func (s *ProjectServiceTestSuite) TestFindByName_Scenario() {
	user := s.createUser("a@x.com")
	project := s.createProject("Apollo")
	_, err := s.projects.AddUser(s.ctx, project.ID, user.ID)
	s.Require().NoError(err)

	found, err := s.projects.FindByName(s.ctx, "Apollo", user.ID)
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(project.ID, found[0].ID)
	s.Len(found[0].Users, 1)

	_, err = s.projects.RemoveUser(s.ctx, project.ID, user.ID)
	s.Require().NoError(err)

	_, err = s.projects.FindByName(s.ctx, "Apollo", user.ID)
	s.ErrorIs(err, ErrProjectNotFound)
}

func (s *ProjectServiceTestSuite) TestFindByName_NewestFirstAndOnlyMemberships() {
	user := s.createUser("a@x.com")
	older := s.createProject("Apollo")
	newer := s.createProject("Apollo")
	notMine := s.createProject("Apollo")
	s.createProject("Gemini")

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(s.db.Model(&models.Project{}).Where("id = ?", older.ID).UpdateColumn("created_at", base).Error)
	s.Require().NoError(s.db.Model(&models.Project{}).Where("id = ?", newer.ID).UpdateColumn("created_at", base.Add(time.Hour)).Error)

	for _, p := range []*models.Project{older, newer} {
		_, err := s.projects.AddUser(s.ctx, p.ID, user.ID)
		s.Require().NoError(err)
	}

	found, err := s.projects.FindByName(s.ctx, "Apollo", user.ID)

	s.Require().NoError(err)
	s.Require().Len(found, 2)
	s.Equal(newer.ID, found[0].ID)
	s.Equal(older.ID, found[1].ID)
	for _, p := range found {
		s.NotEqual(notMine.ID, p.ID)
	}
}

func (s *ProjectServiceTestSuite) TestFindByName_UserMissing() {
	_, err := s.projects.FindByName(s.ctx, "Apollo", uuid.New())
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *ProjectServiceTestSuite) TestMembers_HideSoftDeletedUsers() {
	project := s.createProject("Apollo")
	user := s.createUser("a@x.com")
	_, err := s.projects.AddUser(s.ctx, project.ID, user.ID)
	s.Require().NoError(err)

	_, err = s.users.Delete(s.ctx, user.ID)
	s.Require().NoError(err)

	found, err := s.projects.FindByID(s.ctx, project.ID, true)
	s.Require().NoError(err)
	s.Empty(found.Users)
}

func (s *ProjectServiceTestSuite) TestDelete_CascadesToTasksAndMemberships() {
	user := s.createUser("a@x.com")
	project := s.createProject("Apollo")
	_, err := s.projects.AddUser(s.ctx, project.ID, user.ID)
	s.Require().NoError(err)
	t1 := s.createTask("one", models.TaskStatusTodo, user.ID, project.ID)
	t2 := s.createTask("two", models.TaskStatusDone, user.ID, project.ID)

	status, err := s.projects.Delete(s.ctx, project.ID)
	s.Require().NoError(err)
	s.True(status.Deleted)

	for _, id := range []uuid.UUID{t1.ID, t2.ID} {
		_, err := s.tasks.FindByID(s.ctx, id, false, false)
		s.ErrorIs(err, ErrTaskNotFound)
	}

	var members int64
	s.Require().NoError(s.db.Model(&models.ProjectMember{}).Count(&members).Error)
	s.Zero(members)

	_, err = s.users.FindByID(s.ctx, user.ID)
	s.NoError(err)

	_, err = s.projects.Delete(s.ctx, project.ID)
	s.ErrorIs(err, ErrProjectNotFound)
}
