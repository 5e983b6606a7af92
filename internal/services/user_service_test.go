package services

import (
	"bytes"

	"github.com/taskdesk/taskdesk-api/internal/models"
	"github.com/taskdesk/taskdesk-api/internal/report"
	"github.com/xuri/excelize/v2"
)

func (suite *ServiceTestSuite) TestListUsersWithTaskCounts() {
	progressing := suite.createAssigned("Shared", nil, suite.member, suite.outsider)
	suite.createAssigned("Solo", nil, suite.member)
	_, err := suite.service.UpdateTaskStatus(callerFor(suite.admin), progressing.ID, models.TaskStatusInProgress)
	suite.Require().NoError(err)

	users, err := suite.users.ListUsersWithTaskCounts(callerFor(suite.admin))
	suite.Require().NoError(err)
	suite.Require().Len(users, 2)

	suite.Equal(suite.member.ID, users[0].User.ID)
	suite.Equal(StatusSummary{All: 2, Pending: 1, InProgress: 1}, users[0].Counts)
	suite.Equal(suite.outsider.ID, users[1].User.ID)
	suite.Equal(StatusSummary{All: 1, InProgress: 1}, users[1].Counts)

	_, err = suite.users.ListUsersWithTaskCounts(callerFor(suite.member))
	suite.ErrorIs(err, ErrAdminOnly)
}

func (suite *ServiceTestSuite) TestGetUser() {
	suite.createAssigned("Solo", nil, suite.member)

	user, err := suite.users.GetUser(callerFor(suite.admin), suite.member.ID)
	suite.Require().NoError(err)
	suite.Equal("mel@example.com", user.User.Email)
	suite.Equal(1, user.Counts.Pending)

	_, err = suite.users.GetUser(callerFor(suite.admin), 9999)
	suite.ErrorIs(err, ErrUserNotFound)
}

func (suite *ServiceTestSuite) TestDeleteUserKeepsTaskReferences() {
	task := suite.createAssigned("Orphaned", nil, suite.member, suite.outsider)

	suite.ErrorIs(suite.users.DeleteUser(callerFor(suite.member), suite.outsider.ID), ErrAdminOnly)
	suite.ErrorIs(suite.users.DeleteUser(callerFor(suite.admin), 9999), ErrUserNotFound)
	suite.Require().NoError(suite.users.DeleteUser(callerFor(suite.admin), suite.outsider.ID))

	stored, err := suite.service.GetTask(callerFor(suite.admin), task.ID)
	suite.Require().NoError(err)
	suite.Equal([]uint64{suite.member.ID, suite.outsider.ID}, stored.AssigneeIDs())
}

func (suite *ServiceTestSuite) TestUserTaskReportIncludesAdmins() {
	suite.createAssigned("Self", nil, suite.admin)

	rows, err := suite.users.UserTaskReport(callerFor(suite.admin))
	suite.Require().NoError(err)
	suite.Require().Len(rows, 3)
	suite.Equal(suite.admin.ID, rows[0].User.ID)
	suite.Equal(1, rows[0].Counts.All)
	suite.Zero(rows[1].Counts.All)
}

func (suite *ServiceTestSuite) TestExportTasks() {
	task := suite.createAssigned("Quarterly review", nil, suite.member, suite.outsider)
	reports := NewReportService(suite.taskRepo, suite.users)

	var buf bytes.Buffer
	suite.ErrorIs(reports.ExportTasks(callerFor(suite.member), &buf), ErrAdminOnly)
	suite.Require().NoError(reports.ExportTasks(callerFor(suite.admin), &buf))

	f, err := excelize.OpenReader(&buf)
	suite.Require().NoError(err)
	defer f.Close()

	rows, err := f.GetRows(report.TasksSheet)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)
	suite.Equal(task.Title, rows[1][1])
	suite.Equal(string(models.TaskStatusPending), rows[1][4])
	suite.Equal("Mel (mel@example.com), Oz (oz@example.com)", rows[1][6])
}

func (suite *ServiceTestSuite) TestExportUsers() {
	suite.createAssigned("Solo", nil, suite.member)
	reports := NewReportService(suite.taskRepo, suite.users)

	var buf bytes.Buffer
	suite.Require().NoError(reports.ExportUsers(callerFor(suite.admin), &buf))

	f, err := excelize.OpenReader(&buf)
	suite.Require().NoError(err)
	defer f.Close()

	rows, err := f.GetRows(report.UsersSheet)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 4)
	suite.Equal([]string{"Mel", "mel@example.com", "1", "1", "0", "0"}, rows[2])
}
