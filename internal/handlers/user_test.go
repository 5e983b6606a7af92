package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/taskdesk/taskdesk-api/internal/dto"
	"github.com/taskdesk/taskdesk-api/internal/report"
	"github.com/xuri/excelize/v2"
)

func (suite *HandlerTestSuite) TestListUsers() {
	suite.createTask(map[string]interface{}{"title": "One", "assignedTo": []uint64{suite.member.ID}})

	w := suite.do(http.MethodGet, "/api/users", suite.adminToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var users []dto.UserWithTaskCountsDTO
	suite.decode(w, &users)
	suite.Require().Len(users, 2)
	suite.Equal(suite.member.ID, users[0].ID)
	suite.Equal(1, users[0].PendingTasks)
	suite.NotContains(w.Body.String(), "password")

	w = suite.do(http.MethodGet, "/api/users", suite.memberToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestGetAndDeleteUser() {
	path := fmt.Sprintf("/api/users/%d", suite.member.ID)

	w := suite.do(http.MethodGet, path, suite.adminToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var user dto.UserWithTaskCountsDTO
	suite.decode(w, &user)
	suite.Equal("mel@example.com", user.Email)

	w = suite.do(http.MethodDelete, path, suite.adminToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, path, suite.adminToken, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	// The deleted user's token no longer authenticates.
	w = suite.do(http.MethodGet, "/api/auth/profile", suite.memberToken, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodGet, "/api/users/zero", suite.adminToken, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestExportReports() {
	suite.createTask(map[string]interface{}{"title": "Exported", "assignedTo": []uint64{suite.member.ID}})

	w := suite.do(http.MethodGet, "/api/reports/export/tasks", suite.adminToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal(report.ContentType, w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), "tasks_report.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	suite.Require().NoError(err)
	rows, err := f.GetRows(report.TasksSheet)
	suite.Require().NoError(err)
	suite.Require().NoError(f.Close())
	suite.Require().Len(rows, 2)
	suite.Equal("Exported", rows[1][1])

	w = suite.do(http.MethodGet, "/api/reports/export/users", suite.adminToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Disposition"), "users_report.xlsx")

	w = suite.do(http.MethodGet, "/api/reports/export/users", suite.memberToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)
}
