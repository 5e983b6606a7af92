package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdesk/taskdesk-api/internal/models"
	"github.com/taskdesk/taskdesk-api/internal/services"
)

func TestToTaskDTO_SkipsMissingAssignees(t *testing.T) {
	task := models.Task{
		ID:     3,
		Title:  "Review",
		Status: models.TaskStatusInProgress,
		TodoChecklist: []models.TodoItem{
			{Text: "read", Completed: true},
			{Text: "comment"},
		},
		Assignments: []models.TaskAssignment{
			{TaskID: 3, UserID: 1, User: models.User{ID: 1, Name: "Ann", Email: "ann@example.com"}},
			{TaskID: 3, UserID: 2},
		},
	}

	dto := ToTaskDTO(task)

	require.Len(t, dto.AssignedTo, 1)
	assert.Equal(t, "Ann", dto.AssignedTo[0].Name)
	assert.Equal(t, 1, dto.CompletedTodoCount)
	assert.Nil(t, dto.Creator)
	assert.NotNil(t, dto.Attachments)
}

func TestToTaskDTO_JSONShape(t *testing.T) {
	body, err := json.Marshal(ToTaskDTO(models.Task{ID: 1, CreatorID: 9}))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, []interface{}{}, decoded["assignedTo"])
	assert.Equal(t, []interface{}{}, decoded["todoChecklist"])
	assert.EqualValues(t, 9, decoded["createdBy"])
	assert.Contains(t, decoded, "completedTodoCount")
	assert.NotContains(t, decoded, "creator")
}

func TestToUserDTO_OmitsCredential(t *testing.T) {
	body, err := json.Marshal(ToUserDTO(models.User{ID: 1, Email: "a@example.com", PasswordHash: "secret-hash"}))
	require.NoError(t, err)
	assert.NotContains(t, string(body), "secret-hash")
	assert.NotContains(t, string(body), "password")
}

func TestToDashboardDTO(t *testing.T) {
	created := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	dashboard := services.SummarizeTasks([]models.Task{
		{ID: 1, Status: models.TaskStatusInProgress, Priority: models.TaskPriorityHigh, DueDate: created.Add(time.Hour), CreatedAt: created},
		{ID: 2, Status: models.TaskStatusCompleted, Priority: models.TaskPriorityLow, DueDate: created, CreatedAt: created},
	}, created)

	dto := ToDashboardDTO(dashboard)

	assert.Equal(t, DashboardStatisticsDTO{TotalTasks: 2, CompletedTasks: 1}, dto.Statistics)
	assert.Equal(t, map[string]int{"Pending": 0, "InProgress": 1, "Completed": 1, "All": 2}, dto.Charts.TaskDistribution)
	assert.Equal(t, map[string]int{"Low": 1, "Medium": 0, "High": 1}, dto.Charts.TaskPriorityLevels)
	require.Len(t, dto.RecentTasks, 2)
	assert.Equal(t, uint64(1), dto.RecentTasks[0].ID)
}
