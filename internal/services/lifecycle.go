package services

import (
	"math"

	"github.com/taskdesk/taskdesk-api/internal/models"
)

// The lifecycle has two ways of moving a task's status. Checklist edits
// derive progress and status from the items. A direct status change is an
// override: it sets the status as given, and Completed also marks every item
// done. Setting Pending or In Progress directly leaves the checklist and
// progress untouched.

// ChecklistProgress returns the completion percentage of items, rounded to
// the nearest integer. It is 0 only when nothing is completed and 100 only
// when everything is.
func ChecklistProgress(items []models.TodoItem) int {
	total := len(items)
	if total == 0 {
		return 0
	}

	completed := 0
	for _, item := range items {
		if item.Completed {
			completed++
		}
	}

	progress := int(math.Round(100 * float64(completed) / float64(total)))
	switch {
	case completed > 0 && progress == 0:
		return 1
	case completed < total && progress == 100:
		return 99
	}
	return progress
}

// StatusForProgress maps a progress percentage onto its status band.
func StatusForProgress(progress int) models.TaskStatus {
	switch {
	case progress >= 100:
		return models.TaskStatusCompleted
	case progress > 0:
		return models.TaskStatusInProgress
	default:
		return models.TaskStatusPending
	}
}

// applyChecklist replaces the checklist and derives progress and status.
func applyChecklist(task *models.Task, items []models.TodoItem) {
	task.TodoChecklist = append([]models.TodoItem{}, items...)
	task.Progress = ChecklistProgress(task.TodoChecklist)
	task.Status = StatusForProgress(task.Progress)
}

// overrideStatus sets status directly. Completed forces every checklist
// item to completed and progress to 100.
func overrideStatus(task *models.Task, status models.TaskStatus) {
	task.Status = status
	if status != models.TaskStatusCompleted {
		return
	}

	for i := range task.TodoChecklist {
		task.TodoChecklist[i].Completed = true
	}
	task.Progress = 100
}

// newChecklist copies item texts into fresh, incomplete checklist items.
func newChecklist(items []models.TodoItem) []models.TodoItem {
	checklist := make([]models.TodoItem, len(items))
	for i, item := range items {
		checklist[i] = models.TodoItem{Text: item.Text}
	}
	return checklist
}
