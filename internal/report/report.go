// Package report encodes task and user reports as xlsx workbooks.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	TasksSheet = "Tasks"
	UsersSheet = "Users"

	dueDateLayout = "2006-01-02"
)

var (
	taskHeaders = []string{"Task ID", "Title", "Description", "Priority", "Status", "Due Date", "Assigned To"}
	userHeaders = []string{"User Name", "Email", "Total Assigned Tasks", "Pending Tasks", "In Progress Tasks", "Completed Tasks"}
)

// TaskRow is one line of the task report.
type TaskRow struct {
	ID          uint64
	Title       string
	Description string
	Priority    string
	Status      string
	DueDate     time.Time
	Assignees   []string
}

// UserRow is one line of the user report.
type UserRow struct {
	Name       string
	Email      string
	Total      int
	Pending    int
	InProgress int
	Completed  int
}

// WriteTasks writes a workbook with one row per task.
func WriteTasks(w io.Writer, rows []TaskRow) error {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = []interface{}{
			row.ID,
			row.Title,
			row.Description,
			row.Priority,
			row.Status,
			row.DueDate.Format(dueDateLayout),
			strings.Join(row.Assignees, ", "),
		}
	}
	return writeSheet(w, TasksSheet, taskHeaders, values)
}

// WriteUsers writes a workbook with one row per user.
func WriteUsers(w io.Writer, rows []UserRow) error {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = []interface{}{
			row.Name,
			row.Email,
			row.Total,
			row.Pending,
			row.InProgress,
			row.Completed,
		}
	}
	return writeSheet(w, UsersSheet, userHeaders, values)
}

func writeSheet(w io.Writer, sheet string, headers []string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	lastColumn, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastColumn, 22); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}
	return nil
}
