package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/r4mxae/project-hub/internal/models"
	"github.com/r4mxae/project-hub/internal/planner"
)

// writeSheet renames the default sheet and fills it with a header row
// followed by the data rows.
func writeSheet(f *excelize.File, name string, headers []string, rows [][]any) error {
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return err
	}
	return fillSheet(f, name, headers, rows)
}

func addSheet(f *excelize.File, name string, headers []string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	return fillSheet(f, name, headers, rows)
}

func fillSheet(f *excelize.File, name string, headers []string, rows [][]any) error {
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(name, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func hours(seconds int) float64 {
	return float64(int(float64(seconds)/3600*100+0.5)) / 100
}

func workLogRows(logs []models.WorkLog, owner string) ([][]any, int) {
	var rows [][]any
	total := 0
	for _, l := range logs {
		rows = append(rows, []any{
			l.Date,
			owner,
			hours(l.Duration),
			l.LogUpdate,
			l.UpcomingAction,
		})
		total += l.Duration
	}
	return rows, total
}

var workLogHeaders = []string{"Date", "Project / Task", "Hours", "Log Update", "Upcoming Action"}

// WorkLogsWorkbook renders every work log across projects and tasks into
// one sheet, closed by a TOTAL row.
func WorkLogsWorkbook(projects []models.Project, tasks []models.Task) (*bytes.Buffer, error) {
	var rows [][]any
	total := 0
	for _, p := range projects {
		r, t := workLogRows(p.WorkLogs, p.Name)
		rows = append(rows, r...)
		total += t
	}
	for _, t := range tasks {
		owner := t.Title
		if name := planner.ProjectName(projects, t.ProjectID); name != "" {
			owner = fmt.Sprintf("%s (%s)", t.Title, name)
		}
		r, d := workLogRows(t.WorkLogs, owner)
		rows = append(rows, r...)
		total += d
	}
	rows = append(rows, []any{"TOTAL", "", hours(total), "", ""})

	f := excelize.NewFile()
	if err := writeSheet(f, "Work Logs", workLogHeaders, rows); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}

// SavingsWorkbook renders the savings report, one row per completed
// project plus a TOTAL row.
func SavingsWorkbook(report planner.SavingsReport) (*bytes.Buffer, error) {
	headers := []string{"Project", "Sector", "Department", "Budget", "Spent", "Savings", "Savings %", "Completed Date"}
	var rows [][]any
	for _, r := range report.Rows {
		rows = append(rows, []any{
			r.Name, r.Sector, r.Department,
			r.Budget, r.Spent, r.Savings,
			fmt.Sprintf("%.1f%%", r.SavingsPercentage),
			r.CompletedDate,
		})
	}
	rows = append(rows, []any{
		"TOTAL", "", "",
		report.TotalBudget, report.TotalSpent, report.TotalSavings,
		fmt.Sprintf("%.1f%%", report.SavingsPercentage),
		"",
	})

	f := excelize.NewFile()
	if err := writeSheet(f, "Savings", headers, rows); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}

// CompletedWorkbook renders the completed projects and the completed
// tasks on separate sheets.
func CompletedWorkbook(projects []models.Project, tasks []models.Task, allProjects []models.Project) (*bytes.Buffer, error) {
	projectHeaders := []string{"Project", "Sector", "Department", "Budget", "Spent", "Progress", "Start Date", "End Date", "Submitted Date"}
	var projectRows [][]any
	for _, p := range projects {
		projectRows = append(projectRows, []any{
			p.Name, p.Sector, p.Department,
			p.Budget, p.Spent, p.Progress,
			p.StartDate, p.EndDate, p.SubmittedDate,
		})
	}

	taskHeaders := []string{"Task", "Project", "Priority", "Assignee", "Due Date", "Created Date"}
	var taskRows [][]any
	for _, t := range tasks {
		taskRows = append(taskRows, []any{
			t.Title, planner.ProjectName(allProjects, t.ProjectID),
			string(t.Priority), t.Assignee, t.DueDate, t.CreatedDate,
		})
	}

	f := excelize.NewFile()
	if err := writeSheet(f, "Completed Projects", projectHeaders, projectRows); err != nil {
		return nil, err
	}
	if err := addSheet(f, "Completed Tasks", taskHeaders, taskRows); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}

// ProjectWorkbook renders one project's details plus its work logs.
func ProjectWorkbook(p models.Project) (*bytes.Buffer, error) {
	details := [][]any{
		{"Name", p.Name},
		{"Description", p.Description},
		{"Status", string(p.Status)},
		{"Sector", p.Sector},
		{"Department", p.Department},
		{"Start Date", p.StartDate},
		{"End Date", p.EndDate},
		{"Expected Submission Date", p.ExpectedSubmissionDate},
		{"Submitted Date", p.SubmittedDate},
		{"Budget", p.Budget},
		{"Spent", p.Spent},
		{"Progress", p.Progress},
		{"PR Number", p.PRNumber},
		{"Negotiation Number", p.NegotiationNumber},
	}
	logRows, total := workLogRows(p.WorkLogs, p.Name)
	logRows = append(logRows, []any{"TOTAL", "", hours(total), "", ""})

	f := excelize.NewFile()
	if err := writeSheet(f, "Project", []string{"Field", "Value"}, details); err != nil {
		return nil, err
	}
	if err := addSheet(f, "Work Logs", workLogHeaders, logRows); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}

// TaskWorkbook renders one task's details plus its work logs. The project
// name is resolved by the caller.
func TaskWorkbook(t models.Task, projectName string) (*bytes.Buffer, error) {
	details := [][]any{
		{"Title", t.Title},
		{"Description", t.Description},
		{"Project", projectName},
		{"Status", string(t.Status)},
		{"Priority", string(t.Priority)},
		{"Assignee", t.Assignee},
		{"Due Date", t.DueDate},
		{"Created Date", t.CreatedDate},
	}
	logRows, total := workLogRows(t.WorkLogs, t.Title)
	logRows = append(logRows, []any{"TOTAL", "", hours(total), "", ""})

	f := excelize.NewFile()
	if err := writeSheet(f, "Task", []string{"Field", "Value"}, details); err != nil {
		return nil, err
	}
	if err := addSheet(f, "Work Logs", workLogHeaders, logRows); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}

// ProcurementWorkbook renders the procurement plan in the same column
// order the import accepts, so a round trip needs no remapping.
func ProcurementWorkbook(items []models.ProcurementItem) (*bytes.Buffer, error) {
	headers := []string{
		"Item", "Sector", "Department", "Item Description", "Category",
		"Awarded Before", "Allocated Budget", "Recommended PR Date",
		"Requested Previously", "Prequalification Recommended",
		"Recommended Vendors", "Additional Information", "Item Reference",
		"Status", "Submitted", "Submitted Date",
	}
	var rows [][]any
	for _, it := range items {
		submitted := "No"
		if it.IsSubmitted {
			submitted = "Yes"
		}
		rows = append(rows, []any{
			it.Item, it.Sector, it.Department, it.ItemDescription, it.Category,
			it.AwardedBefore, it.AllocatedBudget, it.RecommendedPRDate,
			it.RequestedPreviously, it.PrequalificationRecommended,
			it.RecommendedVendors, it.AdditionalInformation, it.ItemReference,
			string(it.Status), submitted, it.SubmittedDate,
		})
	}

	f := excelize.NewFile()
	if err := writeSheet(f, "Procurement Plan", headers, rows); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}
