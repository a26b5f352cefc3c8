package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/r4mxae/project-hub/internal/models"
	"github.com/r4mxae/project-hub/internal/planner"
)

// AnalysisPDF renders the analysis summary as a printable report.
func AnalysisPDF(sum planner.AnalysisSummary, now time.Time) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Project Analysis Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Project Analysis Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", planner.FormatDMY(now)))
	pdf.Ln(12)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
	}
	line := func(label, value string) {
		pdf.Cell(70, 6, label)
		pdf.Cell(0, 6, value)
		pdf.Ln(6)
	}
	amount := func(v float64) string {
		return "AED " + planner.FormatAmount(v)
	}

	section("Projects")
	for _, st := range []models.ProjectStatus{
		models.ProjectPlanning, models.ProjectInProgress,
		models.ProjectOnHold, models.ProjectCompleted,
	} {
		line(fmt.Sprintf("Status %s", st), fmt.Sprintf("%d", sum.ProjectStatus[st]))
	}
	line("Submitted", fmt.Sprintf("%d", sum.SubmittedProjects))
	line("Overdue", fmt.Sprintf("%d", sum.OverdueProjects))
	pdf.Ln(4)

	section("Tasks")
	for _, st := range []models.TaskStatus{
		models.TaskTodo, models.TaskInProgress,
		models.TaskReview, models.TaskCompleted,
	} {
		line(fmt.Sprintf("Status %s", st), fmt.Sprintf("%d", sum.TaskStatus[st]))
	}
	line("Overdue", fmt.Sprintf("%d", sum.OverdueTasks))
	pdf.Ln(4)

	section("Budget")
	line("Total budget", amount(sum.TotalBudget))
	line("Total spent", amount(sum.TotalSpent))
	line("Total savings", amount(sum.TotalSavings))
	line("Savings percentage", fmt.Sprintf("%.1f%%", sum.SavingsPercentage))
	pdf.Ln(4)

	section("Procurement")
	line("Total allocated budget", amount(sum.TotalProcurementBudget))
	line("Submitted items", fmt.Sprintf("%d", sum.SubmittedProcurement))
	line("Pending items", fmt.Sprintf("%d", sum.PendingProcurement))
	line("Submitted budget", amount(sum.SubmittedProcurementBudget))
	pdf.Ln(4)

	section("Work")
	line("Total hours", fmt.Sprintf("%.1f", sum.TotalWorkHours))
	line("Sessions", fmt.Sprintf("%d", sum.TotalWorkSessions))
	pdf.Ln(4)

	if len(sum.BudgetBySector) > 0 {
		section("Budget by Sector")
		for _, s := range sum.BudgetBySector {
			sector := s.Sector
			if sector == "" {
				sector = "(unassigned)"
			}
			line(sector, fmt.Sprintf("budget %s, spent %s", amount(s.Budget), amount(s.Spent)))
		}
		pdf.Ln(4)
	}

	if len(sum.MonthlyHours) > 0 {
		section("Monthly Work Hours")
		for _, m := range sum.MonthlyHours {
			line(m.Month, fmt.Sprintf("%.1f h", m.Hours))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
