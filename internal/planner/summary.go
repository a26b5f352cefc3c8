package planner

import (
	"time"

	"github.com/r4mxae/project-hub/internal/models"
)

// DashboardSummary is the stats block of the dashboard view.
type DashboardSummary struct {
	TotalProjects      int     `json:"totalProjects"`
	ActiveProjects     int     `json:"activeProjects"`
	CompletedProjects  int     `json:"completedProjects"`
	TotalTasks         int     `json:"totalTasks"`
	ActiveTasks        int     `json:"activeTasks"`
	CompletedTasks     int     `json:"completedTasks"`
	OverdueTasks       int     `json:"overdueTasks"`
	ProcurementItems   int     `json:"procurementItems"`
	PendingProcurement int     `json:"pendingProcurement"`
	TotalBudget        float64 `json:"totalBudget"`
	TotalSpent         float64 `json:"totalSpent"`
	TotalSavings       float64 `json:"totalSavings"`

	ProjectStatus map[models.ProjectStatus]int `json:"projectStatus"`
	TaskPriority  map[models.TaskPriority]int  `json:"taskPriority"` // non-completed tasks only

	BudgetByProject []BudgetEntry `json:"budgetByProject"`
}

type BudgetEntry struct {
	Name   string  `json:"name"`
	Budget float64 `json:"budget"`
	Spent  float64 `json:"spent"`
}

func BuildDashboard(projects []models.Project, tasks []models.Task, items []models.ProcurementItem, today time.Time) DashboardSummary {
	sum := DashboardSummary{
		TotalProjects:    len(projects),
		TotalTasks:       len(tasks),
		ProcurementItems: len(items),
		ProjectStatus:    make(map[models.ProjectStatus]int),
		TaskPriority:     make(map[models.TaskPriority]int),
	}

	for _, p := range projects {
		sum.ProjectStatus[p.Status]++
		sum.TotalBudget += p.Budget
		sum.TotalSpent += p.Spent
		switch p.Status {
		case models.ProjectInProgress:
			sum.ActiveProjects++
		case models.ProjectCompleted:
			sum.CompletedProjects++
		}
		sum.BudgetByProject = append(sum.BudgetByProject, BudgetEntry{Name: p.Name, Budget: p.Budget, Spent: p.Spent})
	}
	sum.TotalSavings = sum.TotalBudget - sum.TotalSpent

	for _, t := range tasks {
		if t.Status == models.TaskCompleted {
			sum.CompletedTasks++
			continue
		}
		sum.ActiveTasks++
		sum.TaskPriority[t.Priority]++
		if days, ok := DaysUntil(t.DueDate, today); ok && days < 0 {
			sum.OverdueTasks++
		}
	}

	for _, it := range items {
		if !it.IsSubmitted {
			sum.PendingProcurement++
		}
	}

	return sum
}

// UrgencyStats counts unsubmitted procurement items per urgency tier of
// their recommended PR date.
type UrgencyStats struct {
	Overdue int `json:"overdue"`
	Urgent  int `json:"urgent"`
	Soon    int `json:"soon"`
}

func BuildUrgencyStats(items []models.ProcurementItem, today time.Time) UrgencyStats {
	var stats UrgencyStats
	for _, it := range items {
		if it.IsSubmitted || it.RecommendedPRDate == "" {
			continue
		}
		switch u, _ := ClassifyDate(it.RecommendedPRDate, today); u {
		case UrgencyOverdue:
			stats.Overdue++
		case UrgencyUrgent:
			stats.Urgent++
		case UrgencySoon:
			stats.Soon++
		}
	}
	return stats
}

// UpcomingItems filters the unsubmitted items whose recommended PR date
// falls in the given month, sorted by that date. The upcoming view only
// exposes the list from the 24th of the current month onwards; that gate
// is the caller's.
func UpcomingItems(items []models.ProcurementItem, month time.Month, year int) []models.ProcurementItem {
	type dated struct {
		item models.ProcurementItem
		at   time.Time
	}
	var picked []dated
	for _, it := range items {
		if it.IsSubmitted {
			continue
		}
		t, ok := ParseDate(it.RecommendedPRDate)
		if !ok || t.Month() != month || t.Year() != year {
			continue
		}
		picked = append(picked, dated{item: it, at: t})
	}
	// insertion sort keeps it stable for equal dates
	for i := 1; i < len(picked); i++ {
		for j := i; j > 0 && picked[j].at.Before(picked[j-1].at); j-- {
			picked[j], picked[j-1] = picked[j-1], picked[j]
		}
	}
	out := make([]models.ProcurementItem, len(picked))
	for i, d := range picked {
		out[i] = d.item
	}
	return out
}

// AtRiskProjects returns the projects past their expected submission date
// that have not been submitted.
func AtRiskProjects(projects []models.Project, today time.Time) []models.Project {
	var out []models.Project
	for _, p := range projects {
		if p.IsSubmitted {
			continue
		}
		if days, ok := DaysUntil(p.ExpectedSubmissionDate, today); ok && days < 0 {
			out = append(out, p)
		}
	}
	return out
}

// SavingsRow is one completed project's budget outcome.
type SavingsRow struct {
	ProjectID         uint    `json:"projectId"`
	Name              string  `json:"name"`
	Sector            string  `json:"sector"`
	Department        string  `json:"department"`
	Budget            float64 `json:"budget"`
	Spent             float64 `json:"spent"`
	Savings           float64 `json:"savings"`
	SavingsPercentage float64 `json:"savingsPercentage"`
	CompletedDate     string  `json:"completedDate"`
}

type SavingsReport struct {
	Rows              []SavingsRow `json:"rows"`
	TotalBudget       float64      `json:"totalBudget"`
	TotalSpent        float64      `json:"totalSpent"`
	TotalSavings      float64      `json:"totalSavings"`
	SavingsPercentage float64      `json:"savingsPercentage"`
}

func BuildSavings(projects []models.Project) SavingsReport {
	var rep SavingsReport
	for _, p := range projects {
		if p.Status != models.ProjectCompleted {
			continue
		}
		row := SavingsRow{
			ProjectID:     p.ID,
			Name:          p.Name,
			Sector:        p.Sector,
			Department:    p.Department,
			Budget:        p.Budget,
			Spent:         p.Spent,
			Savings:       p.Budget - p.Spent,
			CompletedDate: p.SubmittedDate,
		}
		if row.CompletedDate == "" {
			row.CompletedDate = "N/A"
		}
		if p.Budget > 0 {
			row.SavingsPercentage = row.Savings / p.Budget * 100
		}
		rep.Rows = append(rep.Rows, row)
		rep.TotalBudget += p.Budget
		rep.TotalSpent += p.Spent
	}
	rep.TotalSavings = rep.TotalBudget - rep.TotalSpent
	if rep.TotalBudget > 0 {
		rep.SavingsPercentage = rep.TotalSavings / rep.TotalBudget * 100
	}
	return rep
}
