package planner

import (
	"sort"
	"time"

	"github.com/r4mxae/project-hub/internal/models"
)

// AnalysisSummary is the cross-collection report behind the analysis view
// and its PDF export.
type AnalysisSummary struct {
	ProjectStatus map[models.ProjectStatus]int `json:"projectStatus"`
	TaskStatus    map[models.TaskStatus]int    `json:"taskStatus"`
	TaskPriority  map[models.TaskPriority]int  `json:"taskPriority"`

	SubmittedProjects int `json:"submittedProjects"`
	OverdueProjects   int `json:"overdueProjects"`
	OverdueTasks      int `json:"overdueTasks"`

	TotalBudget       float64 `json:"totalBudget"`
	TotalSpent        float64 `json:"totalSpent"`
	TotalSavings      float64 `json:"totalSavings"`
	SavingsPercentage float64 `json:"savingsPercentage"`

	TotalProcurementBudget     float64 `json:"totalProcurementBudget"`
	SubmittedProcurement       int     `json:"submittedProcurement"`
	PendingProcurement         int     `json:"pendingProcurement"`
	SubmittedProcurementBudget float64 `json:"submittedProcurementBudget"`

	TotalWorkHours    float64 `json:"totalWorkHours"`
	TotalWorkSessions int     `json:"totalWorkSessions"`

	BudgetBySector []SectorBudget `json:"budgetBySector"`
	MonthlyHours   []MonthlyHours `json:"monthlyHours"` // last six months with activity
}

type SectorBudget struct {
	Sector  string  `json:"sector"`
	Budget  float64 `json:"budget"`
	Spent   float64 `json:"spent"`
	Savings float64 `json:"savings"`
}

type MonthlyHours struct {
	Month string  `json:"month"` // MM-YYYY
	Hours float64 `json:"hours"`
}

func BuildAnalysis(projects []models.Project, tasks []models.Task, items []models.ProcurementItem, today time.Time) AnalysisSummary {
	sum := AnalysisSummary{
		ProjectStatus: make(map[models.ProjectStatus]int),
		TaskStatus:    make(map[models.TaskStatus]int),
		TaskPriority:  make(map[models.TaskPriority]int),
	}

	var logs []models.WorkLog

	sectorIdx := make(map[string]int)
	for _, p := range projects {
		sum.ProjectStatus[p.Status]++
		if p.IsSubmitted {
			sum.SubmittedProjects++
		}
		sum.TotalBudget += p.Budget
		sum.TotalSpent += p.Spent
		if p.Status != models.ProjectCompleted && !p.IsSubmitted {
			if days, ok := DaysUntil(p.EndDate, today); ok && days < 0 {
				sum.OverdueProjects++
			}
		}

		i, ok := sectorIdx[p.Sector]
		if !ok {
			i = len(sum.BudgetBySector)
			sectorIdx[p.Sector] = i
			sum.BudgetBySector = append(sum.BudgetBySector, SectorBudget{Sector: p.Sector})
		}
		sum.BudgetBySector[i].Budget += p.Budget
		sum.BudgetBySector[i].Spent += p.Spent
		sum.BudgetBySector[i].Savings += p.Budget - p.Spent

		logs = append(logs, p.WorkLogs...)
	}
	sum.TotalSavings = sum.TotalBudget - sum.TotalSpent
	if sum.TotalBudget > 0 {
		sum.SavingsPercentage = sum.TotalSavings / sum.TotalBudget * 100
	}

	for _, t := range tasks {
		sum.TaskStatus[t.Status]++
		sum.TaskPriority[t.Priority]++
		if t.Status != models.TaskCompleted {
			if days, ok := DaysUntil(t.DueDate, today); ok && days < 0 {
				sum.OverdueTasks++
			}
		}
		logs = append(logs, t.WorkLogs...)
	}

	for _, it := range items {
		sum.TotalProcurementBudget += it.AllocatedBudget
		if it.IsSubmitted {
			sum.SubmittedProcurement++
			sum.SubmittedProcurementBudget += it.AllocatedBudget
		} else {
			sum.PendingProcurement++
		}
	}

	sum.TotalWorkSessions = len(logs)
	for _, l := range logs {
		sum.TotalWorkHours += float64(l.Duration) / 3600
	}
	sum.MonthlyHours = monthlyHours(logs)

	return sum
}

func monthlyHours(logs []models.WorkLog) []MonthlyHours {
	type key struct {
		year  int
		month time.Month
	}
	hours := make(map[key]float64)
	for _, l := range logs {
		t, ok := ParseDate(l.Date)
		if !ok {
			continue
		}
		hours[key{t.Year(), t.Month()}] += float64(l.Duration) / 3600
	}

	keys := make([]key, 0, len(hours))
	for k := range hours {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})
	if len(keys) > 6 {
		keys = keys[len(keys)-6:]
	}

	out := make([]MonthlyHours, 0, len(keys))
	for _, k := range keys {
		out = append(out, MonthlyHours{
			Month: time.Date(k.year, k.month, 1, 0, 0, 0, 0, time.UTC).Format("01-2006"),
			Hours: float64(int(hours[k]*10+0.5)) / 10,
		})
	}
	return out
}
