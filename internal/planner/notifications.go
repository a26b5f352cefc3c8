package planner

import (
	"fmt"
	"sort"
	"time"

	"github.com/r4mxae/project-hub/internal/models"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

type Notification struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Priority int      `json:"priority"`
}

// Look-ahead window for "due soon" notifications, in days.
const lookAheadDays = 3

// BuildNotifications scans the project and task collections and returns the
// alert list sorted by priority ascending. The sort is stable; records with
// equal priority keep scan order. Each rule is evaluated independently, so
// one record may contribute several notifications.
func BuildNotifications(projects []models.Project, tasks []models.Task, today time.Time) []Notification {
	var out []Notification

	for _, p := range projects {
		if p.Status == models.ProjectCompleted || p.IsSubmitted {
			continue
		}
		days, ok := DaysUntil(p.EndDate, today)
		if !ok {
			continue
		}
		switch {
		case days < 0:
			out = append(out, Notification{
				Severity: SeverityError,
				Title:    "Overdue Project",
				Message:  fmt.Sprintf("%s - End date: %s", p.Name, p.EndDate),
				Priority: 1,
			})
		case days <= lookAheadDays:
			out = append(out, Notification{
				Severity: SeverityWarning,
				Title:    "Project Due Soon",
				Message:  fmt.Sprintf("%s - Due: %s", p.Name, p.EndDate),
				Priority: 2,
			})
		}
	}

	for _, t := range tasks {
		if t.Status == models.TaskCompleted {
			continue
		}
		days, ok := DaysUntil(t.DueDate, today)
		if !ok {
			continue
		}
		switch {
		case days < 0:
			priority := 2
			if t.Priority == models.PriorityUrgent {
				priority = 1
			}
			out = append(out, Notification{
				Severity: SeverityError,
				Title:    "Overdue Task",
				Message:  fmt.Sprintf("%s - Due: %s", t.Title, t.DueDate),
				Priority: priority,
			})
		case days <= lookAheadDays:
			out = append(out, Notification{
				Severity: SeverityWarning,
				Title:    "Task Due Soon",
				Message:  fmt.Sprintf("%s - Due: %s", t.Title, t.DueDate),
				Priority: 3,
			})
		}
	}

	needSubmission := 0
	for _, p := range projects {
		if p.Status == models.ProjectCompleted && !p.IsSubmitted {
			needSubmission++
		}
	}
	if needSubmission > 0 {
		out = append(out, Notification{
			Severity: SeverityInfo,
			Title:    "Projects Ready for Submission",
			Message:  fmt.Sprintf("%d completed project(s) need to be submitted", needSubmission),
			Priority: 3,
		})
	}

	for _, p := range projects {
		if p.Status == models.ProjectCompleted || p.Budget <= 0 {
			continue
		}
		pct := p.Spent / p.Budget * 100
		if pct >= 90 {
			out = append(out, Notification{
				Severity: SeverityWarning,
				Title:    "Budget Alert",
				Message:  fmt.Sprintf("%s - %.0f%% budget used", p.Name, pct),
				Priority: 2,
			})
		}
	}

	urgent := 0
	for _, t := range tasks {
		if t.Priority == models.PriorityUrgent && t.Status != models.TaskCompleted {
			urgent++
		}
	}
	if urgent > 0 {
		out = append(out, Notification{
			Severity: SeverityError,
			Title:    "Urgent Tasks",
			Message:  fmt.Sprintf("%d urgent task(s) require attention", urgent),
			Priority: 1,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}
