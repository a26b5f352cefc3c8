package planner

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/r4mxae/project-hub/internal/models"
)

// Message is one composed reminder, addressed to a single focal point.
// Nothing here sends mail; the mailto URI is handed to the environment's
// mail client by the caller.
type Message struct {
	Sector     string             `json:"sector"`
	Department string             `json:"department"`
	Recipients []models.FocalPoint `json:"recipients"`
	Subject    string             `json:"subject"`
	Body       string             `json:"body"`
	MailtoURI  string             `json:"mailtoUri"`
}

// SkippedGroup records a (sector, department) group that had no matching
// focal point. Partial success is expected; callers report produced
// versus skipped.
type SkippedGroup struct {
	Sector     string `json:"sector"`
	Department string `json:"department"`
	Records    int    `json:"records"`
}

type ReminderBatch struct {
	Messages []Message      `json:"messages"`
	Skipped  []SkippedGroup `json:"skipped"`
}

// ComposeUpcomingReminders groups the selected procurement items by
// (sector, department) and renders one message per group and matching
// focal point. Groups without a contact are skipped, not failed.
func ComposeUpcomingReminders(items []models.ProcurementItem, points []models.FocalPoint, month time.Month, year int) ReminderBatch {
	type group struct {
		sector, department string
		items              []models.ProcurementItem
	}

	var order []string
	groups := make(map[string]*group)
	for _, it := range items {
		key := it.Sector + "|" + it.Department
		g, ok := groups[key]
		if !ok {
			g = &group{sector: it.Sector, department: it.Department}
			groups[key] = g
			order = append(order, key)
		}
		g.items = append(g.items, it)
	}

	var batch ReminderBatch
	for _, key := range order {
		g := groups[key]
		matched := MatchFocalPoints(points, g.sector, g.department)
		if len(matched) == 0 {
			batch.Skipped = append(batch.Skipped, SkippedGroup{
				Sector:     g.sector,
				Department: g.department,
				Records:    len(g.items),
			})
			continue
		}

		subject := fmt.Sprintf("Reminder: PR Submissions Expected in %s %d - %s / %s",
			month.String(), year, g.sector, g.department)

		for _, fp := range matched {
			var b strings.Builder
			fmt.Fprintf(&b, "Dear %s,\n\n", fp.Name)
			fmt.Fprintf(&b, "This is a friendly reminder that the following procurement requisition(s) are expected to be submitted in %s %d:\n\n", month.String(), year)
			for i, it := range g.items {
				fmt.Fprintf(&b, "%d. Item %s: %s\n", i+1, it.Item, it.ItemDescription)
				fmt.Fprintf(&b, "   - Category: %s\n", it.Category)
				fmt.Fprintf(&b, "   - Budget: AED %s\n", FormatAmount(it.AllocatedBudget))
				fmt.Fprintf(&b, "   - Expected PR Date: %s\n", it.RecommendedPRDate)
				fmt.Fprintf(&b, "   - Reference: %s\n\n", it.ItemReference)
			}
			b.WriteString("Please ensure that the PR submission(s) are prepared and submitted on or before the expected date(s).\n\n")
			b.WriteString("If you have any questions or concerns, please don't hesitate to reach out.\n\n")
			b.WriteString("Best regards,\nProcurement Team")

			body := b.String()
			batch.Messages = append(batch.Messages, Message{
				Sector:     g.sector,
				Department: g.department,
				Recipients: []models.FocalPoint{fp},
				Subject:    subject,
				Body:       body,
				MailtoURI:  MailtoURI([]string{fp.Email}, subject, body),
			})
		}
	}
	return batch
}

// ComposeOverdueReminder renders the single combined reminder for projects
// that are past their expected submission date. Recipients are the union
// of focal points matching any selected project's sector/department. The
// second return is false when no recipient could be resolved.
func ComposeOverdueReminder(projects []models.Project, points []models.FocalPoint, today time.Time) (Message, bool) {
	seen := make(map[uint]bool)
	var recipients []models.FocalPoint
	for _, p := range projects {
		for _, fp := range MatchFocalPoints(points, p.Sector, p.Department) {
			if !seen[fp.ID] {
				seen[fp.ID] = true
				recipients = append(recipients, fp)
			}
		}
	}
	if len(recipients) == 0 {
		return Message{}, false
	}

	var order []string
	grouped := make(map[string][]models.Project)
	for _, p := range projects {
		key := p.Sector + " - " + p.Department
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], p)
	}

	subject := fmt.Sprintf("Reminder: Overdue Project Submissions - %s", FormatDMY(today))

	var b strings.Builder
	b.WriteString("Dear Team,\n\nThis is a friendly reminder regarding the following project(s) that were expected to be submitted but have not been received yet:\n\n")
	for _, key := range order {
		fmt.Fprintf(&b, "%s:\n", key)
		for _, p := range grouped[key] {
			daysOverdue := 0
			if days, ok := DaysUntil(p.ExpectedSubmissionDate, today); ok && days < 0 {
				daysOverdue = -days
			}
			fmt.Fprintf(&b, "  - %s\n", p.Name)
			fmt.Fprintf(&b, "    Expected Submission Date: %s\n", p.ExpectedSubmissionDate)
			fmt.Fprintf(&b, "    Days Overdue: %d\n", daysOverdue)
			fmt.Fprintf(&b, "    Description: %s\n\n", p.Description)
		}
	}
	b.WriteString("Please provide an update on the status of these project(s) at your earliest convenience.\n\n")
	b.WriteString("If you have already submitted these projects, please disregard this reminder and confirm the submission date.\n\n")
	b.WriteString("Thank you for your cooperation.\n\n")
	b.WriteString("Best regards,\nProject Management Team")

	emails := make([]string, len(recipients))
	for i, fp := range recipients {
		emails[i] = fp.Email
	}

	body := b.String()
	return Message{
		Recipients: recipients,
		Subject:    subject,
		Body:       body,
		MailtoURI:  MailtoURI(emails, subject, body),
	}, true
}

// MailtoURI builds a standard mailto: URI. Spaces are percent-encoded;
// query escaping alone would produce '+' which mail clients do not decode.
func MailtoURI(recipients []string, subject, body string) string {
	esc := func(s string) string {
		return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
	}
	return "mailto:" + strings.Join(recipients, ",") + "?subject=" + esc(subject) + "&body=" + esc(body)
}

// FormatAmount renders a monetary amount with thousands separators and no
// decimals, e.g. 17500 -> "17,500".
func FormatAmount(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}
