package planner

import (
	"fmt"

	"github.com/r4mxae/project-hub/internal/models"
)

// MatchFocalPoints returns every focal point whose sector and department
// equal the given pair. Matching is exact and case-sensitive; no
// normalization is applied.
func MatchFocalPoints(points []models.FocalPoint, sector, department string) []models.FocalPoint {
	var out []models.FocalPoint
	for _, fp := range points {
		if fp.Sector == sector && fp.Department == department {
			out = append(out, fp)
		}
	}
	return out
}

// UnplannedProjects returns the projects that no procurement item
// references and that are not completed.
func UnplannedProjects(projects []models.Project, items []models.ProcurementItem) []models.Project {
	referenced := make(map[uint]bool, len(items))
	for _, it := range items {
		if it.ProjectID != nil {
			referenced[*it.ProjectID] = true
		}
	}

	var out []models.Project
	for _, p := range projects {
		if !referenced[p.ID] && p.Status != models.ProjectCompleted {
			out = append(out, p)
		}
	}
	return out
}

// ProjectFromItem synthesizes the project created when a procurement item
// is marked submitted. Reverting the submission must delete this project
// again; nothing else ever cleans it up.
func ProjectFromItem(item models.ProcurementItem, submittedDate string) models.Project {
	return models.Project{
		Name: fmt.Sprintf("%s - %s", item.Item, item.ItemDescription),
		Description: fmt.Sprintf("Procurement Item: %s\nCategory: %s\nVendors: %s\nAdditional Info: %s",
			item.ItemDescription, item.Category, item.RecommendedVendors, item.AdditionalInformation),
		Status:                 models.ProjectPlanning,
		Sector:                 item.Sector,
		Department:             item.Department,
		StartDate:              submittedDate,
		EndDate:                item.RecommendedPRDate,
		ExpectedSubmissionDate: item.RecommendedPRDate,
		Budget:                 item.AllocatedBudget,
		PRNumber:               item.ItemReference,
		IsSubmitted:            true,
		SubmittedDate:          submittedDate,
	}
}

// ProjectName resolves a task's project name from the authoritative
// project collection; empty when the reference is dangling.
func ProjectName(projects []models.Project, projectID uint) string {
	for _, p := range projects {
		if p.ID == projectID {
			return p.Name
		}
	}
	return ""
}
