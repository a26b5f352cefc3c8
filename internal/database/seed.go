package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/r4mxae/project-hub/internal/models"
)

// SeedDemo loads a small demo dataset into an empty database. A database
// that already holds projects is left alone.
func SeedDemo(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Project{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		projects := []models.Project{
			{
				Name:        "Website Redesign",
				Description: "Complete overhaul of company website with modern design",
				Status:      models.ProjectInProgress,
				Sector:      "IT", Department: "Digital Services",
				StartDate: "2024-01-15", EndDate: "2024-06-30",
				ExpectedSubmissionDate: "2024-03-01",
				Budget:                 50000, Spent: 32500, Progress: 65,
				IsSubmitted: true, SubmittedDate: "2024-02-28",
			},
			{
				Name:        "Mobile App Development",
				Description: "Native iOS and Android application for customer portal",
				Status:      models.ProjectInProgress,
				Sector:      "IT", Department: "Development",
				StartDate: "2024-02-01", EndDate: "2024-08-15",
				ExpectedSubmissionDate: "2024-11-20",
				Budget:                 120000, Spent: 48000, Progress: 40,
			},
			{
				Name:        "Infrastructure Upgrade",
				Description: "Server and network infrastructure modernization",
				Status:      models.ProjectPlanning,
				Sector:      "IT", Department: "Infrastructure",
				StartDate: "2024-04-01", EndDate: "2024-09-30",
				ExpectedSubmissionDate: "2024-11-25",
				Budget:                 85000, Spent: 12750, Progress: 15,
			},
			{
				Name:        "Marketing Campaign Q2",
				Description: "Digital marketing campaign for product launch",
				Status:      models.ProjectCompleted,
				Sector:      "Marketing", Department: "Digital Marketing",
				StartDate: "2024-01-01", EndDate: "2024-03-31",
				ExpectedSubmissionDate: "2024-02-15",
				Budget:                 35000, Spent: 33500, Progress: 100,
				IsSubmitted: true, SubmittedDate: "2024-02-10",
			},
		}
		for i := range projects {
			if err := tx.Create(&projects[i]).Error; err != nil {
				return err
			}
		}

		tasks := []models.Task{
			{
				Title:       "Design homepage mockups",
				Description: "Create high-fidelity mockups for new homepage",
				ProjectID:   projects[0].ID,
				Status:      models.TaskCompleted, Priority: models.PriorityHigh,
				Assignee: "Sarah Chen",
				DueDate:  "2024-03-15", CreatedDate: "2024-01-20",
			},
			{
				Title:       "Develop authentication system",
				Description: "Implement secure user authentication and authorization",
				ProjectID:   projects[1].ID,
				Status:      models.TaskInProgress, Priority: models.PriorityUrgent,
				Assignee: "Michael Roberts",
				DueDate:  "2024-04-10", CreatedDate: "2024-02-05",
			},
			{
				Title:       "Review server specifications",
				Description: "Evaluate and finalize server hardware requirements",
				ProjectID:   projects[2].ID,
				Status:      models.TaskReview, Priority: models.PriorityMedium,
				Assignee: "David Kumar",
				DueDate:  "2024-04-20", CreatedDate: "2024-03-01",
			},
			{
				Title:       "Content creation for blog",
				Description: "Write and publish 5 blog posts for SEO",
				ProjectID:   projects[0].ID,
				Status:      models.TaskInProgress, Priority: models.PriorityMedium,
				Assignee: "Emma Wilson",
				DueDate:  "2024-04-30", CreatedDate: "2024-02-10",
			},
			{
				Title:       "User testing sessions",
				Description: "Conduct user testing with beta testers",
				ProjectID:   projects[1].ID,
				Status:      models.TaskTodo, Priority: models.PriorityHigh,
				Assignee: "Sarah Chen",
				DueDate:  "2024-05-15", CreatedDate: "2024-03-10",
			},
		}
		for i := range tasks {
			if err := tx.Create(&tasks[i]).Error; err != nil {
				return err
			}
		}

		logs := []models.WorkLog{
			{
				TaskID:    &tasks[0].ID,
				StartTime: time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2024, 1, 20, 17, 0, 0, 0, time.UTC),
				Duration:  28800,
				LogUpdate: "Initial design mockups created", UpcomingAction: "Review with team",
				Date: "20-01-2024",
			},
			{
				TaskID:    &tasks[1].ID,
				StartTime: time.Date(2024, 2, 5, 9, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2024, 2, 5, 17, 0, 0, 0, time.UTC),
				Duration:  28800,
				LogUpdate: "Authentication system design started", UpcomingAction: "Implement authentication",
				Date: "05-02-2024",
			},
			{
				TaskID:    &tasks[2].ID,
				StartTime: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2024, 3, 1, 17, 0, 0, 0, time.UTC),
				Duration:  28800,
				LogUpdate: "Server specifications reviewed", UpcomingAction: "Finalize hardware requirements",
				Date: "01-03-2024",
			},
			{
				TaskID:    &tasks[3].ID,
				StartTime: time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2024, 2, 10, 17, 0, 0, 0, time.UTC),
				Duration:  28800,
				LogUpdate: "Blog post draft created", UpcomingAction: "Review and publish",
				Date: "10-02-2024",
			},
		}
		for i := range logs {
			if err := tx.Create(&logs[i]).Error; err != nil {
				return err
			}
		}

		items := []models.ProcurementItem{
			{
				Item: "001", Sector: "IT", Department: "Infrastructure",
				ItemDescription: "Dell PowerEdge Servers - High-performance rack servers for data center upgrade",
				Category:        "Hardware",
				AwardedBefore:   "15-04-2026", RecommendedPRDate: "01-03-2026",
				AllocatedBudget:     17500,
				RequestedPreviously: "No", PrequalificationRecommended: "Yes",
				RecommendedVendors:    "TechSupply Inc, Dell Direct",
				AdditionalInformation: "Existing contract expires in Q2. Require 5 units with redundant power supplies.",
				ItemReference:         "IT-HW-2026-001",
				Status:                models.ItemPending,
			},
			{
				Item: "002", Sector: "Marketing", Department: "Digital Marketing",
				ItemDescription: "Adobe Creative Cloud Licenses - Annual enterprise licenses for creative team",
				Category:        "Software",
				AwardedBefore:   "01-02-2026", RecommendedPRDate: "15-01-2026",
				AllocatedBudget:     6000,
				RequestedPreviously: "Yes", PrequalificationRecommended: "No",
				RecommendedVendors:    "Adobe Systems",
				AdditionalInformation: "Renewal of existing licenses. 10 seats required.",
				ItemReference:         "MKT-SW-2026-001",
				IsSubmitted:           true, SubmittedDate: "10-01-2024",
				ProjectID: &projects[0].ID,
				Status:    models.ItemAssigned,
			},
			{
				Item: "003", Sector: "IT", Department: "Infrastructure",
				ItemDescription: "Network Switches - Enterprise-grade network switches for office expansion",
				Category:        "Hardware",
				AwardedBefore:   "25-04-2026", RecommendedPRDate: "10-03-2026",
				AllocatedBudget:     9600,
				RequestedPreviously: "No", PrequalificationRecommended: "Yes",
				RecommendedVendors:    "NetGear Solutions, Cisco",
				AdditionalInformation: "Need 8 units with minimum 48 ports each. Must support PoE+",
				ItemReference:         "IT-HW-2026-002",
				Status:                models.ItemPending,
			},
		}
		for i := range items {
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}

		points := []models.FocalPoint{
			{Name: "Sarah Johnson", Sector: "IT", Department: "Digital Services", Email: "sarah.johnson@example.com", PhoneNumber: "555-0101"},
			{Name: "Michael Chen", Sector: "IT", Department: "Development", Email: "michael.chen@example.com", PhoneNumber: "555-0102"},
			{Name: "Emily Rodriguez", Sector: "IT", Department: "Infrastructure", Email: "emily.rodriguez@example.com", PhoneNumber: "555-0103"},
			{Name: "David Kim", Sector: "Marketing", Department: "Digital Marketing", Email: "david.kim@example.com", PhoneNumber: "555-0104"},
		}
		for i := range points {
			if err := tx.Create(&points[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
