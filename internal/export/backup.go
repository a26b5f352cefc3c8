package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/r4mxae/project-hub/internal/models"
)

// Backup is the full-dump document written by the settings export and
// accepted back by restore. Field names are part of the format; older
// dumps without userSettings still load.
type Backup struct {
	UserSettings *models.UserProfile      `json:"userSettings,omitempty"`
	Projects     []models.Project         `json:"projects"`
	Tasks        []models.Task            `json:"tasks"`
	Items        []models.ProcurementItem `json:"procurementItems"`
	FocalPoints  []models.FocalPoint      `json:"focalPoints"`
	ExportDate   time.Time                `json:"exportDate"`
}

func NewBackup(profile models.UserProfile, projects []models.Project, tasks []models.Task,
	items []models.ProcurementItem, points []models.FocalPoint, now time.Time) Backup {
	b := Backup{
		Projects:    emptyNotNil(projects),
		Tasks:       emptyNotNil(tasks),
		Items:       emptyNotNil(items),
		FocalPoints: emptyNotNil(points),
		ExportDate:  now,
	}
	if profile != (models.UserProfile{}) {
		b.UserSettings = &profile
	}
	return b
}

func emptyNotNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

var requiredKeys = []string{"projects", "tasks", "procurementItems", "focalPoints"}

// ParseBackup decodes and validates a backup document. A document
// missing any of the four collections, or carrying a non-array for one,
// is rejected before anything is touched.
func ParseBackup(data []byte) (Backup, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return Backup{}, fmt.Errorf("invalid backup file: %w", err)
	}
	for _, key := range requiredKeys {
		raw, ok := probe[key]
		if !ok {
			return Backup{}, fmt.Errorf("invalid backup file: missing %q", key)
		}
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 || trimmed[0] != '[' {
			return Backup{}, fmt.Errorf("invalid backup file: %q is not an array", key)
		}
	}

	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return Backup{}, fmt.Errorf("invalid backup file: %w", err)
	}
	return b, nil
}
