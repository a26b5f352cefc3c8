package export

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r4mxae/project-hub/internal/models"
)

func TestBackupRoundTrip(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	b := NewBackup(
		models.UserProfile{Name: "Rami"},
		[]models.Project{{ID: 1, Name: "P1", Status: models.ProjectPlanning}},
		nil, nil, nil,
		now,
	)

	data, err := json.Marshal(b)
	require.NoError(t, err)

	got, err := ParseBackup(data)
	require.NoError(t, err)
	require.NotNil(t, got.UserSettings)
	assert.Equal(t, "Rami", got.UserSettings.Name)
	require.Len(t, got.Projects, 1)
	assert.Equal(t, "P1", got.Projects[0].Name)
	assert.NotNil(t, got.Tasks)
	assert.True(t, got.ExportDate.Equal(now))
}

func TestParseBackupMissingCollection(t *testing.T) {
	doc := `{"projects": [], "procurementItems": [], "focalPoints": []}`
	_, err := ParseBackup([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"tasks"`)
}

func TestParseBackupWrongType(t *testing.T) {
	doc := `{"projects": [], "tasks": {}, "procurementItems": [], "focalPoints": []}`
	_, err := ParseBackup([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an array")
}

func TestParseBackupWithoutUserSettings(t *testing.T) {
	doc := `{"projects": [], "tasks": [], "procurementItems": [], "focalPoints": [], "exportDate": "2026-03-10T12:00:00Z"}`
	got, err := ParseBackup([]byte(doc))
	require.NoError(t, err)
	assert.Nil(t, got.UserSettings)
}

func TestParseBackupNotJSON(t *testing.T) {
	_, err := ParseBackup([]byte("PK\x03\x04 not json"))
	assert.Error(t, err)
}
