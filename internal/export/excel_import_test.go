package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r4mxae/project-hub/internal/models"
)

func fullMapping() map[string]int {
	return map[string]int{
		"item":              0,
		"sector":            1,
		"department":        2,
		"itemDescription":   3,
		"category":          4,
		"awardedBefore":     5,
		"allocatedBudget":   6,
		"recommendedPRDate": 7,
		"itemReference":     8,
	}
}

func TestMapItems(t *testing.T) {
	rows := [][]string{
		{"Switches", "IT", "Infrastructure", "48-port switches", "Hardware", "2026-06-30", "17,500", "10-04-2026", "PR-104"},
		{"", "skipped", "row"},
		{"Audit", "Finance", "Accounts", "Compliance audit", "Services", "", "30000", "05/04/2026", "PR-106"},
	}

	items, err := MapItems(rows, fullMapping())
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "Switches", first.Item)
	assert.Equal(t, 17500.0, first.AllocatedBudget)
	assert.Equal(t, "30-06-2026", first.AwardedBefore)
	assert.Equal(t, "10-04-2026", first.RecommendedPRDate)
	assert.False(t, first.IsSubmitted)
	assert.Equal(t, models.ItemPending, first.Status)

	assert.Equal(t, "05-04-2026", items[1].RecommendedPRDate)
	assert.Empty(t, items[1].AwardedBefore)
}

func TestMapItemsBlankBudgetImportsAsZero(t *testing.T) {
	rows := [][]string{
		{"Switches", "IT", "Infra", "desc", "Hardware", "", "", "10-04-2026", "PR-1"},
	}
	items, err := MapItems(rows, fullMapping())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Zero(t, items[0].AllocatedBudget)
}

func TestMapItemsMissingRequiredField(t *testing.T) {
	mapping := fullMapping()
	delete(mapping, "allocatedBudget")
	delete(mapping, "category")

	_, err := MapItems(nil, mapping)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allocatedBudget, category")
}

func TestMapItemsUnknownField(t *testing.T) {
	mapping := fullMapping()
	mapping["projectName"] = 9
	_, err := MapItems(nil, mapping)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "projectName")
}

func TestMapItemsBadBudget(t *testing.T) {
	rows := [][]string{
		{"Switches", "IT", "Infra", "d", "Hardware", "", "lots", "10-04-2026", "PR-1"},
	}
	_, err := MapItems(rows, fullMapping())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestNormalizeDate(t *testing.T) {
	cases := map[string]string{
		"10-04-2026":  "10-04-2026",
		"2026-04-10":  "10-04-2026",
		"10/04/2026":  "10-04-2026",
		"Apr 10, 2026": "10-04-2026",
		"45678":       "21-01-2025",
		"":            "",
		"whenever":    "whenever",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeDate(in), "input %q", in)
	}
}
