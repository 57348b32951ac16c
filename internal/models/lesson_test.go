package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogFixture = `
lessons:
  - id: first-time-buyer
    title: The First-Time Buyer
    persona: Nervous first-time shopper
    scenario: Budget-anxious customer.
    difficulty: beginner
    base_xp: 40
    objectives:
      - Open with a needs question
  - id: trade-in-skeptic
    title: The Trade-In Skeptic
    persona: Over-anchored returning customer
    scenario: Walk them toward a realistic number.
    difficulty: intermediate
    base_xp: 60
`

func writeCatalog(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lessons.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadCatalog(t *testing.T) {
	catalog, err := LoadCatalog(writeCatalog(t, catalogFixture))
	require.NoError(t, err)
	require.Len(t, catalog.Lessons, 2)

	assert.Equal(t, "first-time-buyer", catalog.Lessons[0].ID)
	assert.Equal(t, 40, catalog.Lessons[0].BaseXP)
	assert.Equal(t, []string{"Open with a needs question"}, catalog.Lessons[0].Objectives)
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadCatalogBadYAML(t *testing.T) {
	_, err := LoadCatalog(writeCatalog(t, "lessons: [nope"))
	assert.Error(t, err)
}

func TestCatalogFind(t *testing.T) {
	catalog, err := LoadCatalog(writeCatalog(t, catalogFixture))
	require.NoError(t, err)

	lesson, ok := catalog.Find("trade-in-skeptic")
	assert.True(t, ok)
	assert.Equal(t, "The Trade-In Skeptic", lesson.Title)

	_, ok = catalog.Find("does-not-exist")
	assert.False(t, ok)
}
