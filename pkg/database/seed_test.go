package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogYAML(questions, options int) string {
	var b strings.Builder
	b.WriteString("questions:\n")
	for q := 0; q < questions; q++ {
		b.WriteString("  - text: \"question\"\n    options:\n")
		for o := 0; o < options; o++ {
			b.WriteString("      - \"option\"\n")
		}
	}
	return b.String()
}

func TestParseCatalog(t *testing.T) {
	questions, err := ParseCatalog([]byte(catalogYAML(7, 8)))
	require.NoError(t, err)
	require.Len(t, questions, 7)

	for i, q := range questions {
		assert.Equal(t, i+1, q.QuestionOrder)
		require.Len(t, q.Options, 8)
		for j, o := range q.Options {
			assert.Equal(t, j+1, o.OptionOrder)
		}
	}
}

func TestParseCatalogRejectsWrongShape(t *testing.T) {
	_, err := ParseCatalog([]byte(catalogYAML(6, 8)))
	assert.Error(t, err)

	_, err = ParseCatalog([]byte(catalogYAML(7, 7)))
	assert.Error(t, err)

	_, err = ParseCatalog([]byte("questions: ["))
	assert.Error(t, err)
}

func TestLoadCatalogFileShipped(t *testing.T) {
	questions, err := LoadCatalogFile("../../configs/catalog.yaml")
	require.NoError(t, err)
	assert.Len(t, questions, 7)
}
