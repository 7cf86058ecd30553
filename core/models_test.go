package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := IDFromContent("https://www.shl.com/solutions/products/product-catalog/view/python-new/")
		b := IDFromContent("https://www.shl.com/solutions/products/product-catalog/view/python-new/")
		assert.Equal(t, a, b)
	})

	t.Run("distinct content distinct ids", func(t *testing.T) {
		a := IDFromContent("https://example.com/assessment-a/")
		b := IDFromContent("https://example.com/assessment-b/")
		assert.NotEqual(t, a, b)
	})

	t.Run("empty string has an id", func(t *testing.T) {
		// Degenerate but must not panic; validation rejects empty URLs elsewhere.
		_ = IDFromContent("")
	})
}

func TestYesNo(t *testing.T) {
	assert.Equal(t, "Yes", YesNo(true))
	assert.Equal(t, "No", YesNo(false))
}

func TestProject(t *testing.T) {
	record := &AssessmentRecord{
		Id:              IDFromContent("https://example.com/sql-test/"),
		URL:             "https://example.com/sql-test/",
		Name:            "SQL Server Analyst",
		Description:     "Measures SQL querying ability",
		TestType:        []string{"knowledge & skills"},
		DurationMinutes: 30,
		AdaptiveSupport: true,
		RemoteSupport:   false,
		Vector:          []float32{1, 0, 0},
	}

	rec := record.Project(0.87)

	assert.Equal(t, record.URL, rec.URL)
	assert.Equal(t, record.Name, rec.Name)
	assert.Equal(t, record.Description, rec.Description)
	assert.Equal(t, record.TestType, rec.TestType)
	assert.Equal(t, 30, rec.Duration)
	assert.Equal(t, "Yes", rec.AdaptiveSupport)
	assert.Equal(t, "No", rec.RemoteSupport)
	assert.Equal(t, float32(0.87), rec.Score)
}
