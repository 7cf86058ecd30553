package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyzer(t *testing.T, opts ...Option) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(opts...)
	require.NoError(t, err)
	return a
}

func TestNewAnalyzer(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		a, err := NewAnalyzer()
		require.NoError(t, err)
		assert.NotNil(t, a)
	})

	t.Run("empty skill vocabulary rejected", func(t *testing.T) {
		_, err := NewAnalyzer(WithSkillVocabulary(nil))
		assert.Error(t, err)
	})

	t.Run("empty test type vocabulary rejected", func(t *testing.T) {
		_, err := NewAnalyzer(WithTestTypeVocabulary(nil))
		assert.Error(t, err)
	})

	t.Run("custom vocabulary", func(t *testing.T) {
		a := newAnalyzer(t, WithSkillVocabulary([]string{"golang"}))
		signals := a.Process("hiring a golang developer")
		assert.Equal(t, []string{"golang"}, signals.Skills)
	})
}

func TestProcessSkillExtraction(t *testing.T) {
	a := newAnalyzer(t)

	t.Run("vocabulary order independent of query order", func(t *testing.T) {
		signals := a.Process("needs Python and SQL skills")
		// "sql" precedes "python" in the vocabulary even though the query
		// mentions python first.
		assert.Equal(t, []string{"sql", "python"}, signals.Skills)
	})

	t.Run("case insensitive", func(t *testing.T) {
		signals := a.Process("SELENIUM and QA engineer")
		assert.Contains(t, signals.Skills, "selenium")
		assert.Contains(t, signals.Skills, "qa")
	})

	t.Run("substring containment accepts partial matches", func(t *testing.T) {
		signals := a.Process("experience with objectiveJS frameworks")
		assert.Contains(t, signals.Skills, "js")
	})

	t.Run("no skills", func(t *testing.T) {
		signals := a.Process("entry level warehouse operative")
		assert.Empty(t, signals.Skills)
	})
}

func TestProcessTestTypeExtraction(t *testing.T) {
	a := newAnalyzer(t)

	t.Run("category phrase match", func(t *testing.T) {
		signals := a.Process("looking for knowledge & skills tests")
		assert.Equal(t, []string{"knowledge & skills"}, signals.TestTypes)
	})

	t.Run("both spellings of behaviour", func(t *testing.T) {
		signals := a.Process("personality & behaviour assessment")
		assert.Equal(t, []string{"personality & behaviour"}, signals.TestTypes)
	})

	t.Run("no test types", func(t *testing.T) {
		signals := a.Process("java developer")
		assert.Empty(t, signals.TestTypes)
	})
}

func TestProcessDurationExtraction(t *testing.T) {
	a := newAnalyzer(t)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"at most minutes", "screening test, at most 45 mins", 45},
		{"at most wins over plain minutes", "at most 30 minutes but ideally 20 minutes", 30},
		{"hour range uses upper bound", "a 1-2 hours assessment", 120},
		{"single hour", "about 1 hour long", 60},
		{"plural hours", "up to 2 hours", 120},
		{"plain minutes", "90 minutes max", 90},
		{"mins abbreviation", "40 mins", 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signals := a.Process(tt.query)
			require.NotNil(t, signals.MaxDurationMinutes)
			assert.Equal(t, tt.want, *signals.MaxDurationMinutes)
		})
	}

	t.Run("no duration phrase means absent not zero", func(t *testing.T) {
		signals := a.Process("senior python developer assessment")
		assert.Nil(t, signals.MaxDurationMinutes)
	})
}

func TestProcessEnhancedQuery(t *testing.T) {
	a := newAnalyzer(t)

	t.Run("all clauses in fixed order", func(t *testing.T) {
		signals := a.Process("Java developers who collaborate, at most 40 minutes")
		assert.Equal(t,
			"Java developers who collaborate, at most 40 minutes. "+
				"Required skills: java. Maximum duration: 40 minutes",
			signals.EnhancedQuery)
	})

	t.Run("original casing preserved", func(t *testing.T) {
		signals := a.Process("Hiring SQL Analysts")
		assert.Contains(t, signals.EnhancedQuery, "Hiring SQL Analysts")
	})

	t.Run("degrades to raw query without signals", func(t *testing.T) {
		signals := a.Process("some unrelated text")
		assert.Equal(t, "some unrelated text", signals.EnhancedQuery)
	})

	t.Run("test type clause", func(t *testing.T) {
		signals := a.Process("prefer competencies based evaluation")
		assert.Contains(t, signals.EnhancedQuery, "Desired test types: competencies")
	})
}
