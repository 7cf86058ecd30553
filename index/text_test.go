package index

import (
	"testing"

	"github.com/poiesic/assessrec/core"
	"github.com/stretchr/testify/assert"
)

func TestEmbeddingText(t *testing.T) {
	t.Run("all parts", func(t *testing.T) {
		record := &core.AssessmentRecord{
			Name:            "Java 8 (New)",
			Description:     "Multi-choice test measuring Java knowledge",
			TestType:        []string{"knowledge & skills", "ability & aptitude"},
			DurationMinutes: 40,
			AdaptiveSupport: true,
			RemoteSupport:   true,
		}

		assert.Equal(t,
			"Assessment Name: Java 8 (New). "+
				"Description: Multi-choice test measuring Java knowledge. "+
				"Test Types: knowledge & skills, ability & aptitude. "+
				"Adaptive Test: Yes. "+
				"Remote / Online: Yes. "+
				"Duration: 40 minutes",
			EmbeddingText(record))
	})

	t.Run("optional parts omitted", func(t *testing.T) {
		record := &core.AssessmentRecord{
			Name:        "OPQ Leadership Report",
			Description: "",
		}

		text := EmbeddingText(record)
		assert.Equal(t, "Assessment Name: OPQ Leadership Report. Description: ", text)
		assert.NotContains(t, text, "Test Types")
		assert.NotContains(t, text, "Adaptive")
		assert.NotContains(t, text, "Remote")
		assert.NotContains(t, text, "Duration")
	})

	t.Run("unknown duration omitted", func(t *testing.T) {
		record := &core.AssessmentRecord{
			Name:            "Untimed Exercise",
			Description:     "desc",
			DurationMinutes: 0,
		}
		assert.NotContains(t, EmbeddingText(record), "Duration")
	})
}
