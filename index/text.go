package index

import (
	"fmt"
	"strings"

	"github.com/poiesic/assessrec/core"
)

// EmbeddingText builds the canonical text representation of an assessment
// record that gets fed to the embedding model. The part order is fixed;
// changing it invalidates every persisted vector, so the index must be
// rebuilt whenever this template changes.
func EmbeddingText(record *core.AssessmentRecord) string {
	parts := []string{
		"Assessment Name: " + record.Name,
		"Description: " + record.Description,
	}

	if len(record.TestType) > 0 {
		parts = append(parts, "Test Types: "+strings.Join(record.TestType, ", "))
	}

	if record.AdaptiveSupport {
		parts = append(parts, "Adaptive Test: Yes")
	}

	if record.RemoteSupport {
		parts = append(parts, "Remote / Online: Yes")
	}

	if record.DurationMinutes > 0 {
		parts = append(parts, fmt.Sprintf("Duration: %d minutes", record.DurationMinutes))
	}

	return strings.Join(parts, ". ")
}
