package catalog

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/poiesic/assessrec/core"
)

// rawRecord mirrors the crawler's JSON schema. Capability flags arrive as
// "Yes"/"No" strings and duration as a plain minute count (0 = unknown).
type rawRecord struct {
	URL             string   `json:"url"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	TestType        []string `json:"test_type"`
	Duration        int      `json:"duration"`
	AdaptiveSupport string   `json:"adaptive_support"`
	RemoteSupport   string   `json:"remote_support"`
}

// Load reads and validates a crawler-produced assessments document from disk.
func Load(path string) ([]*core.AssessmentRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a crawler-produced assessments document: a JSON array of
// assessment objects. Every record is validated; record IDs are derived
// from the URL, so re-parsing the same document yields identical IDs.
func Parse(r io.Reader) ([]*core.AssessmentRecord, error) {
	var raw []rawRecord
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	records := make([]*core.AssessmentRecord, len(raw))
	for i, item := range raw {
		record := &core.AssessmentRecord{
			Id:              core.IDFromContent(item.URL),
			URL:             item.URL,
			Name:            item.Name,
			Description:     item.Description,
			TestType:        item.TestType,
			DurationMinutes: item.Duration,
			AdaptiveSupport: item.AdaptiveSupport == "Yes",
			RemoteSupport:   item.RemoteSupport == "Yes",
		}
		if err := core.ValidateAssessmentRecord(record); err != nil {
			return nil, fmt.Errorf("catalog record %d: %w", i, err)
		}
		records[i] = record
	}

	return records, nil
}
