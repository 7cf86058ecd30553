package query

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/poiesic/assessrec/core"
)

// Duration patterns, applied in strict priority order. The first match wins.
var (
	atMostMinutesPattern = regexp.MustCompile(`at\s+most\s+(\d+)\s*(?:min|mins|minute|minutes)`)
	hourRangePattern     = regexp.MustCompile(`(\d+)\s*-\s*(\d+)\s*hour`)
	hoursPattern         = regexp.MustCompile(`(\d+)\s*(?:hour|hours)`)
	minutesPattern       = regexp.MustCompile(`(\d+)\s*(?:min|mins|minute|minutes)`)
)

// Analyzer extracts structured signals from a raw query:
// skills, test types, and a duration ceiling. It also builds the enhanced
// query text that the retrieval stage actually scores.
type Analyzer struct {
	skillVocabulary    []string
	testTypeVocabulary []string
	logger             *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// WithSkillVocabulary replaces the skill term vocabulary.
// Extraction output follows the order of the provided terms.
func WithSkillVocabulary(terms []string) Option {
	return func(a *Analyzer) error {
		if len(terms) == 0 {
			return fmt.Errorf("skill vocabulary cannot be empty")
		}
		a.skillVocabulary = terms
		return nil
	}
}

// WithTestTypeVocabulary replaces the test-type phrase vocabulary.
func WithTestTypeVocabulary(phrases []string) Option {
	return func(a *Analyzer) error {
		if len(phrases) == 0 {
			return fmt.Errorf("test type vocabulary cannot be empty")
		}
		a.testTypeVocabulary = phrases
		return nil
	}
}

// NewAnalyzer creates a new query analyzer with the default vocabularies.
func NewAnalyzer(opts ...Option) (*Analyzer, error) {
	a := &Analyzer{
		skillVocabulary:    defaultSkillVocabulary,
		testTypeVocabulary: defaultTestTypeVocabulary,
		logger:             slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Process extracts signals from the raw query and builds the enhanced query.
//
// Skill and test-type extraction is pure substring containment over the
// lowercased query, with output in vocabulary order. No stemming or
// tokenization: partial matches ("js" inside "objectiveJS") are accepted
// as-is. This is a known precision/recall trade-off.
//
// A query with no recognizable signals is not an error; the enhanced query
// degrades to the raw query text.
func (a *Analyzer) Process(query string) core.QuerySignals {
	lowered := strings.ToLower(query)

	signals := core.QuerySignals{
		Skills:             a.extractByVocabulary(lowered, a.skillVocabulary),
		TestTypes:          a.extractByVocabulary(lowered, a.testTypeVocabulary),
		MaxDurationMinutes: extractDuration(lowered),
	}
	signals.EnhancedQuery = buildEnhancedQuery(query, signals)

	a.logger.Debug("processed query",
		"skills", len(signals.Skills),
		"testTypes", len(signals.TestTypes),
		"hasDuration", signals.MaxDurationMinutes != nil)

	return signals
}

// extractByVocabulary returns every vocabulary term contained in the
// lowercased query, preserving vocabulary order.
func (a *Analyzer) extractByVocabulary(lowered string, vocabulary []string) []string {
	var matched []string
	for _, term := range vocabulary {
		if strings.Contains(lowered, term) {
			matched = append(matched, term)
		}
	}
	return matched
}

// extractDuration finds a duration ceiling in minutes, or nil if the query
// carries none. Patterns are tried in priority order:
//
//  1. "at most N min(s)/minute(s)" -> N
//  2. "N-M hour(s)" -> M * 60 (the upper bound wins)
//  3. "N hour(s)" -> N * 60
//  4. "N min(s)/minute(s)" -> N
func extractDuration(lowered string) *int {
	if m := atMostMinutesPattern.FindStringSubmatch(lowered); m != nil {
		return minutesPtr(m[1], 1)
	}
	if m := hourRangePattern.FindStringSubmatch(lowered); m != nil {
		return minutesPtr(m[2], 60)
	}
	if m := hoursPattern.FindStringSubmatch(lowered); m != nil {
		return minutesPtr(m[1], 60)
	}
	if m := minutesPattern.FindStringSubmatch(lowered); m != nil {
		return minutesPtr(m[1], 1)
	}
	return nil
}

func minutesPtr(digits string, factor int) *int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		// The pattern only captures \d+, so this cannot happen for any value
		// that fits an int.
		return nil
	}
	n *= factor
	return &n
}

// buildEnhancedQuery appends one clause per non-empty signal to the original
// query text. Clause order is fixed: skills, test types, duration.
func buildEnhancedQuery(query string, signals core.QuerySignals) string {
	parts := []string{query}

	if len(signals.Skills) > 0 {
		parts = append(parts, "Required skills: "+strings.Join(signals.Skills, ", "))
	}
	if len(signals.TestTypes) > 0 {
		parts = append(parts, "Desired test types: "+strings.Join(signals.TestTypes, ", "))
	}
	if signals.MaxDurationMinutes != nil {
		parts = append(parts, fmt.Sprintf("Maximum duration: %d minutes", *signals.MaxDurationMinutes))
	}

	return strings.Join(parts, ". ")
}
