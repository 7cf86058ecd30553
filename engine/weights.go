package engine

// Weights holds the rerank multipliers. The scheme is deliberately simple
// and tunable rather than a principled ranking model; exposing the
// multipliers here keeps the policy overridable without touching the
// rerank loop.
type Weights struct {
	// SkillBoost is applied once per extracted skill found in the
	// candidate's name or description. Multiple matching skills compound:
	// two matches multiply the score by SkillBoost squared.
	SkillBoost float32

	// TestTypeBoost is applied at most once per candidate when any
	// extracted test type is present in the candidate's test-type set,
	// regardless of how many types match.
	TestTypeBoost float32

	// DurationPenalty is applied once when the query carries a duration
	// ceiling and the candidate's known (> 0) duration exceeds it. A
	// penalty, not an exclusion: over-long items are demoted, not dropped.
	DurationPenalty float32
}

// DefaultWeights is the stock rerank policy.
var DefaultWeights = Weights{
	SkillBoost:      1.2,
	TestTypeBoost:   1.5,
	DurationPenalty: 0.5,
}
