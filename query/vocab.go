package query

// defaultSkillVocabulary lists the skill and role terms recognized in queries.
// Order matters: extracted skills are reported in vocabulary order, not in
// the order they appear in the query. Terms can be expanded over time.
var defaultSkillVocabulary = []string{
	"sql",
	"python",
	"excel",
	"java",
	"javascript",
	"js",
	"html",
	"css",
	"selenium",
	"qa",
	"quality assurance",
	"marketing",
	"sales",
	"analyst",
	"data analyst",
	"consultant",
	"manager",
	"coo",
	"graduate",
	"admin",
}

// defaultTestTypeVocabulary lists the catalog's test-type category phrases.
var defaultTestTypeVocabulary = []string{
	"ability & aptitude",
	"biodata & situational judgement",
	"competencies",
	"development & 360",
	"assessment exercises",
	"knowledge & skills",
	"personality & behavior",
	"personality & behaviour",
	"simulations",
}
