package advisor

// Recommendation is a static prevention hint included with every report.
type Recommendation struct {
	Category   string `json:"category"`
	Suggestion string `json:"suggestion"`
	Priority   string `json:"priority"`
}

// PreventionRecommendations returns the fixed guidance set. The content does
// not depend on the analyzed graph.
func PreventionRecommendations() []Recommendation {
	return []Recommendation{
		{
			Category:   "tooling",
			Suggestion: "Run cycle detection in CI and fail the build when a new cycle appears.",
			Priority:   "high",
		},
		{
			Category:   "architecture",
			Suggestion: "Define layer boundaries (presentation, business logic, modules) and allow dependencies in one direction only.",
			Priority:   "high",
		},
		{
			Category:   "design",
			Suggestion: "Depend on interfaces at module boundaries so implementations can be rewired without back-references.",
			Priority:   "medium",
		},
		{
			Category:   "review",
			Suggestion: "Treat any new dependency from a lower layer to a higher one as a review blocker.",
			Priority:   "medium",
		},
		{
			Category:   "refactoring",
			Suggestion: "Schedule periodic dependency-graph reviews; cycles are cheapest to break while short.",
			Priority:   "low",
		},
	}
}
