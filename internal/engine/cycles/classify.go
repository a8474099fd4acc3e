package cycles

// OverallSeverity grades the whole finding set, from none up to critical.
type OverallSeverity string

const (
	OverallNone     OverallSeverity = "none"
	OverallMinor    OverallSeverity = "minor"
	OverallModerate OverallSeverity = "moderate"
	OverallMajor    OverallSeverity = "major"
	OverallCritical OverallSeverity = "critical"
)

// Complexity buckets the average resolution-complexity score.
type Complexity string

const (
	ComplexityNone     Complexity = "none"
	ComplexityLow      Complexity = "low"
	ComplexityMedium   Complexity = "medium"
	ComplexityHigh     Complexity = "high"
	ComplexityVeryHigh Complexity = "very_high"
)

// Stats aggregates simple shape statistics over the cycle set. Ties on the
// extremes go to the first cycle seen.
type Stats struct {
	AverageLength float64 `json:"averageLength"`
	Longest       *Cycle  `json:"longestCycle,omitempty"`
	Shortest      *Cycle  `json:"shortestCycle,omitempty"`
	MostComplex   *Cycle  `json:"mostComplexCycle,omitempty"`
}

// Classification partitions cycles by severity and by type and carries the
// aggregate stats.
type Classification struct {
	Critical []Cycle          `json:"critical"`
	Major    []Cycle          `json:"major"`
	Minor    []Cycle          `json:"minor"`
	ByType   map[Type][]Cycle `json:"byType"`
	Analysis Stats            `json:"analysis"`
}

func Classify(in []Cycle) Classification {
	c := Classification{
		Critical: make([]Cycle, 0),
		Major:    make([]Cycle, 0),
		Minor:    make([]Cycle, 0),
		ByType:   make(map[Type][]Cycle, len(Types)),
	}
	for _, t := range Types {
		c.ByType[t] = make([]Cycle, 0)
	}

	for _, cycle := range in {
		switch cycle.Severity {
		case SeverityCritical:
			c.Critical = append(c.Critical, cycle)
		case SeverityMajor:
			c.Major = append(c.Major, cycle)
		default:
			c.Minor = append(c.Minor, cycle)
		}
		c.ByType[cycle.Type] = append(c.ByType[cycle.Type], cycle)
	}

	c.Analysis = computeStats(in)
	return c
}

func computeStats(in []Cycle) Stats {
	if len(in) == 0 {
		return Stats{}
	}

	total := 0
	longest := 0
	shortest := 0
	mostComplex := 0
	bestScore := -1

	for i, cycle := range in {
		total += cycle.Length
		if cycle.Length > in[longest].Length {
			longest = i
		}
		if cycle.Length < in[shortest].Length {
			shortest = i
		}
		score := cycle.Length * severityWeight(cycle.Severity)
		if score > bestScore {
			bestScore = score
			mostComplex = i
		}
	}

	longestCopy := in[longest]
	shortestCopy := in[shortest]
	complexCopy := in[mostComplex]
	return Stats{
		AverageLength: float64(total) / float64(len(in)),
		Longest:       &longestCopy,
		Shortest:      &shortestCopy,
		MostComplex:   &complexCopy,
	}
}

func severityWeight(s Severity) int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityMajor:
		return 2
	default:
		return 1
	}
}

// Overall derives the analysis-wide severity. A critical cycle always
// dominates; a growing pile of major or minor cycles escalates step by step.
func Overall(in []Cycle) OverallSeverity {
	var critical, major, minor int
	for _, c := range in {
		switch c.Severity {
		case SeverityCritical:
			critical++
		case SeverityMajor:
			major++
		default:
			minor++
		}
	}

	switch {
	case critical > 0:
		return OverallCritical
	case major > 2:
		return OverallMajor
	case major > 0 || minor > 3:
		return OverallModerate
	case len(in) > 0:
		return OverallMinor
	default:
		return OverallNone
	}
}

// ResolutionComplexity scores each cycle as
// length x severity multiplier x 1.5 when the cycle spans all three layers,
// averages across the set, and buckets the result.
func ResolutionComplexity(in []Cycle) Complexity {
	if len(in) == 0 {
		return ComplexityNone
	}

	total := 0.0
	for _, c := range in {
		score := float64(c.Length * severityWeight(c.Severity))
		if c.Type == TypeMixed {
			score *= 1.5
		}
		total += score
	}
	avg := total / float64(len(in))

	switch {
	case avg >= 12:
		return ComplexityVeryHigh
	case avg >= 8:
		return ComplexityHigh
	case avg >= 5:
		return ComplexityMedium
	default:
		return ComplexityLow
	}
}
