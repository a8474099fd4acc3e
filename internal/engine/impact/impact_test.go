package impact

import (
	"testing"

	"depcycle/internal/engine/cycles"
	"depcycle/internal/engine/graph"
)

func impactGraph() *graph.Graph {
	b := graph.NewBuilder()
	b.AddNode(graph.Node{ID: "cmpA", Type: graph.NodeComponent})
	b.AddNode(graph.Node{ID: "cmpB", Type: graph.NodeComponent})
	b.AddNode(graph.Node{ID: "svcA", Type: graph.NodeService})
	b.AddNode(graph.Node{ID: "svcB", Type: graph.NodeService})
	b.AddNode(graph.Node{ID: "modA", Type: graph.NodeModule})
	return b.Build()
}

func cycleWith(path []string, severity cycles.Severity, typ cycles.Type) cycles.Cycle {
	return cycles.Cycle{Path: path, Length: len(path) - 1, Severity: severity, Type: typ}
}

func TestArchitecture_MaintainabilityScore(t *testing.T) {
	g := impactGraph()
	cases := []struct {
		name string
		in   []cycles.Cycle
		want int
	}{
		{"no cycles", nil, 100},
		{"one critical", []cycles.Cycle{
			cycleWith([]string{"cmpA", "cmpB", "cmpA"}, cycles.SeverityCritical, cycles.TypeComponent),
		}, 80},
		{"one of each", []cycles.Cycle{
			cycleWith([]string{"cmpA", "cmpB", "cmpA"}, cycles.SeverityCritical, cycles.TypeComponent),
			cycleWith([]string{"svcA", "svcB", "svcA"}, cycles.SeverityMajor, cycles.TypeService),
			cycleWith([]string{"svcA", "svcB", "svcA"}, cycles.SeverityMinor, cycles.TypeService),
		}, 65},
		{"clamped at zero", []cycles.Cycle{
			cycleWith([]string{"cmpA", "cmpB", "cmpA"}, cycles.SeverityCritical, cycles.TypeComponent),
			cycleWith([]string{"cmpA", "cmpB", "cmpA"}, cycles.SeverityCritical, cycles.TypeComponent),
			cycleWith([]string{"cmpA", "cmpB", "cmpA"}, cycles.SeverityCritical, cycles.TypeComponent),
			cycleWith([]string{"cmpA", "cmpB", "cmpA"}, cycles.SeverityCritical, cycles.TypeComponent),
			cycleWith([]string{"cmpA", "cmpB", "cmpA"}, cycles.SeverityCritical, cycles.TypeComponent),
			cycleWith([]string{"cmpA", "cmpB", "cmpA"}, cycles.SeverityCritical, cycles.TypeComponent),
		}, 0},
	}
	for _, tc := range cases {
		if got := Architecture(tc.in, g).MaintainabilityScore; got != tc.want {
			t.Errorf("%s: score = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestArchitecture_ScoreNonIncreasing(t *testing.T) {
	g := impactGraph()
	set := []cycles.Cycle{}
	prev := Architecture(set, g).MaintainabilityScore
	add := []cycles.Cycle{
		cycleWith([]string{"svcA", "svcB", "svcA"}, cycles.SeverityMinor, cycles.TypeService),
		cycleWith([]string{"svcA", "svcB", "svcA"}, cycles.SeverityMajor, cycles.TypeService),
		cycleWith([]string{"cmpA", "cmpB", "cmpA"}, cycles.SeverityCritical, cycles.TypeComponent),
	}
	for _, c := range add {
		set = append(set, c)
		score := Architecture(set, g).MaintainabilityScore
		if score > prev {
			t.Fatalf("score increased from %d to %d after adding %s cycle", prev, score, c.Severity)
		}
		prev = score
	}
}

func TestArchitecture_OverallLadder(t *testing.T) {
	g := impactGraph()
	minor := cycleWith([]string{"svcA", "svcB", "svcA"}, cycles.SeverityMinor, cycles.TypeService)
	major := cycleWith([]string{"svcA", "svcB", "svcA"}, cycles.SeverityMajor, cycles.TypeService)
	critical := cycleWith([]string{"cmpA", "cmpB", "cmpA"}, cycles.SeverityCritical, cycles.TypeComponent)

	cases := []struct {
		name string
		in   []cycles.Cycle
		want Rating
	}{
		{"empty", nil, RatingLow},
		{"any critical", []cycles.Cycle{critical}, RatingHigh},
		{"three major", []cycles.Cycle{major, major, major}, RatingMedium},
		{"four minor", []cycles.Cycle{minor, minor, minor, minor}, RatingMedium},
		{"two minor", []cycles.Cycle{minor, minor}, RatingLow},
	}
	for _, tc := range cases {
		if got := Architecture(tc.in, g).OverallImpact; got != tc.want {
			t.Errorf("%s: overall = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestArchitecture_AffectedLayers(t *testing.T) {
	g := impactGraph()
	found := []cycles.Cycle{
		cycleWith([]string{"cmpA", "svcA", "cmpA"}, cycles.SeverityMinor, cycles.TypeMixed),
		cycleWith([]string{"modA", "cmpB", "modA"}, cycles.SeverityMinor, cycles.TypeMixed),
	}
	layers := Architecture(found, g).AffectedLayers
	want := []string{LayerPresentation, LayerBusinessLogic, LayerModule}
	if len(layers) != len(want) {
		t.Fatalf("layers = %v, want %v", layers, want)
	}
	for i := range want {
		if layers[i] != want[i] {
			t.Errorf("layers[%d] = %s, want %s (first-touched order)", i, layers[i], want[i])
		}
	}
}

func TestArchitecture_UnknownNodesTouchNoLayer(t *testing.T) {
	g := impactGraph()
	found := []cycles.Cycle{
		cycleWith([]string{"ghost1", "ghost2", "ghost1"}, cycles.SeverityMinor, cycles.TypeUnknown),
	}
	if layers := Architecture(found, g).AffectedLayers; len(layers) != 0 {
		t.Errorf("dangling members should touch no layer, got %v", layers)
	}
}

func TestPerformance_EmptySet(t *testing.T) {
	p := Performance(nil)
	if p.OverallImpact != RatingLow {
		t.Errorf("overall = %s, want low", p.OverallImpact)
	}
	for name, r := range map[string]Rating{
		"memory":          p.MemoryLeakRisk,
		"startup":         p.StartupTimeImpact,
		"runtime":         p.RuntimeImpact,
		"changeDetection": p.ChangeDetectionImpact,
	} {
		if r != RatingLow {
			t.Errorf("%s = %s, want low", name, r)
		}
	}
}

func TestPerformance_CriticalDrivesMemoryAndRuntime(t *testing.T) {
	critical := cycleWith([]string{"svcA", "svcB", "svcA"}, cycles.SeverityCritical, cycles.TypeService)
	p := Performance([]cycles.Cycle{critical})
	if p.MemoryLeakRisk != RatingHigh {
		t.Errorf("memory = %s, want high with a critical cycle", p.MemoryLeakRisk)
	}
	if p.RuntimeImpact != RatingMedium {
		t.Errorf("runtime = %s, want medium with one critical cycle", p.RuntimeImpact)
	}
	if got := Performance([]cycles.Cycle{critical, critical}).RuntimeImpact; got != RatingHigh {
		t.Errorf("runtime = %s, want high with two critical cycles", got)
	}
}

func TestPerformance_ComponentCyclesDriveChangeDetection(t *testing.T) {
	cmp := cycleWith([]string{"cmpA", "cmpB", "cmpA"}, cycles.SeverityMinor, cycles.TypeComponent)
	if got := Performance([]cycles.Cycle{cmp}).ChangeDetectionImpact; got != RatingMedium {
		t.Errorf("one component cycle: changeDetection = %s, want medium", got)
	}
	four := []cycles.Cycle{cmp, cmp, cmp, cmp}
	if got := Performance(four).ChangeDetectionImpact; got != RatingHigh {
		t.Errorf("four component cycles: changeDetection = %s, want high", got)
	}
}

func TestPerformance_OverallAveraging(t *testing.T) {
	// Six component cycles: startup high (total>5), changeDetection high
	// (component>3), runtime medium (component>2), memory low.
	// (3+3+2+1)/4 = 2.25 -> medium.
	cmp := cycleWith([]string{"cmpA", "cmpB", "cmpA"}, cycles.SeverityMinor, cycles.TypeComponent)
	set := []cycles.Cycle{cmp, cmp, cmp, cmp, cmp, cmp}
	if got := Performance(set).OverallImpact; got != RatingMedium {
		t.Errorf("overall = %s, want medium", got)
	}
}
