package cycles

import (
	"reflect"
	"testing"
)

func TestCanonicalize_RotatesToSmallestLeadingChar(t *testing.T) {
	got := Canonicalize([]string{"modC", "appA", "libB", "modC"})
	want := []string{"appA", "libB", "modC", "appA"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Canonicalize = %v, want %v", got, want)
	}
}

func TestCanonicalize_LeadingCharOnly(t *testing.T) {
	// The comparator looks at the first character only: "az" and "aa" tie,
	// and the earlier path element keeps the anchor.
	got := Canonicalize([]string{"az", "b", "aa", "az"})
	want := []string{"az", "b", "aa", "az"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Canonicalize = %v, want %v", got, want)
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	paths := [][]string{
		{"c", "a", "b", "c"},
		{"az", "aa", "az"},
		{"x", "x"},
		{"solo", "solo"},
	}
	for _, p := range paths {
		once := Canonicalize(p)
		twice := Canonicalize(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("not idempotent: %v -> %v -> %v", p, once, twice)
		}
	}
}

func TestKey_RotationsCollapse(t *testing.T) {
	a := Key([]string{"a", "b", "c", "a"})
	b := Key([]string{"b", "c", "a", "b"})
	c := Key([]string{"c", "a", "b", "c"})
	if a != b || b != c {
		t.Errorf("rotations should share a key: %q %q %q", a, b, c)
	}
}

func TestKey_DirectionSignificant(t *testing.T) {
	forward := Key([]string{"a", "b", "c", "a"})
	reverse := Key([]string{"a", "c", "b", "a"})
	if forward == reverse {
		t.Errorf("edge-reversed walk must not share a key: %q", forward)
	}
}

func TestDedupe_FirstOccurrenceWins(t *testing.T) {
	in := []Cycle{
		{Path: []string{"b", "c", "a", "b"}, DetectionMethod: MethodDFS},
		{Path: []string{"a", "b", "c", "a"}, DetectionMethod: MethodTarjan},
		{Path: []string{"x", "y", "x"}, DetectionMethod: MethodTarjan},
	}

	out := Dedupe(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 cycles after dedup, got %d", len(out))
	}
	if out[0].DetectionMethod != MethodDFS {
		t.Errorf("first occurrence should survive, got %s", out[0].DetectionMethod)
	}
	if !reflect.DeepEqual(out[0].Path, []string{"b", "c", "a", "b"}) {
		t.Errorf("surviving cycle keeps its original path, got %v", out[0].Path)
	}
}

func TestNormalize_ReturnsCanonicalPath(t *testing.T) {
	c := Cycle{Path: []string{"c", "a", "b", "c"}, Length: 3}
	n := Normalize(c)
	if !reflect.DeepEqual(n.Path, []string{"a", "b", "c", "a"}) {
		t.Errorf("normalized path = %v", n.Path)
	}
	// Input untouched.
	if !reflect.DeepEqual(c.Path, []string{"c", "a", "b", "c"}) {
		t.Errorf("input mutated: %v", c.Path)
	}
}
