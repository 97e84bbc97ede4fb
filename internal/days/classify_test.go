package days

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		target  int
		variant int
		want    Band
	}{
		{"exact target", 2000, 2000, 100, InRange},
		{"below range", 1850, 2000, 100, BelowRange},
		{"above range", 2150, 2000, 100, AboveRange},
		{"lower bound inclusive", 1900, 2000, 100, InRange},
		{"upper bound inclusive", 2100, 2000, 100, InRange},
		{"one under lower bound", 1899, 2000, 100, BelowRange},
		{"one over upper bound", 2101, 2000, 100, AboveRange},
		{"zero variant on target", 50, 50, 0, InRange},
		{"zero variant off target", 51, 50, 0, AboveRange},
		{"zero record", 0, 0, 0, InRange},
		{"negative total", -5, 0, 0, BelowRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.total, tt.target, tt.variant)
			if got != tt.want {
				t.Errorf("Classify(%d, %d, %d) = %s, want %s", tt.total, tt.target, tt.variant, got, tt.want)
			}
		})
	}
}

// The three bands must partition the integer line: exactly one band per
// total, and the band flips exactly at the two bounds.
func TestClassifyPartition(t *testing.T) {
	target, variant := 100, 30

	for total := target - 2*variant; total <= target+2*variant; total++ {
		got := Classify(total, target, variant)

		var want Band
		switch {
		case total < target-variant:
			want = BelowRange
		case total > target+variant:
			want = AboveRange
		default:
			want = InRange
		}

		if got != want {
			t.Fatalf("Classify(%d, %d, %d) = %s, want %s", total, target, variant, got, want)
		}
	}
}

func TestBandString(t *testing.T) {
	if InRange.String() != "in_range" {
		t.Errorf("InRange.String() = %q", InRange.String())
	}
	if BelowRange.String() != "below" {
		t.Errorf("BelowRange.String() = %q", BelowRange.String())
	}
	if AboveRange.String() != "above" {
		t.Errorf("AboveRange.String() = %q", AboveRange.String())
	}
}

func TestClassifyMetric(t *testing.T) {
	m := Metric{Label: LabelCalories, Total: 1850, Target: 2000, Variant: 100}
	if got := ClassifyMetric(m); got != BelowRange {
		t.Errorf("ClassifyMetric(%+v) = %s, want below", m, got)
	}
}
