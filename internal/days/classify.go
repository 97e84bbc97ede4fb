package days

// Band classifies a nutrient total against its target range.
type Band int

const (
	InRange Band = iota
	BelowRange
	AboveRange
)

func (b Band) String() string {
	switch b {
	case BelowRange:
		return "below"
	case AboveRange:
		return "above"
	default:
		return "in_range"
	}
}

// Classify maps a (total, target, variant) triple to a band. Bounds are
// inclusive: total == target-variant and total == target+variant are both
// in range. For variant >= 0 the three bands partition the integers
// exhaustively and exclusively.
func Classify(total, target, variant int) Band {
	min := target - variant
	max := target + variant

	switch {
	case total < min:
		return BelowRange
	case total > max:
		return AboveRange
	default:
		return InRange
	}
}

// ClassifyMetric classifies a metric's own total against its range.
func ClassifyMetric(m Metric) Band {
	return Classify(m.Total, m.Target, m.Variant)
}
