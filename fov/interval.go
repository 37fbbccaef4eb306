package fov

// Interval is a 1D span used by the sweep-line set-difference.
type Interval struct {
	Start float32
	End   float32
}

func NewInterval(start, end float32) Interval {
	return Interval{Start: start, End: end}
}

func (i Interval) IsValid() bool {
	return i.Start < i.End
}

// SubtractIntervals splits base around every overlapping cut and returns the
// remaining spans. Empty results are discarded.
func SubtractIntervals(base Interval, cuts []Interval) []Interval {
	result := []Interval{base}

	for _, cut := range cuts {
		var next []Interval

		for _, iv := range result {
			if iv.End <= cut.Start || iv.Start >= cut.End {
				next = append(next, iv)
				continue
			}

			if iv.Start < cut.Start {
				next = append(next, Interval{Start: iv.Start, End: cut.Start})
			}
			if iv.End > cut.End {
				next = append(next, Interval{Start: cut.End, End: iv.End})
			}
		}

		result = next
	}

	return result
}
