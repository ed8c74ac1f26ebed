package date

import "fmt"

// Range represents a range of dates, such as a statement period.
type Range struct{ From, To Date }

// NewRange builds a range from two dates, swapping them if needed.
func NewRange(from, to Date) Range {
	if to.Before(from) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Overlaps reports whether the two ranges share at least one day.
func (r Range) Overlaps(o Range) bool { return !r.To.Before(o.From) && !o.To.Before(r.From) }

// String formats the range as "from - to" using the standard date format.
func (r Range) String() string { return fmt.Sprintf("%s - %s", r.From, r.To) }
