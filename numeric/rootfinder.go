package numeric

// RootFinderResult is the certified enclosure returned by IntervalRootFinder.
type RootFinderResult struct {
	// Enclosure is a sub-interval of Domain containing a root of f that also
	// satisfies inside. Valid only when Hit is true.
	Enclosure Interval
	Hit       bool
}

// IntervalRootFinder searches for the earliest t in domain such that
// f(t) == 0 (in the certified-interval sense: 0 is in f's enclosure of t)
// and inside(t) holds, to within tol.
//
// It maintains a LIFO stack of candidate subintervals, always splitting and
// pushing the right half before the left half so the left half is explored
// first — this makes the traversal left-to-right (earliest-time-first), so
// the first accepted enclosure found is also the earliest.
//
// Conservativeness: reported TOI should be read as Enclosure.Lo, which
// under-approximates and is therefore always safe for barrier evaluation.
// A false negative is impossible; IntervalRootFinder only reports Hit=false
// once the entire domain has been proven root-free to within tol.
func IntervalRootFinder(
	f func(Interval) Interval,
	inside func(Interval) bool,
	domain Interval,
	tol float64,
) RootFinderResult {
	stack := []Interval{domain}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		d := f(i)
		if !ZeroIn(d) {
			continue // f cannot be zero anywhere in i: discard
		}

		if i.Width() <= tol {
			if inside(i) {
				return RootFinderResult{Enclosure: i, Hit: true}
			}
			continue // root candidate fails the geometric containment test
		}

		left, right := i.Split()
		// Push right first so left pops first (left-first == earliest-first).
		stack = append(stack, right, left)
	}

	return RootFinderResult{Hit: false}
}
