package haiku

// lineState tracks which line of a haiku is currently being filled.
type lineState uint8

const (
	accumulatingFirst lineState = iota
	accumulatingSecond
	accumulatingThird
	done
)

// lineTargets is the exact syllable count each line must land on.
var lineTargets = [...]int{
	accumulatingFirst:  5,
	accumulatingSecond: 7,
	accumulatingThird:  5,
}

// advance returns the state that follows once a word brings the active line's running total to
// total. A line closes only when total is exactly its target; overshooting leaves the state alone.
func advance(state lineState, total int) (next lineState, closed bool) {
	if state >= done {
		return done, false
	}
	if total == lineTargets[state] {
		return state + 1, true
	}
	return state, false
}

// Segmentation holds, for each of the three lines, the index one past its last word.
type Segmentation [3]int

// Bounds returns the half-open word range [start, end) of line i.
func (s Segmentation) Bounds(i int) (start, end int) {
	if i > 0 {
		start = s[i-1]
	}
	return start, s[i]
}

// Segment greedily splits a sequence of per-word syllable counts into lines of 5, 7 and 5
// syllables. Segmentation stops as soon as the third line closes; later words are not part of
// the haiku. ok is false when the counts do not land exactly on every target.
func Segment(counts []int) (seg Segmentation, ok bool) {
	state, total := accumulatingFirst, 0
	for i, count := range counts {
		total += count
		next, closed := advance(state, total)
		if !closed {
			continue
		}
		seg[state] = i + 1
		state, total = next, 0
		if state == done {
			return seg, true
		}
	}
	return Segmentation{}, false
}
