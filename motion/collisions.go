package motion

import (
	"fmt"
	"iter"
)

// Collisions is the ordered list of contacts recorded during one
// MoveAndSlide call. Index 0 is the platform pre-pass contact when it fired.
type Collisions struct {
	results []Result
}

func (c *Collisions) reset() {
	c.results = c.results[:0]
}

func (c Collisions) clone() Collisions {
	if len(c.results) == 0 {
		return Collisions{}
	}
	return Collisions{results: append([]Result(nil), c.results...)}
}

func (c *Collisions) add(r Result) {
	c.results = append(c.results, r)
}

// Count returns the number of contacts recorded.
func (c Collisions) Count() int {
	return len(c.results)
}

// At returns the i-th contact. An out of range index returns the zero Result
// and ErrSlideIndex.
func (c Collisions) At(i int) (Result, error) {
	if i < 0 || i >= len(c.results) {
		return Result{}, fmt.Errorf("%w: index %d, count %d", ErrSlideIndex, i, len(c.results))
	}
	return c.results[i], nil
}

// Last returns the most recent contact.
func (c Collisions) Last() (Result, bool) {
	if len(c.results) == 0 {
		return Result{}, false
	}
	return c.results[len(c.results)-1], true
}

// All iterates the contacts in the order they were resolved.
func (c Collisions) All() iter.Seq2[int, Result] {
	return func(yield func(int, Result) bool) {
		for i, r := range c.results {
			if !yield(i, r) {
				return
			}
		}
	}
}
