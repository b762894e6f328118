// Copyright (c) 2023-2024 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package group_generator enumerates the ways a block of teams can be
// split into alliances. The pairing engine walks these splits looking
// for the one with the fewest repeat pairings.
package group_generator

// CombinationIterator yields r-element index combinations of n elements
// in lexicographic order.
//
// With fixFirst set, index 0 appears in every combination. When the
// complement of a combination forms the opposing alliance, freeing the
// first element would revisit every split a second time with the two
// sides swapped.
type CombinationIterator struct {
	n        int
	r        int
	indices  []int
	done     bool
	fixFirst bool
}

func NewCombinationIterator(n, r int) *CombinationIterator {
	c := &CombinationIterator{n: n, r: r}
	if r <= 0 || r > n {
		c.done = true
		return c
	}
	c.indices = make([]int, r)
	for i := range c.indices {
		c.indices[i] = i
	}
	return c
}

// NewFixedFirstIterator is NewCombinationIterator with index 0 pinned
// into every combination.
func NewFixedFirstIterator(n, r int) *CombinationIterator {
	c := NewCombinationIterator(n, r)
	c.fixFirst = true
	return c
}

// Next returns the next combination as a fresh slice, or nil when the
// iterator is exhausted.
func (c *CombinationIterator) Next() []int {
	if c.done {
		return nil
	}

	out := make([]int, c.r)
	copy(out, c.indices)

	lo := 0
	if c.fixFirst {
		lo = 1
	}
	// Find the rightmost index that has not reached its final position,
	// e.g. n=5 r=3: [0,3,4] -> 3 and 4 are maxed, 0 can still move.
	i := c.r - 1
	for ; i >= lo && c.indices[i] == c.n-c.r+i; i-- {
	}
	if i < lo {
		c.done = true
	} else {
		c.indices[i]++
		for j := i + 1; j < c.r; j++ {
			c.indices[j] = c.indices[j-1] + 1
		}
	}

	return out
}

// Complement returns the indices of [0,n) not present in combination,
// in ascending order.
func Complement(n int, combination []int) []int {
	taken := make([]bool, n)
	for _, i := range combination {
		taken[i] = true
	}
	out := make([]int, 0, n-len(combination))
	for i := 0; i < n; i++ {
		if !taken[i] {
			out = append(out, i)
		}
	}
	return out
}
