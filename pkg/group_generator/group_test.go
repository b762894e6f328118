// Copyright (c) 2023-2024 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package group_generator

import (
	"reflect"
	"testing"
)

func collect(it *CombinationIterator) [][]int {
	var out [][]int
	for combo := it.Next(); combo != nil; combo = it.Next() {
		out = append(out, combo)
	}
	return out
}

func TestCombinationIterator(t *testing.T) {
	tests := []struct {
		name string
		n    int
		r    int
		want [][]int
	}{
		{
			name: "choose 2 of 4",
			n:    4,
			r:    2,
			want: [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}},
		},
		{
			name: "choose all",
			n:    3,
			r:    3,
			want: [][]int{{0, 1, 2}},
		},
		{
			name: "choose 1 of 3",
			n:    3,
			r:    1,
			want: [][]int{{0}, {1}, {2}},
		},
		{
			name: "r larger than n",
			n:    2,
			r:    3,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(NewCombinationIterator(tt.n, tt.r))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("combinations = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFixedFirstIterator(t *testing.T) {
	got := collect(NewFixedFirstIterator(4, 2))
	want := [][]int{{0, 1}, {0, 2}, {0, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("combinations = %v, want %v", got, want)
	}

	// Every split of 6 into 3+3 shows up exactly once.
	got = collect(NewFixedFirstIterator(6, 3))
	if len(got) != 10 {
		t.Errorf("split count = %d, want 10", len(got))
	}
	seen := map[[3]int]bool{}
	for _, combo := range got {
		if combo[0] != 0 {
			t.Errorf("combination %v does not start with 0", combo)
		}
		key := [3]int{combo[0], combo[1], combo[2]}
		if seen[key] {
			t.Errorf("combination %v yielded twice", combo)
		}
		seen[key] = true
	}
}

func TestComplement(t *testing.T) {
	got := Complement(6, []int{0, 2, 5})
	want := []int{1, 3, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Complement = %v, want %v", got, want)
	}
}
