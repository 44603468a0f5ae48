package checklist

import (
	"math"
	"testing"
)

func TestAddPointsSaturates(t *testing.T) {
	cases := []struct {
		total, weight, want int
	}{
		{0, 5, 5},
		{30, 0, 30},
		{math.MaxInt - 1, 1, math.MaxInt},
		{math.MaxInt - 1, 2, math.MaxInt},
		{math.MaxInt, MaxWeight, math.MaxInt},
	}
	for _, tc := range cases {
		if got := addPoints(tc.total, tc.weight); got != tc.want {
			t.Fatalf("addPoints(%d, %d) = %d, want %d", tc.total, tc.weight, got, tc.want)
		}
	}
}
