package customer

import (
	"math"
	"sort"
)

// AverageNameLength returns the mean length of the names, or zero if there are none.
func AverageNameLength(names []string) float64 {
	if len(names) == 0 {
		return 0
	}
	total := 0
	for _, n := range names {
		total += len(n)
	}
	return float64(total) / float64(len(names))
}

// NameClosestToAverage returns the first name whose length is closest to the given average.
// It returns false if there are no names.
func NameClosestToAverage(names []string, average float64) (string, bool) {
	if len(names) == 0 {
		return "", false
	}
	best := names[0]
	bestDistance := math.Abs(float64(len(best)) - average)
	for _, n := range names[1:] {
		if d := math.Abs(float64(len(n)) - average); d < bestDistance {
			best, bestDistance = n, d
		}
	}
	return best, true
}

// SortNames returns a sorted copy of the names.
func SortNames(names []string, descending bool) []string {
	ret := append([]string(nil), names...)
	if descending {
		sort.Sort(sort.Reverse(sort.StringSlice(ret)))
	} else {
		sort.Strings(ret)
	}
	return ret
}

// FirstNames returns the first name of each customer, in order.
func FirstNames(customers []Customer) []string {
	ret := make([]string, len(customers))
	for i, c := range customers {
		ret[i] = c.FirstName
	}
	return ret
}
