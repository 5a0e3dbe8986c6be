package solver

// Mex returns the minimum excludant of the given values: the smallest
// non-negative integer not present. The Grundy number of a position is the
// mex of its successors' Grundy numbers.
func Mex(values []int) int {
	present := make(map[int]struct{}, len(values))
	for _, v := range values {
		present[v] = struct{}{}
	}
	for m := 0; ; m++ {
		if _, ok := present[m]; !ok {
			return m
		}
	}
}
