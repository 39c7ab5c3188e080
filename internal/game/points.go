package game

// PointTable holds the points awarded for a correct guess, indexed by the
// number of incorrect guesses made before it. The last entry applies to
// every later guess.
var PointTable = [...]int{100, 50, 40, 30, 10}

// Points returns the award for a correct guess after misses wrong ones.
func Points(misses int) int {
	return PointTable[pointIndex(misses)]
}

// Progress returns the points on offer after misses wrong guesses as a
// fraction of the maximum award.
func Progress(misses int) float64 {
	return float64(Points(misses)) / float64(PointTable[0])
}

func pointIndex(misses int) int {
	return min(max(misses, 0), len(PointTable)-1)
}
