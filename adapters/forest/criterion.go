package forest

// criterion scores candidate splits. Scores are totals over the node
// (sum of squared errors, or sample-weighted Gini), lower is better.
type criterion interface {
	value(idx []int) []float64
	impurity(idx []int) float64
	// bestSplit scans idx sorted by feature f and returns the left size of the
	// best boundary between distinct feature values
	bestSplit(x [][]float64, idx []int, f, minLeaf int) (pos int, score float64, ok bool)
}

type varianceCriterion struct {
	y []float64
}

func (c varianceCriterion) value(idx []int) []float64 {
	sum := 0.0
	for _, i := range idx {
		sum += c.y[i]
	}
	return []float64{sum / float64(len(idx))}
}

func (c varianceCriterion) impurity(idx []int) float64 {
	var sum, sq float64
	for _, i := range idx {
		sum += c.y[i]
		sq += c.y[i] * c.y[i]
	}
	return sq - sum*sum/float64(len(idx))
}

func (c varianceCriterion) bestSplit(x [][]float64, idx []int, f, minLeaf int) (int, float64, bool) {
	n := len(idx)
	var totalSum, totalSq float64
	for _, i := range idx {
		totalSum += c.y[i]
		totalSq += c.y[i] * c.y[i]
	}

	bestPos, bestScore, found := 0, 0.0, false
	var leftSum, leftSq float64
	for pos := 1; pos < n; pos++ {
		v := c.y[idx[pos-1]]
		leftSum += v
		leftSq += v * v
		if pos < minLeaf || n-pos < minLeaf {
			continue
		}
		if x[idx[pos-1]][f] >= x[idx[pos]][f] {
			continue
		}
		nl, nr := float64(pos), float64(n-pos)
		rightSum, rightSq := totalSum-leftSum, totalSq-leftSq
		score := (leftSq - leftSum*leftSum/nl) + (rightSq - rightSum*rightSum/nr)
		if !found || score < bestScore {
			bestPos, bestScore, found = pos, score, true
		}
	}
	return bestPos, bestScore, found
}

type giniCriterion struct {
	y       []int
	classes int
}

func (c giniCriterion) counts(idx []int) []float64 {
	counts := make([]float64, c.classes)
	for _, i := range idx {
		counts[c.y[i]]++
	}
	return counts
}

func (c giniCriterion) value(idx []int) []float64 {
	dist := c.counts(idx)
	n := float64(len(idx))
	for k := range dist {
		dist[k] /= n
	}
	return dist
}

func (c giniCriterion) impurity(idx []int) float64 {
	n := float64(len(idx))
	sq := 0.0
	for _, v := range c.counts(idx) {
		sq += v * v
	}
	return n - sq/n
}

func (c giniCriterion) bestSplit(x [][]float64, idx []int, f, minLeaf int) (int, float64, bool) {
	n := len(idx)
	right := c.counts(idx)
	left := make([]float64, c.classes)
	rightSq := 0.0
	for _, v := range right {
		rightSq += v * v
	}
	leftSq := 0.0

	bestPos, bestScore, found := 0, 0.0, false
	for pos := 1; pos < n; pos++ {
		k := c.y[idx[pos-1]]
		leftSq += 2*left[k] + 1
		left[k]++
		rightSq -= 2*right[k] - 1
		right[k]--
		if pos < minLeaf || n-pos < minLeaf {
			continue
		}
		if x[idx[pos-1]][f] >= x[idx[pos]][f] {
			continue
		}
		nl, nr := float64(pos), float64(n-pos)
		score := float64(n) - leftSq/nl - rightSq/nr
		if !found || score < bestScore {
			bestPos, bestScore, found = pos, score, true
		}
	}
	return bestPos, bestScore, found
}
