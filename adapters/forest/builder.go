package forest

import (
	"math/rand"
	"sort"

	"agrismart/ports"
)

const minImprovement = 1e-9

type builder struct {
	x         [][]float64
	crit      criterion
	params    ports.ForestParams
	nFeatures int
	rng       *rand.Rand
	tree      *Tree
}

// grow fits one tree on a bootstrap sample drawn from rng
func grow(x [][]float64, crit criterion, params ports.ForestParams, rng *rand.Rand) *Tree {
	n := len(x)
	sample := make([]int, n)
	for i := range sample {
		sample[i] = rng.Intn(n)
	}

	b := &builder{
		x:         x,
		crit:      crit,
		params:    params,
		nFeatures: len(x[0]),
		rng:       rng,
		tree:      &Tree{},
	}
	b.build(sample, 0)
	return b.tree
}

func (b *builder) build(idx []int, depth int) int {
	node := b.tree.addNode(b.crit.value(idx))

	n := len(idx)
	if depth >= b.params.MaxDepth || n < b.params.MinSamplesSplit || n < 2*b.params.MinSamplesLeaf {
		return node
	}
	parent := b.crit.impurity(idx)
	if parent <= minImprovement {
		return node
	}

	// Candidates beyond MaxFeatures are only inspected while no valid split has been found.
	candidates := b.rng.Perm(b.nFeatures)
	budget := b.params.MaxFeatures
	if budget <= 0 || budget > b.nFeatures {
		budget = b.nFeatures
	}

	bestFeature, bestScore := leaf, parent
	var bestSorted []int
	var bestPos int
	sorted := make([]int, n)
	for inspected, f := range candidates {
		if inspected >= budget && bestFeature != leaf {
			break
		}
		copy(sorted, idx)
		sort.SliceStable(sorted, func(i, j int) bool {
			return b.x[sorted[i]][f] < b.x[sorted[j]][f]
		})
		pos, score, ok := b.crit.bestSplit(b.x, sorted, f, b.params.MinSamplesLeaf)
		if !ok || score >= bestScore-minImprovement {
			continue
		}
		bestFeature, bestScore, bestPos = f, score, pos
		bestSorted = append(bestSorted[:0], sorted...)
	}
	if bestFeature == leaf {
		return node
	}

	lo := b.x[bestSorted[bestPos-1]][bestFeature]
	hi := b.x[bestSorted[bestPos]][bestFeature]
	threshold := lo + (hi-lo)/2
	if threshold >= hi {
		threshold = lo
	}

	left := b.build(bestSorted[:bestPos], depth+1)
	right := b.build(bestSorted[bestPos:], depth+1)
	b.tree.setSplit(node, bestFeature, threshold, left, right)
	return node
}
