package forest

// leaf marks a terminal node in Tree.Feature
const leaf = -1

// Tree is a binary decision tree stored as parallel node arrays so it encodes
// with gob without pointers. Node 0 is the root.
type Tree struct {
	Feature   []int
	Threshold []float64
	Left      []int
	Right     []int
	// Value is the leaf output: a single mean for regression trees,
	// a class distribution for classification trees
	Value [][]float64
}

func (t *Tree) addNode(value []float64) int {
	t.Feature = append(t.Feature, leaf)
	t.Threshold = append(t.Threshold, 0)
	t.Left = append(t.Left, leaf)
	t.Right = append(t.Right, leaf)
	t.Value = append(t.Value, value)
	return len(t.Feature) - 1
}

func (t *Tree) setSplit(node, feature int, threshold float64, left, right int) {
	t.Feature[node] = feature
	t.Threshold[node] = threshold
	t.Left[node] = left
	t.Right[node] = right
}

// Leaf follows x down the tree and returns the reached leaf value
func (t *Tree) Leaf(x []float64) []float64 {
	node := 0
	for t.Feature[node] != leaf {
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = t.Left[node]
		} else {
			node = t.Right[node]
		}
	}
	return t.Value[node]
}

// NodeCount is the number of nodes including leaves
func (t *Tree) NodeCount() int {
	return len(t.Feature)
}

// Depth is the length of the longest root to leaf path
func (t *Tree) Depth() int {
	if len(t.Feature) == 0 {
		return 0
	}
	var walk func(node int) int
	walk = func(node int) int {
		if t.Feature[node] == leaf {
			return 0
		}
		l, r := walk(t.Left[node]), walk(t.Right[node])
		if l > r {
			return l + 1
		}
		return r + 1
	}
	return walk(0)
}
