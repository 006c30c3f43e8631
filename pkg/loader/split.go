package loader

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Split holds disjoint row indices for the train and test partitions, each
// in ascending order.
type Split struct {
	Train []int
	Test  []int
}

// StratifiedSplit partitions row indices so each label value keeps its share
// of rows in both partitions. For every class, round(n_class * testRatio)
// rows chosen by a seeded shuffle go to the test partition.
func StratifiedSplit(y []float64, testRatio float64, seed int64) (Split, error) {
	if testRatio <= 0 || testRatio >= 1 {
		return Split{}, fmt.Errorf("test ratio must be in (0, 1), got %v", testRatio)
	}

	byClass := map[float64][]int{}
	for i, v := range y {
		byClass[v] = append(byClass[v], i)
	}
	classes := make([]float64, 0, len(byClass))
	for c := range byClass {
		classes = append(classes, c)
	}
	sort.Float64s(classes)

	rng := rand.New(rand.NewSource(seed))
	var s Split
	for _, c := range classes {
		idx := byClass[c]
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		nTest := int(math.Round(float64(len(idx)) * testRatio))
		s.Test = append(s.Test, idx[:nTest]...)
		s.Train = append(s.Train, idx[nTest:]...)
	}
	if len(s.Train) == 0 || len(s.Test) == 0 {
		return Split{}, fmt.Errorf("split of %d rows at ratio %v leaves an empty partition", len(y), testRatio)
	}
	sort.Ints(s.Train)
	sort.Ints(s.Test)
	return s, nil
}
