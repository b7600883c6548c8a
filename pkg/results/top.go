package results

import "container/heap"

// RankedNode is a node with its score, in original ids.
type RankedNode struct {
	NodeID uint64  `json:"nodeId"`
	Score  float64 `json:"score"`
}

type scored struct {
	node  int
	score float64
}

// rankedHeap is a min-heap on score; among equal scores the larger node id
// sits on top so it is the first one evicted.
type rankedHeap []scored

func (h rankedHeap) Len() int { return len(h) }
func (h rankedHeap) Less(i, j int) bool {
	if h[i].score != h[j].score {
		return h[i].score < h[j].score
	}
	return h[i].node > h[j].node
}
func (h rankedHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *rankedHeap) Push(x any) { *h = append(*h, x.(scored)) }

func (h *rankedHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// TopNodes returns the k highest scores, best first, in O(n log k). Ties
// go to the smaller node id.
func TopNodes(ids IDMap, scores []float64, k int) []RankedNode {
	if k <= 0 {
		return nil
	}
	if ids == nil {
		ids = Identity{}
	}
	h := make(rankedHeap, 0, min(k, len(scores)))
	for node, s := range scores {
		e := scored{node: node, score: s}
		if h.Len() < k {
			heap.Push(&h, e)
		} else if less(h[0], e) {
			heap.Pop(&h)
			heap.Push(&h, e)
		}
	}

	out := make([]RankedNode, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		e := heap.Pop(&h).(scored)
		out[i] = RankedNode{NodeID: ids.OriginalID(e.node), Score: e.score}
	}
	return out
}

// less reports whether a ranks below b
func less(a, b scored) bool {
	return rankedHeap{a, b}.Less(0, 1)
}
