package state

import (
	"github.com/janpfeifer/hexhive/internal/generics"
	"github.com/zyedidia/generic/mapset"
)

// noPos is outside any board, used when no position should be ignored.
var noPos = Pos{-1, -1}

// IsRemovable reports whether the hive stays connected if the piece at pos were lifted off
// the board (the one-hive rule). If pos is empty it reports whether the hive is connected.
//
// It flood-fills the occupied cells, skipping pos, and compares the number of cells reached
// with the number of pieces left. A hive of 0 or 1 pieces is trivially connected.
func (b *Board) IsRemovable(pos Pos) bool {
	remaining := b.numPieces
	if b.HasPiece(pos) {
		remaining--
	}
	if remaining <= 1 {
		return true
	}

	start := noPos
	for occupied := range b.OccupiedPositionsIter() {
		if occupied != pos {
			start = occupied
			break
		}
	}
	visited := mapset.New[Pos]()
	visited.Put(start)
	stack := []Pos{start}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range current.NeighboursIter(b.size) {
			if next == pos || visited.Has(next) || !b.HasPiece(next) {
				continue
			}
			visited.Put(next)
			stack = append(stack, next)
		}
	}
	return visited.Size() == remaining
}

// IsConnected returns whether all pieces on the board form a single hive.
func (b *Board) IsConnected() bool {
	return b.IsRemovable(noPos)
}

// RemovablePositions returns the set of occupied positions whose piece can be lifted without
// breaking the hive: the same answer as calling IsRemovable on every piece, but in one pass
// over a connected hive, by finding the articulation points of the hive graph.
//
// A hive that is already split (never the case in a game) falls back to IsRemovable per piece.
func (b *Board) RemovablePositions() generics.Set[Pos] {
	removable := generics.MakeSet[Pos](b.numPieces)
	if b.numPieces <= 2 {
		// At most one piece is left after lifting any of them.
		for pos := range b.OccupiedPositionsIter() {
			removable.Insert(pos)
		}
		return removable
	}

	ap := newArticulationPoints(b)
	if !ap.find() {
		for pos := range b.OccupiedPositionsIter() {
			if b.IsRemovable(pos) {
				removable.Insert(pos)
			}
		}
		return removable
	}
	for nodeIdx, isArticulation := range ap.isArticulation {
		if !isArticulation {
			removable.Insert(ap.positions[nodeIdx])
		}
	}
	return removable
}

// articulationPoints holds the hive seen as a graph, where each node is an occupied position.
type articulationPoints struct {
	positions      []Pos
	edges          [][]int // Per node, the indices of the neighbouring nodes.
	tIn, tLow      []int
	isArticulation []bool
}

func newArticulationPoints(b *Board) *articulationPoints {
	ap := &articulationPoints{positions: b.OccupiedPositions()}
	numNodes := len(ap.positions)
	posToNode := make(map[Pos]int, numNodes)
	for nodeIdx, pos := range ap.positions {
		posToNode[pos] = nodeIdx
	}
	ap.edges = make([][]int, numNodes)
	for nodeIdx, pos := range ap.positions {
		for _, neighbour := range b.OccupiedNeighbours(pos) {
			ap.edges[nodeIdx] = append(ap.edges[nodeIdx], posToNode[neighbour])
		}
	}
	ap.tIn = make([]int, numNodes)
	ap.tLow = make([]int, numNodes)
	ap.isArticulation = make([]bool, numNodes)
	return ap
}

// dfsFrame is one level of the explicit DFS stack: the node, its DFS parent, and the index
// of the next edge to explore.
type dfsFrame struct {
	node, parent, nextEdge int
}

// find marks the articulation points in O(N+M), N = #nodes, M = #edges,
// see description in https://cp-algorithms.com/graph/cutpoints.html
//
// tIn is the time a node is first visited, and tLow is the lowest tIn reachable from the node's
// DFS subtree through a single back-edge. A non-root node is an articulation point if some
// child can't reach above it. The DFS uses an explicit stack, so it doesn't depend on recursion depth.
//
// It returns false if the graph is not connected.
func (ap *articulationPoints) find() bool {
	const root = 0
	t := 1
	ap.tIn[root], ap.tLow[root] = t, t
	rootChildren := 0
	stack := []dfsFrame{{node: root, parent: -1}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.nextEdge < len(ap.edges[top.node]) {
			from := top.node
			next := ap.edges[from][top.nextEdge]
			top.nextEdge++
			if next == top.parent {
				continue
			}
			if ap.tIn[next] != 0 {
				// Back-edge to a node already visited.
				ap.tLow[from] = min(ap.tLow[from], ap.tIn[next])
				continue
			}
			t++
			ap.tIn[next], ap.tLow[next] = t, t
			if from == root {
				rootChildren++
			}
			stack = append(stack, dfsFrame{node: next, parent: from})
			continue
		}

		// All edges of top.node explored: propagate tLow to the parent.
		node, parent := top.node, top.parent
		stack = stack[:len(stack)-1]
		if parent < 0 {
			continue
		}
		ap.tLow[parent] = min(ap.tLow[parent], ap.tLow[node])
		if parent != root && ap.tLow[node] >= ap.tIn[parent] {
			ap.isArticulation[parent] = true
		}
	}
	ap.isArticulation[root] = rootChildren > 1

	for _, tIn := range ap.tIn {
		if tIn == 0 {
			return false
		}
	}
	return true
}
