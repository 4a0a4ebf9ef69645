package mechanics

import (
	"container/heap"
	"fmt"
	"math"
)

// Path is a route through the graph as an ordered list of edges.
type Path struct {
	Edges []Edge
	Cost  float64
}

// Last returns the final edge of the path.
func (p Path) Last() (Edge, bool) {
	if len(p.Edges) == 0 {
		return Edge{}, false
	}
	return p.Edges[len(p.Edges)-1], true
}

// Count returns how many edges of the given part the path traverses.
func (p Path) Count(part EdgePart) int {
	n := 0
	for _, e := range p.Edges {
		if e.Part == part {
			n++
		}
	}
	return n
}

// ShortestPath computes the minimum-cost path from source to target with
// Dijkstra's algorithm. cost must never return a negative value; a nil cost
// means DefaultCost.
//
// Ties are broken by discovery order: among equal distances the node pushed
// first is settled first, and a node's predecessor only changes on a strictly
// shorter distance. Because outgoing edges are scanned in insertion order the
// result is fully determined by the order the graph was built in.
//
// Returns ErrNoPath when target is unreachable.
//
// Complexity: O((V + E) log V) time, O(V + E) space.
func ShortestPath(g *Graph, source, target NodeID, cost CostFunc) (Path, error) {
	if !g.HasNode(source) {
		return Path{}, fmt.Errorf("%w: source %d", ErrNodeNotFound, source)
	}
	if !g.HasNode(target) {
		return Path{}, fmt.Errorf("%w: target %d", ErrNodeNotFound, target)
	}
	if cost == nil {
		cost = DefaultCost
	}

	r := &runner{
		g:       g,
		cost:    cost,
		dist:    make([]float64, g.NodeCount()),
		prev:    make([]EdgeID, g.NodeCount()),
		visited: make([]bool, g.NodeCount()),
	}
	r.init(source)
	if err := r.process(target); err != nil {
		return Path{}, err
	}

	if math.IsInf(r.dist[target], 1) {
		return Path{}, ErrNoPath
	}
	return r.path(source, target), nil
}

// runner holds the mutable state for a single ShortestPath execution.
type runner struct {
	g       *Graph
	cost    CostFunc
	dist    []float64
	prev    []EdgeID // -1 when unset
	visited []bool
	pq      nodePQ
	seq     int
}

func (r *runner) init(source NodeID) {
	for i := range r.dist {
		r.dist[i] = math.Inf(1)
		r.prev[i] = -1
	}
	r.dist[source] = 0
	heap.Init(&r.pq)
	r.push(source, 0)
}

func (r *runner) push(id NodeID, d float64) {
	heap.Push(&r.pq, &nodeItem{id: id, dist: d, seq: r.seq})
	r.seq++
}

// process settles nodes in distance order until target is settled or the
// heap is exhausted.
func (r *runner) process(target NodeID) error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id
		if r.visited[u] {
			continue
		}
		r.visited[u] = true
		if u == target {
			return nil
		}
		if err := r.relax(u); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) relax(u NodeID) error {
	for _, eid := range r.g.out[u] {
		e := r.g.edges[eid]
		w := r.cost(e)
		if w < 0 {
			return fmt.Errorf("%w: edge %d (%s) cost=%g", ErrNegativeCost, e.ID, e.Part, w)
		}
		v := e.To
		if r.visited[v] {
			continue
		}
		nd := r.dist[u] + w
		if nd >= r.dist[v] {
			continue
		}
		r.dist[v] = nd
		r.prev[v] = eid
		r.push(v, nd)
	}
	return nil
}

// path walks predecessor edges back from target.
func (r *runner) path(source, target NodeID) Path {
	var rev []Edge
	for at := target; at != source; {
		e := r.g.edges[r.prev[at]]
		rev = append(rev, e)
		at = e.From
	}
	edges := make([]Edge, len(rev))
	for i := range rev {
		edges[i] = rev[len(rev)-1-i]
	}
	return Path{Edges: edges, Cost: r.dist[target]}
}

// nodeItem is a heap entry. seq records push order for tie-breaking.
type nodeItem struct {
	id   NodeID
	dist float64
	seq  int
}

// nodePQ is a min-heap of *nodeItem ordered by (dist, seq). Stale entries are
// skipped when popped ("lazy decrease-key").
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].seq < pq[j].seq
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
