// Package bfs provides breadth-first search over the variables of a
// core.Graph, returning hop distances, parent links, and visit order.
//
// Two variables are adjacent when they share a function node. Components
// partitions all variables into independent blocks.
package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/proxgraph/core"
)

// ErrNeighbors is returned when fetching the edges of a function fails,
// e.g. because the graph was mutated during the traversal.
var ErrNeighbors = errors.New("bfs: neighbor iteration error")

// queueItem pairs a variable ID with its BFS depth.
type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph   *core.Graph
	opts    BFSOptions
	ctx     context.Context
	queue   []queueItem
	visited map[string]bool
	res     *BFSResult
}

func resolve(opts []Option) (BFSOptions, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}

// BFS runs breadth-first search on g starting from variable startID,
// applying any number of functional Options.
// Returns ErrGraphNil or ErrStartVariableNotFound for invalid input,
// ErrOptionViolation for bad options, ErrNeighbors for graph failures,
// or any user-supplied hook error.
func BFS(g *core.Graph, startID string, opts ...Option) (*BFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	if !g.HasVariable(startID) {
		return nil, ErrStartVariableNotFound
	}

	w := newWalker(g, o, len(g.Variables()))
	w.enqueue(startID, 0, "")

	return w.res, w.loop()
}

// Components partitions the variables of g into connected blocks. Blocks
// are ordered by their first variable in g.Variables() order and each block
// lists its variables in BFS visit order. Hooks and MaxDepth apply to every
// block.
func Components(g *core.Graph, opts ...Option) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}

	vars := g.Variables()
	w := newWalker(g, o, len(vars))
	var blocks [][]string
	for _, id := range vars {
		if w.visited[id] {
			continue
		}
		start := len(w.res.Order)
		w.enqueue(id, 0, "")
		if err := w.loop(); err != nil {
			return nil, err
		}
		blocks = append(blocks, w.res.Order[start:len(w.res.Order):len(w.res.Order)])
	}

	return blocks, nil
}

func newWalker(g *core.Graph, o BFSOptions, n int) *walker {
	return &walker{
		graph:   g,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem, 0, n),
		visited: make(map[string]bool, n),
		res: &BFSResult{
			Order:  make([]string, 0, n),
			Depth:  make(map[string]int, n),
			Parent: make(map[string]string, n),
		},
	}
}

// enqueue marks id visited at depth d, calls OnEnqueue, records its parent,
// and adds it to the queue.
func (w *walker) enqueue(id string, d int, parent string) {
	w.visited[id] = true
	w.res.Depth[id] = d
	if parent != "" {
		w.res.Parent[id] = parent
	}
	w.opts.OnEnqueue(id, d)
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.dequeue()
		if err := w.visit(item); err != nil {
			return err
		}
		if err := w.enqueueNeighbors(item); err != nil {
			return err
		}
	}
	return nil
}

// dequeue pops the first item, invokes OnDequeue, and returns it.
func (w *walker) dequeue() queueItem {
	item := w.queue[0]
	w.queue = w.queue[1:]
	w.opts.OnDequeue(item.id, item.depth)
	return item
}

// visit records the variable in Order and calls OnVisit.
func (w *walker) visit(item queueItem) error {
	w.res.Order = append(w.res.Order, item.id)
	if err := w.opts.OnVisit(item.id, item.depth); err != nil {
		return fmt.Errorf("bfs: OnVisit error at %q: %w", item.id, err)
	}
	return nil
}

// enqueueNeighbors walks variable → function → variable in edge insertion
// order and enqueues each unseen neighbor.
func (w *walker) enqueueNeighbors(item queueItem) error {
	nextDepth := item.depth + 1
	if w.opts.MaxDepth > 0 && nextDepth > w.opts.MaxDepth {
		return nil
	}
	for _, ve := range w.graph.EdgesByVariable(item.id) {
		if w.opts.ObjectiveOnly && ve.Function.Constraint {
			continue
		}
		fes, err := w.graph.EdgesByFunction(ve.Function)
		if err != nil {
			return fmt.Errorf("%w: edges of a function of %q: %v", ErrNeighbors, item.id, err)
		}
		for _, fe := range fes {
			nbr := fe.Variable
			if w.visited[nbr] || !w.opts.FilterNeighbor(item.id, nbr) {
				continue
			}
			w.enqueue(nbr, nextDepth, item.id)
		}
	}
	return nil
}
