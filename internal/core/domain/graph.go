// Package domain contains the core domain models of the worker build pipeline.
package domain

import (
	"iter"
	"strings"

	"go.trai.ch/zerr"
)

// Graph is the dependency graph of pipeline stages.
type Graph struct {
	stages         map[string]Stage
	order          []string
	executionOrder []string
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		stages: make(map[string]Stage),
	}
}

// AddStage adds a stage to the graph.
// It returns an error if a stage with the same name already exists.
func (g *Graph) AddStage(s Stage) error {
	if _, exists := g.stages[s.Name]; exists {
		return zerr.With(ErrStageAlreadyExists, "stage", s.Name)
	}
	g.stages[s.Name] = s
	g.order = append(g.order, s.Name)
	return nil
}

// Len returns the number of stages.
func (g *Graph) Len() int {
	return len(g.stages)
}

// Validate checks for cycles and missing dependencies using a topological
// sort and fixes the execution order. Stages without an ordering constraint
// keep their insertion order.
func (g *Graph) Validate() error {
	g.executionOrder = make([]string, 0, len(g.stages))
	visited := make(map[string]int) // 0: unvisited, 1: visiting, 2: visited
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		visited[name] = 1
		path = append(path, name)

		stage, exists := g.stages[name]
		if !exists {
			return zerr.With(ErrMissingDependency, "dependency", name)
		}

		for _, dep := range stage.Dependencies {
			switch visited[dep] {
			case 1:
				return g.buildCycleError(path, dep)
			case 0:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[name] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, name)
		return nil
	}

	for _, name := range g.order {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

func (g *Graph) buildCycleError(path []string, dep string) error {
	start := 0
	for i, node := range path {
		if node == dep {
			start = i
			break
		}
	}
	cycle := append(append([]string{}, path[start:]...), dep)
	return zerr.With(ErrCycleDetected, "cycle", strings.Join(cycle, " -> "))
}

// Walk returns an iterator that yields stages in execution order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[Stage] {
	return func(yield func(Stage) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.stages[name]) {
				return
			}
		}
	}
}
