package domain

import "context"

// Stage is one step of the build pipeline.
type Stage struct {
	Name         string
	Dependencies []string
	Run          func(ctx context.Context) error
}

// Names of the build pipeline stages in execution order.
const (
	StagePreflight = "preflight"
	StageCheck     = "check"
	StageTools     = "tools"
	StageCompile   = "compile"
	StageBindgen   = "bindgen"
	StageBundle    = "bundle"
	StageOptimize  = "optimize"
	StageRecord    = "record"
)
