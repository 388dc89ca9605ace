// Package scheduler runs the stages of the build pipeline.
package scheduler

import (
	"context"
	"sync"

	"go.trai.ch/wbuild/internal/core/domain"
	"go.trai.ch/wbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Scheduler executes the stages of a graph one at a time in dependency order.
// Every stage is recorded as a telemetry vertex.
type Scheduler struct {
	telemetry ports.Telemetry

	mu          sync.RWMutex
	stageStatus map[string]domain.StageStatus
}

// NewScheduler creates a new Scheduler recording stages on telemetry.
func NewScheduler(telemetry ports.Telemetry) *Scheduler {
	return &Scheduler{
		telemetry:   telemetry,
		stageStatus: make(map[string]domain.StageStatus),
	}
}

// initStageStatuses resets every stage in the graph to Pending.
func (s *Scheduler) initStageStatuses(g *domain.Graph) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.stageStatus)
	for stage := range g.Walk() {
		s.stageStatus[stage.Name] = domain.StageStatusPending
	}
}

func (s *Scheduler) updateStatus(name string, status domain.StageStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stageStatus[name] = status
}

// Status returns the status of a stage in the most recent run.
func (s *Scheduler) Status(name string) domain.StageStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stageStatus[name]
}

// Run validates the graph and executes its stages serially. The first failing
// stage stops the run; the stages after it are marked skipped.
func (s *Scheduler) Run(ctx context.Context, g *domain.Graph) error {
	if err := g.Validate(); err != nil {
		return err
	}
	s.initStageStatuses(g)

	var runErr error
	for stage := range g.Walk() {
		if runErr != nil {
			s.updateStatus(stage.Name, domain.StageStatusSkipped)
			continue
		}
		if err := ctx.Err(); err != nil {
			runErr = zerr.With(zerr.Wrap(err, domain.ErrStageFailed.Error()), "stage", stage.Name)
			s.updateStatus(stage.Name, domain.StageStatusSkipped)
			continue
		}
		runErr = s.runStage(ctx, stage)
	}
	return runErr
}

func (s *Scheduler) runStage(ctx context.Context, stage domain.Stage) error {
	s.updateStatus(stage.Name, domain.StageStatusRunning)

	stageCtx, vertex := s.telemetry.Record(ctx, stage.Name)
	err := stage.Run(stageCtx)
	vertex.Complete(err)

	if err != nil {
		s.updateStatus(stage.Name, domain.StageStatusFailed)
		return zerr.With(zerr.Wrap(err, domain.ErrStageFailed.Error()), "stage", stage.Name)
	}
	s.updateStatus(stage.Name, domain.StageStatusCompleted)
	return nil
}
