package scheduler

import (
	"maps"

	"go.trai.ch/wbuild/internal/core/domain"
)

// GetStageStatusMap returns a copy of the internal stage status map.
// This is exported for testing purposes only.
func (s *Scheduler) GetStageStatusMap() map[string]domain.StageStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.stageStatus)
}
