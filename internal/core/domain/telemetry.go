package domain

// StageStatus is the lifecycle state of a pipeline stage.
type StageStatus string

const (
	// StageStatusPending indicates the stage has not started.
	StageStatusPending StageStatus = "pending"
	// StageStatusRunning indicates the stage is executing.
	StageStatusRunning StageStatus = "running"
	// StageStatusCompleted indicates the stage finished successfully.
	StageStatusCompleted StageStatus = "completed"
	// StageStatusFailed indicates the stage returned an error.
	StageStatusFailed StageStatus = "failed"
	// StageStatusSkipped indicates the stage never ran because an earlier stage failed.
	StageStatusSkipped StageStatus = "skipped"
)

// IsTerminal reports whether no further transition can happen.
func (s StageStatus) IsTerminal() bool {
	switch s {
	case StageStatusCompleted, StageStatusFailed, StageStatusSkipped:
		return true
	default:
		return false
	}
}

// LogLevel is the severity of a message recorded on a telemetry vertex.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
