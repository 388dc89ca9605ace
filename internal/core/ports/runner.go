package ports

import (
	"context"

	"go.trai.ch/wbuild/internal/core/domain"
)

// CommandRunner runs external processes to completion.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run executes cmd with inherited standard streams. A non-zero exit
	// returns an error carrying the full command line.
	Run(ctx context.Context, cmd domain.Command) error

	// Output executes cmd and returns its standard output. Standard error
	// stays attached to the caller's.
	Output(ctx context.Context, cmd domain.Command) (string, error)
}
