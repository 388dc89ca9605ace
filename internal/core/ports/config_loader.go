package ports

import "go.trai.ch/wbuild/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads wbuild.yaml from root. Defaults apply when it is absent.
	Load(root string) (domain.Config, error)
}
