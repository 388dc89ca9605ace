package ports

// ManifestReader extracts durable object class names from the deployment manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestReader interface {
	// ClassNames returns the deduplicated class names in declaration order.
	// A missing manifest yields an empty slice.
	ClassNames(dir string) ([]string, error)
}
