package ports

// Hasher computes content digests of build artifacts.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashBytes returns the digest of data.
	HashBytes(data []byte) string

	// HashFiles returns the digest of every file in dir with the given
	// extension, keyed by file name.
	HashFiles(dir, ext string) (map[string]string, error)
}
