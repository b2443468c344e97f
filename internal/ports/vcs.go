package ports

// Cloner fetches grammar sources from an upstream repository. The call blocks
// until the subprocess exits; there is no internal timeout and no retry of
// transient network failures; a human re-invokes.
type Cloner interface {
	// Clone fetches url into dest. dest must not already exist.
	Clone(url, dest string) error

	// SyncSubmodules runs submodule init + update inside dir, for grammars
	// that vendor part of their sources as a nested repository.
	SyncSubmodules(dir string) error
}
