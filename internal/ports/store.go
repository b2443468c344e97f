// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

// StateStore persists the set of languages whose grammars have been built.
// The installed set is the single source of truth for "is this language ready":
// a language in the set implies its shared-library artifact exists at the
// deterministic build path. The store does not verify the artifact on load.
//
// Single-process, single-threaded use is assumed. No locking is provided
// against concurrent installers racing on the same state file.
type StateStore interface {
	// Load reads the persisted installed set and never returns an error. An
	// absent file is a fresh install: empty set, recovered=false. An unreadable
	// or malformed file yields an empty set with recovered=true. Recovery is
	// deliberate: the next successful install rewrites the whole file, so a
	// damaged one self-heals.
	Load() (langs []string, recovered bool)

	// Save overwrites the persisted state with the full set. Never patches
	// incrementally.
	Save(langs []string) error

	// Path returns the state file location.
	Path() string
}

// BuildReceipt records how an artifact was produced. Written after every
// successful build, read back by `tsforge status`.
type BuildReceipt struct {
	Language   string   `json:"language"`
	Toolchain  string   `json:"toolchain"` // "unix", "msvc", "clang"
	Compiler   string   `json:"compiler"`
	Sources    []string `json:"sources"`
	Objects    int      `json:"objects"`
	DurationMS int64    `json:"duration_ms"`
	Artifact   string   `json:"artifact"`
	SHA256     string   `json:"sha256"`
	BuiltAt    int64    `json:"built_at"` // unix seconds
}

// ReceiptStore persists build receipts to durable storage.
// Writes must be transactional: a crash mid-write cannot corrupt previously
// committed receipts.
type ReceiptStore interface {
	// SaveReceipt persists a receipt, overwriting any prior receipt for the
	// same language.
	SaveReceipt(r *BuildReceipt) error

	// LoadReceipt retrieves the receipt for a language.
	// Returns nil, nil if none exists.
	LoadReceipt(language string) (*BuildReceipt, error)

	// Close releases the underlying database.
	Close() error
}
