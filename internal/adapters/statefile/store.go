// Package statefile implements ports.StateStore as a single JSON file: a flat
// array of installed language names. The format is the external contract
// (order insignificant, uniqueness maintained by the writer) so downstream
// tooling can read it with nothing but a JSON parser.
package statefile

import (
	"encoding/json"
	"os"
	"sort"
)

// Store reads and rewrites the installed-set file. Single-process use assumed;
// there is no advisory locking.
type Store struct {
	path string
}

// NewStore creates a store over the given state file path. The file is not
// touched until Load or Save.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the installed set. The fallback is explicit and deliberate:
//
//   - file absent: fresh installation, empty set, recovered=false
//   - file unreadable or malformed: empty set, recovered=true
//
// Recovery is safe because Save rewrites the whole file after the next
// successful install; a damaged state file costs at most a rebuild of
// grammars that were already present.
func (s *Store) Load() (langs []string, recovered bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false
		}
		return nil, true
	}
	if err := json.Unmarshal(data, &langs); err != nil {
		return nil, true
	}
	return langs, false
}

// Save overwrites the state file with the full set, sorted and deduplicated.
func (s *Store) Save(langs []string) error {
	seen := make(map[string]bool, len(langs))
	unique := make([]string, 0, len(langs))
	for _, l := range langs {
		if !seen[l] {
			seen[l] = true
			unique = append(unique, l)
		}
	}
	sort.Strings(unique)

	data, err := json.Marshal(unique)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Path returns the state file location.
func (s *Store) Path() string {
	return s.path
}
