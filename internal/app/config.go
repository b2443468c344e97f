package app

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds operator overrides from <install root>/config.toml.
// Every field is optional; zero values select the built-in defaults.
type Config struct {
	// InstallRoot relocates the whole install tree.
	InstallRoot string `toml:"install_root"`

	// Languages restricts the batch install set. Empty means every grammar
	// in the registry.
	Languages []string `toml:"languages"`

	// CC / CXX override the Unix compiler executables (default cc / c++).
	CC  string `toml:"cc"`
	CXX string `toml:"cxx"`

	// Clang overrides the alternate-compiler executable used where the
	// primary toolchain cannot build a grammar (default clang).
	Clang string `toml:"clang"`
}

// LoadConfig reads a TOML config file. A missing file is not an error;
// defaults apply. A malformed file is an error: unlike installed state, a
// config the operator wrote by hand should never be silently ignored.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}
