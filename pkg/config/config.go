/*
Package config manages the TOML settings for wordcycle.

The file holds one [cycle] table with five keys. The search radius is
persisted in bytes under distance_limit while the runtime value counts in
kilobytes; the conversion happens here at the load/save boundary.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/ysandre/wordcycle/internal/utils"
	"github.com/ysandre/wordcycle/pkg/candidate"
)

// FileName is the settings file created under the config directory.
const FileName = "wordcycle.toml"

// Config holds the runtime completion settings.
type Config struct {
	// SortOrder ranks candidates alphabetically or by distance.
	SortOrder candidate.SortOrder
	// CandidatesLimit caps how many new candidates one scan pass collects.
	CandidatesLimit int
	// DistanceLimitKB bounds the search radius around the cursor in
	// kilobytes; zero searches the whole buffer.
	DistanceLimitKB int
	// SkipFuzzyIfExact leaves out fuzzy matches when exact ones exist.
	SkipFuzzyIfExact bool
	// RemoveTrailingWordPart replaces the whole word under the cursor
	// instead of just the prefix before it.
	RemoveTrailingWordPart bool
}

// fileConfig mirrors the on-disk layout. distance_limit is in bytes.
type fileConfig struct {
	Cycle cycleTable `toml:"cycle"`
}

type cycleTable struct {
	SortOrder              int  `toml:"sort_order"`
	CandidatesLimit        int  `toml:"candidates_limit"`
	DistanceLimit          int  `toml:"distance_limit"`
	SkipFuzzyIfExact       bool `toml:"skip_fuzzy_if_exact"`
	RemoveTrailingWordPart bool `toml:"remove_trailing_word_part"`
}

// DefaultConfig returns a Config with the default values.
func DefaultConfig() *Config {
	return &Config{
		SortOrder:              candidate.SortByDistance,
		CandidatesLimit:        12,
		DistanceLimitKB:        0,
		SkipFuzzyIfExact:       false,
		RemoveTrailingWordPart: false,
	}
}

// Normalize clamps every field into its supported range: candidates
// 1..100, search radius 0..100 KB, sort order one of the two known values.
func (c *Config) Normalize() {
	if c.SortOrder != candidate.SortAlphabetical && c.SortOrder != candidate.SortByDistance {
		c.SortOrder = candidate.SortByDistance
	}
	c.CandidatesLimit = min(max(c.CandidatesLimit, 1), 100)
	c.DistanceLimitKB = min(max(c.DistanceLimitKB, 0), 100)
}

func (c *Config) toFile() *fileConfig {
	return &fileConfig{Cycle: cycleTable{
		SortOrder:              int(c.SortOrder),
		CandidatesLimit:        c.CandidatesLimit,
		DistanceLimit:          c.DistanceLimitKB * 1024,
		SkipFuzzyIfExact:       c.SkipFuzzyIfExact,
		RemoveTrailingWordPart: c.RemoveTrailingWordPart,
	}}
}

func (fc *fileConfig) toConfig() *Config {
	c := &Config{
		SortOrder:              candidate.SortOrder(fc.Cycle.SortOrder),
		CandidatesLimit:        fc.Cycle.CandidatesLimit,
		DistanceLimitKB:        fc.Cycle.DistanceLimit / 1024,
		SkipFuzzyIfExact:       fc.Cycle.SkipFuzzyIfExact,
		RemoveTrailingWordPart: fc.Cycle.RemoveTrailingWordPart,
	}
	c.Normalize()
	return c
}

// GetConfigDir returns the settings directory with fallback priority:
// 1. ~/.config/wordcycle
// 2. ~/Library/Application Support/wordcycle (macOS)
// 3. the executable's directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.ExecutableDir()
	}
	primary := filepath.Join(homeDir, ".config", "wordcycle")
	if status := utils.CheckDir(primary); status.Writable {
		return primary, nil
	}
	// fallback from ~/.config if not writable
	macPath := filepath.Join(homeDir, "Library", "Application Support", "wordcycle")
	if status := utils.CheckDir(macPath); status.Writable {
		return macPath, nil
	}
	execDir, err := utils.ExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// DefaultPath returns the default location of the settings file.
func DefaultPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// LoadWithPriority loads settings with priority:
// 1. the custom path from the -config flag
// 2. the default path, created with defaults when missing
// 3. builtin defaults
// It returns the config together with the path it will be saved to.
func LoadWithPriority(customPath string) (*Config, string) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			cfg, err := Load(customPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customPath)
				return cfg, customPath
			}
			log.Warnf("Failed to load config from %s: %v. Trying default path...", customPath, err)
		} else {
			log.Warnf("Config file not found at %s: %v. Trying default path...", customPath, err)
		}
	}
	defaultPath, err := DefaultPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using builtin defaults...", err)
		return DefaultConfig(), ""
	}
	return Init(defaultPath), defaultPath
}

// Init loads the settings file, creating it with defaults when missing.
// Failures are never fatal; the defaults apply instead.
func Init(path string) *Config {
	dir := filepath.Dir(path)
	if err := utils.EnsureDir(dir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using builtin defaults...", dir, err)
		return DefaultConfig()
	}
	if !utils.FileExists(path) {
		cfg := DefaultConfig()
		if err := Save(cfg, path); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using builtin defaults...", path, err)
			return cfg
		}
		log.Debugf("Created default config file at: %s", path)
		return cfg
	}
	cfg, err := Load(path)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using builtin defaults...", path, err)
		return DefaultConfig()
	}
	return cfg
}

// Load reads the settings file. Decode errors fall back to salvaging
// individual values; only unreadable files return an error.
func Load(path string) (*Config, error) {
	fc := DefaultConfig().toFile()
	if err := utils.LoadTOMLFile(path, fc); err != nil {
		return loadPartial(path)
	}
	return fc.toConfig(), nil
}

// loadPartial keeps whatever valid values a damaged file still holds and
// fills the rest from the defaults.
func loadPartial(path string) (*Config, error) {
	fc := DefaultConfig().toFile()

	loose, err := utils.ParseTOMLLoose(path)
	if err != nil {
		return nil, err
	}
	if section, ok := utils.Section(loose, "cycle"); ok {
		if v, ok := utils.IntValue(section, "sort_order"); ok {
			fc.Cycle.SortOrder = v
		}
		if v, ok := utils.IntValue(section, "candidates_limit"); ok {
			fc.Cycle.CandidatesLimit = v
		}
		if v, ok := utils.IntValue(section, "distance_limit"); ok {
			fc.Cycle.DistanceLimit = v
		}
		if v, ok := utils.BoolValue(section, "skip_fuzzy_if_exact"); ok {
			fc.Cycle.SkipFuzzyIfExact = v
		}
		if v, ok := utils.BoolValue(section, "remove_trailing_word_part"); ok {
			fc.Cycle.RemoveTrailingWordPart = v
		}
	}
	return fc.toConfig(), nil
}

// Save writes the settings file, converting the radius back to bytes.
func Save(cfg *Config, path string) error {
	return utils.SaveTOMLFile(path, cfg.toFile())
}

// Update applies the non-nil changes, clamps the result, and saves it.
func (c *Config) Update(path string, sortOrder, candidatesLimit, distanceKB *int, skipFuzzy, removeTrailing *bool) error {
	if sortOrder != nil {
		c.SortOrder = candidate.SortOrder(*sortOrder)
	}
	if candidatesLimit != nil {
		c.CandidatesLimit = *candidatesLimit
	}
	if distanceKB != nil {
		c.DistanceLimitKB = *distanceKB
	}
	if skipFuzzy != nil {
		c.SkipFuzzyIfExact = *skipFuzzy
	}
	if removeTrailing != nil {
		c.RemoveTrailingWordPart = *removeTrailing
	}
	c.Normalize()
	return Save(c, path)
}
