// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/poiesic/pinyinsearch/dict"
)

// ErrInvalidSettings is returned by Validate for any rejected field.
var ErrInvalidSettings = errors.New("invalid settings")

// Command is a host command offered to the commands index.
type Command struct {
	ID    string
	Title string
}

// ParseCommand parses "id=Title".
func ParseCommand(s string) (Command, error) {
	id, title, ok := strings.Cut(s, "=")
	id, title = strings.TrimSpace(id), strings.TrimSpace(title)
	if !ok || id == "" || title == "" {
		return Command{}, fmt.Errorf("%w: command %q must look like id=Title", ErrInvalidSettings, s)
	}
	return Command{ID: id, Title: title}, nil
}

// Settings holds everything the engine needs to build its indices.
type Settings struct {
	// Variant selects the character forms: "simplified" or "traditional".
	// Default: "simplified"
	Variant string

	// Scheme is the double pinyin layout name, or "full" for whole syllables.
	// Default: "full"
	Scheme string

	// ZeroInitial encodes syllables without a consonant initial (a, ang,
	// er, ...) through the layout's whole-syllable table. When false their
	// first letter is kept and the rest is looked up like any final.
	// Default: false
	ZeroInitial bool

	// DevMode keeps built items between loads (cached mode).
	// Default: false
	DevMode bool

	// VaultPath is the root directory of the vault. When empty only the
	// commands index is built.
	VaultPath string

	// Commands are the entries of the commands index.
	Commands []Command

	// Excludes are file and directory names skipped while walking the vault.
	Excludes []string

	// CacheDir is where cached items are persisted. When empty the cache
	// lives in memory for the life of the process.
	CacheDir string

	// PoolSize is the number of workers converting dictionary keys.
	// Default: 4
	PoolSize int

	// MemoSize is the number of names whose keys are remembered.
	// Default: 4096
	MemoSize int

	// LogLevel is one of debug, info, warn, error.
	// Default: "info"
	LogLevel string
}

// Option is a functional option for configuring Settings.
type Option func(*Settings)

// WithVariant sets the character variant.
func WithVariant(variant string) Option {
	return func(s *Settings) {
		s.Variant = variant
	}
}

// WithScheme sets the double pinyin layout.
func WithScheme(scheme string) Option {
	return func(s *Settings) {
		s.Scheme = scheme
	}
}

// WithZeroInitial enables the whole-syllable table of the scheme.
func WithZeroInitial(enabled bool) Option {
	return func(s *Settings) {
		s.ZeroInitial = enabled
	}
}

// WithDevMode enables or disables cached mode.
func WithDevMode(enabled bool) Option {
	return func(s *Settings) {
		s.DevMode = enabled
	}
}

// WithVaultPath sets the vault root.
func WithVaultPath(path string) Option {
	return func(s *Settings) {
		s.VaultPath = path
	}
}

// WithCommands appends commands to the commands index.
func WithCommands(commands ...Command) Option {
	return func(s *Settings) {
		s.Commands = append(s.Commands, commands...)
	}
}

// WithExcludes appends names to skip while walking the vault.
func WithExcludes(names ...string) Option {
	return func(s *Settings) {
		s.Excludes = append(s.Excludes, names...)
	}
}

// WithCacheDir sets the directory for persisted cache entries.
func WithCacheDir(dir string) Option {
	return func(s *Settings) {
		s.CacheDir = dir
	}
}

// WithPoolSize sets the number of conversion workers.
func WithPoolSize(size int) Option {
	return func(s *Settings) {
		s.PoolSize = size
	}
}

// WithMemoSize sets the number of memoized names.
func WithMemoSize(size int) Option {
	return func(s *Settings) {
		s.MemoSize = size
	}
}

// WithLogLevel sets the log level name.
func WithLogLevel(level string) Option {
	return func(s *Settings) {
		s.LogLevel = level
	}
}

// DefaultSettings returns Settings for a simplified, full-syllable setup
// with no vault attached.
func DefaultSettings() *Settings {
	return &Settings{
		Variant:  dict.VariantSimplified.String(),
		Scheme:   dict.SchemeFull,
		PoolSize: 4,
		MemoSize: 4096,
		LogLevel: "info",
	}
}

// NewSettings creates Settings with the default values and applies the provided options.
//
// Example:
//
//	s := NewSettings(
//	    WithVaultPath("/home/me/notes"),
//	    WithScheme("xiaohe"),
//	)
func NewSettings(opts ...Option) *Settings {
	s := DefaultSettings()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Normalize puts names in canonical form: lowercase variant, scheme and
// log level, cleaned paths, and excludes without blanks or duplicates.
func (s *Settings) Normalize() {
	s.Variant = strings.ToLower(strings.TrimSpace(s.Variant))
	s.Scheme = strings.ToLower(strings.TrimSpace(s.Scheme))
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))

	if s.VaultPath != "" {
		s.VaultPath = filepath.Clean(s.VaultPath)
	}
	if s.CacheDir != "" {
		s.CacheDir = filepath.Clean(s.CacheDir)
	}

	excludes := make([]string, 0, len(s.Excludes))
	for _, name := range s.Excludes {
		name = strings.TrimSpace(name)
		if name != "" && !slices.Contains(excludes, name) {
			excludes = append(excludes, name)
		}
	}
	s.Excludes = excludes
}

// Validate checks that the settings are usable.
// It normalizes the settings first.
func (s *Settings) Validate() error {
	s.Normalize()

	if _, err := dict.ParseVariant(s.Variant); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	if _, err := dict.LookupScheme(s.Scheme); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	if s.PoolSize < 1 {
		return fmt.Errorf("%w: PoolSize must be at least 1", ErrInvalidSettings)
	}
	if s.MemoSize < 1 {
		return fmt.Errorf("%w: MemoSize must be at least 1", ErrInvalidSettings)
	}
	if _, err := ParseLogLevel(s.LogLevel); err != nil {
		return err
	}
	for _, c := range s.Commands {
		if c.ID == "" || c.Title == "" {
			return fmt.Errorf("%w: command %q needs an id and a title", ErrInvalidSettings, c.ID)
		}
	}
	return nil
}

// ParseLogLevel maps a level name to its slog level.
func ParseLogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidSettings, name)
	}
	return level, nil
}
