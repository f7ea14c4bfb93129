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

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/pinyinsearch"
	"github.com/poiesic/pinyinsearch/config"
	"github.com/poiesic/pinyinsearch/dict"
	"github.com/poiesic/pinyinsearch/index"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "pinyinsearch",
		Usage: "Find vault items by typing the pinyin of their names",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "convert",
				Usage:     "Print the double pinyin code of each syllable",
				ArgsUsage: "SYLLABLE...",
				Action:    convertCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "scheme",
						Aliases: []string{"s"},
						Usage:   "Double pinyin scheme",
						Value:   dict.SchemeXiaohe,
					},
					&cli.BoolFlag{
						Name:  "zero-initial",
						Usage: "Encode syllables without a consonant initial as a whole",
					},
				},
			},
			{
				Name:   "schemes",
				Usage:  "List the available double pinyin schemes",
				Action: schemesCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "codes",
						Usage: "Also print every code and the fragments it encodes",
					},
				},
			},
			{
				Name:   "index",
				Usage:  "Build every index and report what was built",
				Action: indexCommand,
				Flags: append(engineFlags(),
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Discard cached items before building",
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Search the vault with a pinyin query",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: append(engineFlags(),
					&cli.IntFlag{
						Name:    "max",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results (0 for all)",
						Value:   10,
					},
				),
			},
			{
				Name:   "repl",
				Usage:  "Search interactively and change settings on the fly",
				Action: replCommand,
				Flags: append(engineFlags(),
					&cli.StringFlag{
						Name:  "metrics-addr",
						Usage: "Serve Prometheus metrics on this address (e.g. :9090)",
					},
					&cli.StringFlag{
						Name:  "history",
						Usage: "History file for the prompt",
						Value: ".pinyinsearch_history",
					},
				),
			},
		},
	}
}

// engineFlags are shared by every command that opens an engine.
func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "vault",
			Usage: "Path to the vault directory",
		},
		&cli.StringFlag{
			Name:  "variant",
			Usage: "Character variant (simplified, traditional)",
			Value: dict.VariantSimplified.String(),
		},
		&cli.StringFlag{
			Name:    "scheme",
			Aliases: []string{"s"},
			Usage:   "Double pinyin scheme, or full for whole syllables",
			Value:   dict.SchemeFull,
		},
		&cli.BoolFlag{
			Name:  "zero-initial",
			Usage: "Encode syllables without a consonant initial as a whole",
		},
		&cli.BoolFlag{
			Name:  "dev",
			Usage: "Reuse items cached by a previous run (kept in --cache-dir, default the user cache directory)",
		},
		&cli.StringFlag{
			Name:  "cache-dir",
			Usage: "Directory for the persistent item cache",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "File or directory name to skip besides node_modules and __pycache__ (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "command",
			Usage: "Searchable command as id=Title (repeatable)",
		},
		&cli.IntFlag{
			Name:  "pool-size",
			Usage: "Workers converting dictionary keys",
			Value: config.DefaultSettings().PoolSize,
		},
	}
}

// settingsFromFlags builds validated settings from the engine flags.
func settingsFromFlags(c *cli.Context) (*config.Settings, error) {
	var commands []config.Command
	for _, raw := range c.StringSlice("command") {
		cmd, err := config.ParseCommand(raw)
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}

	cacheDir := c.String("cache-dir")
	if c.Bool("dev") && cacheDir == "" {
		dir, err := defaultCacheDir()
		if err != nil {
			return nil, fmt.Errorf("--dev needs --cache-dir: %w", err)
		}
		cacheDir = dir
	}

	settings := config.NewSettings(
		config.WithVariant(c.String("variant")),
		config.WithScheme(c.String("scheme")),
		config.WithZeroInitial(c.Bool("zero-initial")),
		config.WithDevMode(c.Bool("dev")),
		config.WithVaultPath(c.String("vault")),
		config.WithCacheDir(cacheDir),
		config.WithExcludes(c.StringSlice("exclude")...),
		config.WithCommands(commands...),
		config.WithPoolSize(c.Int("pool-size")),
		config.WithLogLevel(c.String("log-level")),
	)
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// defaultCacheDir is where dev mode keeps items between runs when no
// cache directory is given.
func defaultCacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pinyinsearch"), nil
}

func openEngine(ctx context.Context, c *cli.Context, opts ...pinyinsearch.EngineOption) (*pinyinsearch.Engine, error) {
	settings, err := settingsFromFlags(c)
	if err != nil {
		return nil, err
	}
	engine, err := pinyinsearch.NewEngine(ctx, settings, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open engine: %w", err)
	}
	return engine, nil
}

func convertCommand(c *cli.Context) error {
	scheme, err := dict.LookupScheme(c.String("scheme"))
	if err != nil {
		return err
	}
	if c.NArg() == 0 {
		return fmt.Errorf("at least one syllable is required")
	}
	if c.Bool("zero-initial") {
		scheme = scheme.WithZeroInitial()
	}

	out := c.App.Writer
	for _, full := range c.Args().Slice() {
		full = strings.ToLower(full)
		code, missed := dict.ConvertDetailed(full, scheme)
		if missed {
			fmt.Fprintf(out, "%s\t%s\t(incomplete)\n", full, code)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", full, code)
	}
	return nil
}

func schemesCommand(c *cli.Context) error {
	out := c.App.Writer
	for _, name := range dict.SchemeNames() {
		fmt.Fprintln(out, name)
		if !c.Bool("codes") {
			continue
		}
		scheme, err := dict.LookupScheme(name)
		if err != nil {
			return err
		}
		for _, code := range scheme.Codes() {
			fmt.Fprintf(out, "  %s\t%s\n", code, strings.Join(scheme.Fragments(code), " "))
		}
	}
	return nil
}

func indexCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, err := openEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close(ctx)

	var reports []index.BuildReport
	if c.Bool("force") {
		reports, err = engine.Registry().ForceReload(ctx)
	} else {
		reports, err = engine.Load(ctx)
	}
	printReports(c, reports)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}
	if misses := engine.Misses(); misses > 0 {
		fmt.Fprintf(c.App.ErrWriter, "%d syllables could not be encoded\n", misses)
	}
	return nil
}

func printReports(c *cli.Context, reports []index.BuildReport) {
	for _, r := range reports {
		switch {
		case r.Err != nil:
			fmt.Fprintf(c.App.Writer, "%-10s failed: %v\n", r.ID, r.Err)
		case r.CacheHit:
			fmt.Fprintf(c.App.Writer, "%-10s %6d items (cached)\n", r.ID, r.Items)
		default:
			fmt.Fprintf(c.App.Writer, "%-10s %6d items %.3fs\n", r.ID, r.Items, r.Elapsed().Seconds())
		}
	}
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("a query is required")
	}

	engine, err := openEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close(ctx)

	if _, err := engine.Load(ctx); err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}
	searcher, err := engine.NewSearcher()
	if err != nil {
		return err
	}
	results, err := searcher.Search(ctx, query, c.Int("max"))
	if err != nil {
		return err
	}

	for _, r := range results {
		fmt.Fprintf(c.App.Writer, "%4d  %-8s %s\n", r.Score, r.Source, r.Item.Path)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	level, err := config.ParseLogLevel(strings.ToLower(c.String("log-level")))
	if err != nil {
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.String("log-level"))
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
