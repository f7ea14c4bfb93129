package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ergochat/readline"
	"github.com/poiesic/pinyinsearch"
	"github.com/poiesic/pinyinsearch/dict"
	"github.com/poiesic/pinyinsearch/search"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
)

var errQuit = errors.New("quit")

// REPL reads queries and settings changes from a prompt.
type REPL struct {
	engine   *pinyinsearch.Engine
	searcher *search.Searcher
	out      io.Writer
	maxHits  int
	rl       *readline.Instance
}

func newCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("scheme",
			readline.PcItem(dict.SchemeFull),
			readline.PcItem(dict.SchemeXiaohe),
			readline.PcItem(dict.SchemeZiranma),
			readline.PcItem(dict.SchemeMicrosoft),
			readline.PcItem(dict.SchemeSogou),
			readline.PcItem(dict.SchemeZiguang),
			readline.PcItem(dict.SchemeABC),
		),
		readline.PcItem("variant",
			readline.PcItem(dict.VariantSimplified.String()),
			readline.PcItem(dict.VariantTraditional.String()),
		),
		readline.PcItem("dev",
			readline.PcItem("on"),
			readline.PcItem("off"),
		),
		readline.PcItem("reload"),
		readline.PcItem("exit"),
		readline.PcItem("quit"),
	)
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func newREPL(engine *pinyinsearch.Engine, out io.Writer, maxHits int) (*REPL, error) {
	searcher, err := engine.NewSearcher()
	if err != nil {
		return nil, err
	}
	return &REPL{engine: engine, searcher: searcher, out: out, maxHits: maxHits}, nil
}

// Open attaches the prompt to the terminal.
func (repl *REPL) Open(historyFile string) (err error) {
	repl.rl, err = readline.NewEx(&readline.Config{
		Prompt:          "拼 ",
		HistoryFile:     historyFile,
		AutoComplete:    newCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return
	}
	repl.rl.CaptureExitSignal()
	return
}

// Close releases the prompt.
func (repl *REPL) Close() error {
	if repl.rl != nil {
		_ = repl.rl.Close()
		repl.rl = nil
	}
	return nil
}

// Run reads lines until exit or end of input.
func (repl *REPL) Run(ctx context.Context) error {
	for {
		line, err := repl.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		err = repl.Execute(ctx, line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(repl.out, "error: %v\n", err)
		}
	}
}

// Execute runs one line: a command word or else a search query.
func (repl *REPL) Execute(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "exit", "quit":
		return errQuit
	case "help":
		fmt.Fprintln(repl.out, "scheme NAME | variant NAME | dev on|off | reload [ID...] | exit")
		fmt.Fprintln(repl.out, "anything else is a query; end it with file, dir, cmd, tag or .ext to filter")
		return nil
	case "scheme":
		reports, err := repl.engine.SetScheme(ctx, arg)
		if err != nil {
			return err
		}
		fmt.Fprintf(repl.out, "scheme %s, %d indices rebuilt\n", repl.engine.Settings().Scheme, len(reports))
		return nil
	case "variant":
		if err := repl.engine.SetVariant(ctx, arg); err != nil {
			return err
		}
		fmt.Fprintf(repl.out, "variant %s, run reload to rebuild\n", repl.engine.Settings().Variant)
		return nil
	case "dev":
		var enabled bool
		switch arg {
		case "on":
			enabled = true
		case "off":
		default:
			return fmt.Errorf("dev takes on or off, got %q", arg)
		}
		return repl.engine.SetDevMode(ctx, enabled)
	case "reload":
		reports, err := repl.engine.Reload(ctx, strings.Fields(arg)...)
		for _, r := range reports {
			fmt.Fprintf(repl.out, "%-10s %6d items %.3fs\n", r.ID, r.Items, r.Elapsed().Seconds())
		}
		return err
	}

	results, err := repl.searcher.Search(ctx, line, repl.maxHits)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(repl.out, "no matches")
	}
	for _, r := range results {
		fmt.Fprintf(repl.out, "%4d  %-8s %s\n", r.Score, r.Source, r.Item.Path)
	}
	return nil
}

func replCommand(c *cli.Context) error {
	ctx := context.Background()

	var opts []pinyinsearch.EngineOption
	if addr := c.String("metrics-addr"); addr != "" {
		opts = append(opts, pinyinsearch.WithMetrics(prometheus.DefaultRegisterer))
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(addr, mux); err != nil {
				slog.Error("metrics server stopped", "addr", addr, "err", err)
			}
		}()
	}

	engine, err := openEngine(ctx, c, opts...)
	if err != nil {
		return err
	}
	defer engine.Close(ctx)

	reports, err := engine.Load(ctx)
	printReports(c, reports)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	repl, err := newREPL(engine, c.App.Writer, 10)
	if err != nil {
		return err
	}
	if err := repl.Open(c.String("history")); err != nil {
		return err
	}
	defer repl.Close()

	return repl.Run(ctx)
}
