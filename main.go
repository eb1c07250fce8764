package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/metcalfc/wordlist/internal/config"
	"github.com/metcalfc/wordlist/internal/entry"
	"github.com/metcalfc/wordlist/internal/model"
	"github.com/metcalfc/wordlist/internal/reader"
	"github.com/metcalfc/wordlist/internal/refine"
	"github.com/metcalfc/wordlist/internal/review"
	"github.com/metcalfc/wordlist/internal/segment"
	"github.com/metcalfc/wordlist/internal/store"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Width(10).
			PaddingLeft(2)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00FF00"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00")).
			Bold(true)
)

// readClipboard is swapped out in tests.
var readClipboard = clipboard.ReadAll

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "wordlist - Extract vocabulary entries from word list documents\n\n")
	fmt.Fprintf(w, "Usage:\n")
	fmt.Fprintf(w, "  wordlist <command> [options] [file]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  parse     Segment a document into sections and entries\n")
	fmt.Fprintf(w, "  refine    Re-read example sentences and split definitions\n")
	fmt.Fprintf(w, "  clip      Parse the clipboard and print the entries\n")
	fmt.Fprintf(w, "  review    Browse the review and error logs\n")
	fmt.Fprintf(w, "  formats   List supported input formats\n")
	fmt.Fprintf(w, "  version   Show version information\n")
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  wordlist parse barron.docx           Write wordlist.yml, to_check.txt, parser.log\n")
	fmt.Fprintf(w, "  cat list.txt | wordlist parse        Parse from stdin, one paragraph per line\n")
	fmt.Fprintf(w, "  wordlist refine                      Refine wordlist.yml into wordlist.refined.yml\n")
	fmt.Fprintf(w, "  wordlist parse -config my.yaml a.md  Use a config file\n")
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return errors.New("no command given")
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "parse":
		return runParse(args, stdin, stdout, stderr)
	case "refine":
		return runRefine(args, stdout, stderr)
	case "clip":
		return runClip(args, stdout, stderr)
	case "review":
		return runReview(args, stderr)
	case "formats":
		return runFormats(stdout)
	case "version", "-v", "-version", "--version":
		fmt.Fprintf(stdout, "wordlist %s (commit: %s, built: %s)\n", version, commit, date)
		return nil
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Config file (default $WORDLIST_CONFIG or "+config.DefaultPath+")")
	return fs, configPath
}

func loadConfig(path string, stderr io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return cfg, config.NewLogger(cfg.Log, stderr), nil
}

func runParse(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, configPath := newFlagSet("parse", stderr)
	out := fs.String("o", "", "Output document (default output.document)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, logger, err := loadConfig(*configPath, stderr)
	if err != nil {
		return err
	}

	source := "stdin"
	var pars []string
	if fs.NArg() > 0 {
		source = fs.Arg(0)
		pars, err = reader.ReadParagraphs(source)
		if err != nil {
			return fmt.Errorf("failed to read '%s': %w", source, err)
		}
	} else {
		if f, ok := stdin.(*os.File); ok {
			if stat, err := f.Stat(); err == nil && stat.Mode()&os.ModeCharDevice != 0 {
				return errors.New("no input provided. Provide a file or pipe text to stdin")
			}
		}
		pars, err = reader.Lines(stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}
	logger.Debug("read paragraphs", slog.String("source", source), slog.Int("paragraphs", len(pars)))

	parser := entry.NewParser(entry.WithMinSegmentRunes(cfg.Parse.MinSegmentRunes))
	engine := segment.New(parser,
		segment.WithLookahead(cfg.Parse.Lookahead),
		segment.WithSkip(cfg.Parse.SkipParagraphs),
	)
	res := engine.Run(pars)

	docPath := cfg.Output.Path(cfg.Output.Document)
	if *out != "" {
		docPath = *out
	}
	if err := store.SaveDocument(docPath, res.Sections); err != nil {
		return fmt.Errorf("failed to write '%s': %w", docPath, err)
	}

	err = appendLogs(cfg, res.Review, func(el *store.ErrorLog) {
		attrs := []any{slog.String("source", source), slog.Int("paragraphs", len(pars))}
		if source != "stdin" {
			if fp, err := store.Fingerprint(source); err == nil {
				attrs = append(attrs, slog.String("fingerprint", fp))
			}
		}
		el.Logger().Info("parse finished", attrs...)
		el.ParseFailures(res.Failures)
	})
	if err != nil {
		return err
	}

	logger.Info("parsed document",
		slog.String("source", source),
		slog.String("output", docPath),
		slog.Int("failures", len(res.Failures)),
	)
	printSummary(stdout, "Parsed "+source+" → "+docPath, res.Sections, len(res.Review), len(res.Failures))
	return nil
}

func runRefine(args []string, stdout, stderr io.Writer) error {
	fs, configPath := newFlagSet("refine", stderr)
	out := fs.String("o", "", "Output document (default output.refined)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, logger, err := loadConfig(*configPath, stderr)
	if err != nil {
		return err
	}

	in := cfg.Output.Path(cfg.Output.Document)
	if fs.NArg() > 0 {
		in = fs.Arg(0)
	}
	sections, err := store.LoadDocument(in)
	if err != nil {
		return fmt.Errorf("failed to load '%s': %w", in, err)
	}

	res := refine.New(refine.WithWorkers(cfg.Refine.Workers)).Refine(sections)

	outPath := cfg.Output.Path(cfg.Output.Refined)
	if *out != "" {
		outPath = *out
	}
	if err := store.SaveDocument(outPath, res.Sections); err != nil {
		return fmt.Errorf("failed to write '%s': %w", outPath, err)
	}

	err = appendLogs(cfg, res.Review, func(el *store.ErrorLog) {
		el.Logger().Info("refine finished", slog.String("source", in), slog.Int("workers", cfg.Refine.Workers))
		for _, f := range res.Failures {
			el.RefineFailure(f.Section, f.Headword, string(f.Stage), f.Err)
		}
	})
	if err != nil {
		return err
	}

	logger.Info("refined document",
		slog.String("source", in),
		slog.String("output", outPath),
		slog.Int("failures", len(res.Failures)),
	)
	printSummary(stdout, "Refined "+in+" → "+outPath, res.Sections, len(res.Review), len(res.Failures))
	return nil
}

func runClip(args []string, stdout, stderr io.Writer) error {
	fs, configPath := newFlagSet("clip", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, _, err := loadConfig(*configPath, stderr)
	if err != nil {
		return err
	}

	text, err := readClipboard()
	if err != nil {
		return fmt.Errorf("failed to read clipboard: %w", err)
	}
	return printClip(text, cfg, stdout, stderr)
}

func printClip(text string, cfg *config.Config, stdout, stderr io.Writer) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("clipboard is empty")
	}
	parser := entry.NewParser(entry.WithMinSegmentRunes(cfg.Parse.MinSegmentRunes))
	res, err := parser.ParseBlock(text)
	if err != nil {
		return fmt.Errorf("failed to parse clipboard: %w", err)
	}
	for _, item := range res.Review {
		fmt.Fprintln(stderr, warnStyle.Render(item.String()))
	}
	return store.Encode(stdout, res.Entries)
}

func runReview(args []string, stderr io.Writer) error {
	fs, configPath := newFlagSet("review", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, _, err := loadConfig(*configPath, stderr)
	if err != nil {
		return err
	}

	var logs []review.Log
	for _, name := range []string{cfg.Output.ReviewLog, cfg.Output.ErrorLog} {
		lines, err := store.ReadLines(cfg.Output.Path(name))
		if err != nil {
			return fmt.Errorf("failed to read '%s': %w", name, err)
		}
		logs = append(logs, review.Log{Title: name, Lines: lines})
	}

	p := tea.NewProgram(review.New(logs...), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runFormats(stdout io.Writer) error {
	fmt.Fprintln(stdout, titleStyle.Render("Supported formats:"))
	for _, f := range reader.SupportedFormats() {
		fmt.Fprintf(stdout, "  %s\n", f)
	}
	fmt.Fprintln(stdout, "  Text (any other extension, one paragraph per line)")
	return nil
}

// appendLogs writes review items to the review log and lets record write to
// the error log.
func appendLogs(cfg *config.Config, items []model.ReviewItem, record func(*store.ErrorLog)) error {
	reviewPath := cfg.Output.Path(cfg.Output.ReviewLog)
	rl, err := store.OpenReviewLog(reviewPath)
	if err != nil {
		return fmt.Errorf("failed to open '%s': %w", reviewPath, err)
	}
	defer rl.Close()
	if err := rl.Append(items...); err != nil {
		return fmt.Errorf("failed to write '%s': %w", reviewPath, err)
	}

	errorPath := cfg.Output.Path(cfg.Output.ErrorLog)
	el, err := store.OpenErrorLog(errorPath)
	if err != nil {
		return fmt.Errorf("failed to open '%s': %w", errorPath, err)
	}
	defer el.Close()
	record(el)
	return nil
}

func countEntries(sections []model.Section) int {
	n := 0
	for _, s := range sections {
		n += len(s.Entries)
	}
	return n
}

func printSummary(w io.Writer, title string, sections []model.Section, flagged, failures int) {
	count := func(n int) string {
		if n == 0 {
			return okStyle.Render("0")
		}
		return warnStyle.Render(fmt.Sprint(n))
	}

	fmt.Fprintln(w, titleStyle.Render(title))
	fmt.Fprintln(w, labelStyle.Render("sections")+fmt.Sprint(len(sections)))
	fmt.Fprintln(w, labelStyle.Render("entries")+fmt.Sprint(countEntries(sections)))
	fmt.Fprintln(w, labelStyle.Render("review")+count(flagged))
	fmt.Fprintln(w, labelStyle.Render("failures")+count(failures))
}
