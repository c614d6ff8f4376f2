package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/cfpwatch"
	"github.com/fwojciec/cfpwatch/change"
	"github.com/fwojciec/cfpwatch/diffmatchpatch"
	"github.com/fwojciec/cfpwatch/fs"
	"github.com/fwojciec/cfpwatch/gemini"
	"github.com/fwojciec/cfpwatch/goldmark"
	"github.com/fwojciec/cfpwatch/goquery"
	"github.com/fwojciec/cfpwatch/htmltomarkdown"
	cfphttp "github.com/fwojciec/cfpwatch/http"
	"github.com/fwojciec/cfpwatch/notion"
	"github.com/fwojciec/cfpwatch/ollama"
	"github.com/fwojciec/cfpwatch/readability"
	cfpslog "github.com/fwojciec/cfpwatch/slog"
	"github.com/fwojciec/cfpwatch/smtp"
	"github.com/fwojciec/cfpwatch/sqlite"
	"github.com/fwojciec/cfpwatch/toml"
	"github.com/fwojciec/cfpwatch/trafilatura"
	"github.com/fwojciec/cfpwatch/watch"
	"github.com/subosito/gotenv"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// EnvFile is loaded into the environment before flags are parsed.
	// Missing files are ignored; empty disables loading.
	EnvFile string

	// SQLite database used by the sqlite snapshot store.
	DB *sqlite.DB

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{EnvFile: ".env"}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var errs []error
	for i := len(m.closers) - 1; i >= 0; i-- {
		errs = append(errs, m.closers[i].Close())
	}
	m.closers = nil
	if m.DB != nil {
		errs = append(errs, m.DB.Close())
		m.DB = nil
	}
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if m.EnvFile != "" {
		if err := gotenv.Load(m.EnvFile); err != nil && !errors.Is(err, iofs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", m.EnvFile, err)
		}
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("cfpwatch"),
		kong.Description("Watch venue pages for new calls for papers and rate them against a knowledge base"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'cfpwatch --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose, cli.LogJSON)
	defer m.Close()

	cmd := strings.Fields(kongCtx.Command())[0]
	switch cmd {
	case "diff":
		mismatch, err := change.ParseMismatchPolicy(cli.Diff.Mismatch)
		if err != nil {
			return err
		}
		deps.Detector = newDetector(mismatch)
		deps.Scoper = goquery.NewScoper()
		deps.Differ = diffmatchpatch.NewDiffer()
	case "venues":
		if deps.Venues, err = loadVenues(cli.VenueFile, deps.Logger); err != nil {
			return err
		}
	}

	if cmd == "scan" || cmd == "run" {
		flags := cli.Scan.ScanFlags
		if cmd == "run" {
			flags = cli.Run.ScanFlags
		}
		if deps.Venues, err = loadVenues(cli.VenueFile, deps.Logger); err != nil {
			return err
		}
		if deps.Watcher, err = m.newWatcher(cli, flags, deps.Venues, deps.Logger); err != nil {
			return err
		}
	}

	if cmd == "analyze" || cmd == "run" {
		flags := cli.Analyze.AnalyzeFlags
		if cmd == "run" {
			flags = cli.Run.AnalyzeFlags
		}
		if deps.Analyzer, err = m.newAnalyzer(ctx, cli, flags, deps.Logger, stderr); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

func loadVenues(path string, logger *slog.Logger) ([]*cfpwatch.Venue, error) {
	venues, warnings, err := toml.LoadVenues(path)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		logger.Warn(w, "file", path)
	}
	return venues, nil
}

func newDetector(mismatch change.MismatchPolicy) *change.Detector {
	return &change.Detector{
		Scoper:    goquery.NewScoper(),
		Differ:    diffmatchpatch.NewDiffer(),
		Extractor: goquery.NewLinkExtractor(),
		Mismatch:  mismatch,
	}
}

// newWatcher wires the scan pipeline.
func (m *Main) newWatcher(cli *CLI, flags ScanFlags, venues []*cfpwatch.Venue, logger *slog.Logger) (*watch.Watcher, error) {
	mismatch, err := change.ParseMismatchPolicy(flags.Mismatch)
	if err != nil {
		return nil, err
	}

	snapshots, err := m.newSnapshotService(cli, venues)
	if err != nil {
		return nil, err
	}

	fetcher := cfphttp.NewFetcher(cfphttp.WithTimeout(flags.Timeout))
	m.closers = append(m.closers, fetcher)

	return &watch.Watcher{
		Pages: &watch.PageFetcher{
			Fetcher:     cfpslog.NewLoggingFetcher(fetcher, logger),
			RateLimiter: watch.NewDomainLimiter(flags.RPS),
			Scoper:      goquery.NewScoper(),
			Extractors:  extractors(flags.Extractor),
			Converter:   htmltomarkdown.NewConverter(),
			Title:       goquery.Title,
			Logger:      logger,
		},
		Snapshots:   cfpslog.NewLoggingSnapshotService(snapshots, logger),
		Detector:    cfpslog.NewLoggingDetector(newDetector(mismatch), logger),
		Candidates:  fs.NewCandidateStore(cli.Tmp, cli.kbFilename()),
		Concurrency: flags.Concurrency,
		Logger:      logger,
	}, nil
}

func (m *Main) newSnapshotService(cli *CLI, venues []*cfpwatch.Venue) (cfpwatch.SnapshotService, error) {
	if cli.Store == "fs" {
		return fs.NewSnapshotService(cli.Downloads, venues), nil
	}

	path := cli.DB
	if path == "" {
		path = defaultDBPath()
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		return nil, fmt.Errorf("failed to open database at %q (set CFPWATCH_DB to use a different path): %w", path, err)
	}
	return sqlite.NewSnapshotService(m.DB), nil
}

// extractors returns the boilerplate removers tried for linked pages, the
// named one first.
func extractors(name string) []cfpwatch.Extractor {
	switch name {
	case "none":
		return nil
	case "readability":
		return []cfpwatch.Extractor{readability.NewExtractor(), trafilatura.NewExtractor()}
	default:
		return []cfpwatch.Extractor{trafilatura.NewExtractor(), readability.NewExtractor()}
	}
}

// newAnalyzer wires the analysis pipeline.
func (m *Main) newAnalyzer(ctx context.Context, cli *CLI, flags AnalyzeFlags, logger *slog.Logger, stderr io.Writer) (*watch.Analyzer, error) {
	kb, err := newKnowledgeBase(cli, flags)
	if err != nil {
		return nil, err
	}

	comparer, err := newComparer(ctx, flags, stderr)
	if err != nil {
		return nil, err
	}

	report := fs.NewReportWriter(cli.resultsPath())
	a := &watch.Analyzer{
		KnowledgeBase: kb,
		Candidates:    fs.NewCandidateStore(cli.Tmp, cli.kbFilename()),
		Comparer:      cfpslog.NewLoggingComparer(comparer, logger),
		Report:        report,
		MaxTokens:     flags.MaxTokens,
		Logger:        logger,
	}

	if flags.MaxTokens > 0 {
		counter, err := gemini.NewTokenCounter(gemini.DefaultModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create token counter: %w", err)
		}
		a.TokenCounter = counter
	}

	if !flags.NoEmail {
		if flags.To == "" {
			return nil, fmt.Errorf("EMAIL_RECEIVER not set. Set it or pass --no-email")
		}
		mailer, err := smtp.NewMailer(smtp.Config{
			Host:     flags.SMTPHost,
			Port:     flags.SMTPPort,
			Username: flags.SMTPUser,
			Password: flags.SMTPPassword,
			From:     flags.from(),
		})
		if err != nil {
			return nil, fmt.Errorf("smtp: %s", cfpwatch.ErrorMessage(err))
		}
		a.Renderer = goldmark.NewRenderer()
		a.Mailer = cfpslog.NewLoggingMailer(mailer, logger)
		a.To = flags.To
		a.Subject = flags.Subject
		a.Attachments = []string{report.Path()}
	}

	return a, nil
}

// newKnowledgeBase reads --kb-file when given, otherwise loads the Notion
// page and caches it under the tmp directory.
func newKnowledgeBase(cli *CLI, flags AnalyzeFlags) (cfpwatch.KnowledgeBase, error) {
	if flags.KBFile != "" {
		return &fs.KnowledgeBase{Path: flags.KBFile}, nil
	}
	if flags.NotionToken == "" || flags.NotionPageID == "" {
		return nil, fmt.Errorf("NOTION_TOKEN and NOTION_PAGE_ID must be set, or pass --kb-file")
	}
	return &fs.KnowledgeBase{
		Path:   filepath.Join(cli.Tmp, cli.kbFilename()),
		Source: notion.NewKnowledgeBase(notion.NewClient(flags.NotionToken).Block, flags.NotionPageID),
	}, nil
}

func newComparer(ctx context.Context, flags AnalyzeFlags, stderr io.Writer) (cfpwatch.Comparer, error) {
	switch flags.LLM {
	case "ollama":
		model := flags.Model
		if model == "" {
			model = ollama.DefaultModel
		}
		return ollama.NewComparer(flags.OllamaURL, model, http.DefaultClient)
	default:
		if flags.GeminiAPIKey == "" {
			fmt.Fprintln(stderr, "Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  flags.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewComparer(client.Models, flags.Model), nil
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cfpwatch.db"
	}
	dir := filepath.Join(home, ".cfpwatch")
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "cfpwatch.db")
}

func newLogger(w io.Writer, verbose, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
