package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fwojciec/cfpwatch"
	"github.com/fwojciec/cfpwatch/watch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Venues   []*cfpwatch.Venue
	Watcher  *watch.Watcher
	Analyzer *watch.Analyzer
	Detector cfpwatch.ChangeDetector
	Scoper   cfpwatch.Scoper
	Differ   cfpwatch.Differ
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose   bool   `short:"v" help:"Enable debug logging"`
	LogJSON   bool   `name:"log-json" help:"Write logs as JSON"`
	VenueFile string `name:"venue-file" short:"f" env:"CFPWATCH_VENUES" default:"venues.toml" help:"Venue table (TOML)"`
	Store     string `enum:"sqlite,fs" default:"sqlite" help:"Snapshot store: sqlite or fs"`
	DB        string `name:"db" env:"CFPWATCH_DB" help:"SQLite database path (default ~/.cfpwatch/cfpwatch.db)"`
	Downloads string `env:"CFPWATCH_DOWNLOADS" default:"downloads" help:"Snapshot directory for --store=fs"`
	Tmp       string `env:"CFPWATCH_TMP" default:"tmp" help:"Directory for candidates, knowledge base cache and report"`
	KBName    string `name:"kb-name" env:"KB_FILENAME" default:"KB" help:"Knowledge base cache file name, without extension"`
	Results   string `name:"results-name" env:"RESULTS_FILENAME" default:"RESULTS" help:"Report file name, without extension"`

	Scan    ScanCmd    `cmd:"" help:"Check venue pages for new links and store the linked pages"`
	Analyze AnalyzeCmd `cmd:"" help:"Rate stored candidates against the knowledge base and email the report"`
	Run     RunCmd     `cmd:"" help:"Scan, then analyze"`
	Diff    DiffCmd    `cmd:"" help:"Print links added between two local HTML files"`
	Venues  VenuesCmd  `cmd:"" help:"List configured venues"`
}

func (c *CLI) kbFilename() string {
	return c.KBName + ".txt"
}

func (c *CLI) resultsPath() string {
	return filepath.Join(c.Tmp, c.Results+".json")
}

// ScanFlags configure a scan.
type ScanFlags struct {
	Concurrency int           `short:"c" default:"4" help:"Venues scanned at once"`
	Timeout     time.Duration `default:"10s" help:"Per-request timeout"`
	RPS         float64       `name:"rps" default:"1" help:"Requests per second per host (0 disables limiting)"`
	Mismatch    string        `enum:"diff,skip" default:"diff" help:"When the element is on only one page version: diff against empty, or skip"`
	Extractor   string        `enum:"trafilatura,readability,none" default:"trafilatura" help:"Boilerplate remover for linked pages without a content region"`
}

// AnalyzeFlags configure an analysis.
type AnalyzeFlags struct {
	LLM          string `name:"llm" enum:"gemini,ollama" default:"gemini" help:"Model provider: gemini or ollama"`
	Model        string `help:"Model name (provider default if empty)"`
	GeminiAPIKey string `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	OllamaURL    string `name:"ollama-url" env:"OLLAMA_URL" default:"http://localhost:11434" help:"Ollama server URL"`
	KBFile       string `name:"kb-file" type:"existingfile" help:"Read the knowledge base from this file instead of Notion"`
	NotionToken  string `env:"NOTION_TOKEN" help:"Notion integration token"`
	NotionPageID string `name:"notion-page-id" env:"NOTION_PAGE_ID" help:"Notion page holding the knowledge base"`
	MaxTokens    int    `name:"max-tokens" help:"Skip candidates whose prompt exceeds this many tokens (0 disables)"`

	NoEmail      bool   `name:"no-email" help:"Do not email the report"`
	To           string `name:"to" env:"EMAIL_RECEIVER" help:"Report recipient"`
	Subject      string `default:"CFP Results JSON" help:"Email subject"`
	SMTPHost     string `name:"smtp-host" env:"SMTP_HOST" help:"SMTP server"`
	SMTPPort     int    `name:"smtp-port" env:"SMTP_PORT" default:"587" help:"SMTP port"`
	SMTPUser     string `name:"smtp-user" env:"SMTP_USER" help:"SMTP username"`
	SMTPPassword string `name:"smtp-password" env:"SMTP_PASSWORD" help:"SMTP password"`
	SMTPFrom     string `name:"smtp-from" env:"SMTP_FROM" help:"Sender address (defaults to the SMTP username)"`
}

func (f AnalyzeFlags) from() string {
	if f.SMTPFrom != "" {
		return f.SMTPFrom
	}
	return f.SMTPUser
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	ScanFlags `embed:""`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	AnalyzeFlags `embed:""`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	ScanFlags    `embed:""`
	AnalyzeFlags `embed:""`
}

// DiffCmd is the "diff" subcommand.
type DiffCmd struct {
	Old      string `arg:"" type:"existingfile" help:"Previous version of the page"`
	New      string `arg:"" type:"existingfile" help:"Current version of the page"`
	Base     string `required:"" help:"Absolute URL relative links resolve against"`
	Element  string `help:"Opening tag of the element to compare, e.g. '<div class=\"main-content\">'"`
	Mismatch string `enum:"diff,skip" default:"diff" help:"When the element is on only one side: diff against empty, or skip"`
	Unified  bool   `short:"u" help:"Also print the line diff"`
}

// VenuesCmd is the "venues" subcommand.
type VenuesCmd struct{}
