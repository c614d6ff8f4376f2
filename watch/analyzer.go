package watch

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/fwojciec/cfpwatch"
)

// DefaultSubject is the subject of the report email.
const DefaultSubject = "CFP Results JSON"

// Analyzer scores stored candidates against the knowledge base, writes the
// report and emails it.
type Analyzer struct {
	KnowledgeBase cfpwatch.KnowledgeBase
	Candidates    cfpwatch.CandidateStore
	Comparer      cfpwatch.Comparer
	Report        cfpwatch.ReportWriter

	// TokenCounter and MaxTokens skip candidates whose prompt exceeds the
	// budget. Both are optional.
	TokenCounter cfpwatch.TokenCounter
	MaxTokens    int

	// Email is sent only when Mailer is set and there is at least one
	// analyzed candidate.
	Renderer    cfpwatch.ReportRenderer
	Mailer      cfpwatch.Mailer
	To          string
	Subject     string
	Attachments []string

	Logger *slog.Logger
}

// AnalyzeResult summarizes an analysis.
type AnalyzeResult struct {
	Candidates []*cfpwatch.Candidate // analyzed, best fit first
	Skipped    int
	Failed     int
	Emailed    bool
}

// Analyze compares every stored candidate with the knowledge base. Failed
// comparisons are logged and left out of the report. The report is written
// even when empty.
func (a *Analyzer) Analyze(ctx context.Context) (*AnalyzeResult, error) {
	logger := a.logger()

	kb, err := a.KnowledgeBase.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load knowledge base: %w", err)
	}

	candidates, err := a.Candidates.FindCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}
	logger.Info("analyzing candidates", "count", len(candidates), "kb_bytes", len(kb))

	res := &AnalyzeResult{}
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c.Prompt = cfpwatch.BuildComparisonPrompt(kb, c.Text)
		if a.overBudget(ctx, c, logger) {
			res.Skipped++
			continue
		}

		response, err := a.Comparer.Compare(ctx, kb, c.Text)
		if err != nil {
			res.Failed++
			logger.Warn("comparison failed", "link", c.Link, "error", err)
			continue
		}
		c.Response = response
		c.Score = cfpwatch.ParseFitScore(response)
		res.Candidates = append(res.Candidates, c)
	}

	slices.SortStableFunc(res.Candidates, func(x, y *cfpwatch.Candidate) int {
		return cmp.Compare(y.Score, x.Score)
	})

	if err := a.Report.WriteReport(ctx, res.Candidates); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	if a.Mailer == nil {
		return res, nil
	}
	if len(res.Candidates) == 0 {
		logger.Info("no candidates analyzed, email skipped")
		return res, nil
	}
	if err := a.email(ctx, res.Candidates); err != nil {
		return res, err
	}
	res.Emailed = true
	return res, nil
}

// overBudget reports whether the candidate's prompt exceeds MaxTokens.
// Counting errors are logged and do not skip the candidate.
func (a *Analyzer) overBudget(ctx context.Context, c *cfpwatch.Candidate, logger *slog.Logger) bool {
	if a.TokenCounter == nil || a.MaxTokens <= 0 {
		return false
	}
	n, err := a.TokenCounter.CountTokens(ctx, c.Prompt)
	if err != nil {
		logger.Warn("token count failed", "link", c.Link, "error", err)
		return false
	}
	if n > a.MaxTokens {
		logger.Warn("prompt over token budget, skipped", "link", c.Link, "tokens", n, "max", a.MaxTokens)
		return true
	}
	return false
}

func (a *Analyzer) email(ctx context.Context, candidates []*cfpwatch.Candidate) error {
	body, err := a.Renderer.Render(candidates)
	if err != nil {
		return fmt.Errorf("render email: %w", err)
	}
	subject := a.Subject
	if subject == "" {
		subject = DefaultSubject
	}
	if err := a.Mailer.Send(ctx, &cfpwatch.Message{
		To:          a.To,
		Subject:     subject,
		HTMLBody:    body,
		Attachments: a.Attachments,
	}); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

func (a *Analyzer) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}
