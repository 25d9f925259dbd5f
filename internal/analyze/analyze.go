package analyze

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gridaco/bot/internal/config"
	"github.com/gridaco/bot/internal/ignore"
	"github.com/gridaco/bot/internal/llm"
	"github.com/gridaco/bot/internal/prompt"
	"github.com/gridaco/bot/internal/redact"
	"github.com/gridaco/bot/internal/report"
	"github.com/gridaco/bot/internal/scan"
)

// Sink receives run progress. Implementations must be fast; the engine calls
// them inline between provider reads.
type Sink interface {
	RunStarted(total int)
	FileStarted(rel string)
	FileSkipped(rel, reason string)
	Fragment(rel, text string)
	FileCompleted(rel string, elapsed time.Duration)
	FileFailed(rel string, err error)
	RunFinished(s Summary)
}

// Summary is the outcome of one run.
type Summary struct {
	RunID    string
	Total    int
	Analyzed int
	Skipped  int
	Failed   int
	Elapsed  time.Duration
}

// Options tunes a single run.
type Options struct {
	// Overwrite re-analyzes files whose report already exists.
	Overwrite bool
	// Streaming uses the provider's incremental API and forwards fragments
	// to the sink. Reports are identical either way.
	Streaming bool
}

// Engine walks a source tree and reviews each matching file, one at a time.
type Engine struct {
	fsys  billy.Filesystem
	store *report.Store
	gen   llm.Generator
	cfg   config.Config
	log   *zap.Logger
	opts  Options
}

// New assembles an engine. fsys must be rooted at the scan directory.
func New(fsys billy.Filesystem, store *report.Store, gen llm.Generator, cfg config.Config, log *zap.Logger, opts Options) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{fsys: fsys, store: store, gen: gen, cfg: cfg, log: log, opts: opts}
}

// Discover lists the files the run would analyze, after ignore rules and the
// suffix filter.
func (e *Engine) Discover() ([]string, error) {
	rules, err := ignore.Load(e.fsys, e.cfg.IgnoreFiles...)
	if err != nil {
		return nil, err
	}
	files, err := scan.List(e.fsys, e.cfg.Pattern, rules)
	if err != nil {
		return nil, err
	}
	// Reports are never review candidates.
	out := files[:0]
	for _, rel := range files {
		if !strings.HasPrefix(rel, e.cfg.OutDir+"/") {
			out = append(out, rel)
		}
	}
	return out, nil
}

// Run analyzes every discovered file sequentially. A file that cannot be
// read or reviewed is logged, reported to the sink, and skipped; the run
// continues. Run returns early when ctx is canceled or discovery fails.
// RunFinished is delivered to the sink on every exit path.
func (e *Engine) Run(ctx context.Context, sink Sink) (Summary, error) {
	if sink == nil {
		sink = NopSink{}
	}

	start := time.Now()
	sum := Summary{RunID: uuid.NewString()}

	files, err := e.Discover()
	if err != nil {
		e.log.Error("discovery failed", zap.String("run_id", sum.RunID), zap.Error(err))
		sum.Elapsed = time.Since(start)
		sink.RunFinished(sum)
		return sum, err
	}
	sum.Total = len(files)

	e.log.Info("run started",
		zap.String("run_id", sum.RunID),
		zap.String("model", e.cfg.Model),
		zap.String("pattern", e.cfg.Pattern),
		zap.Int("files", len(files)))
	sink.RunStarted(len(files))

	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			sum.Elapsed = time.Since(start)
			sink.RunFinished(sum)
			return sum, err
		}
		e.analyzeOne(ctx, rel, sink, &sum)
	}

	sum.Elapsed = time.Since(start)
	e.log.Info("run finished",
		zap.Int("analyzed", sum.Analyzed),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed),
		zap.Duration("elapsed", sum.Elapsed))
	sink.RunFinished(sum)
	return sum, nil
}

func (e *Engine) analyzeOne(ctx context.Context, rel string, sink Sink, sum *Summary) {
	if e.store.Exists(rel) && !e.opts.Overwrite {
		e.log.Info("skipping, analysis exists", zap.String("file", rel))
		sink.FileSkipped(rel, "analysis exists")
		sum.Skipped++
		return
	}

	sink.FileStarted(rel)
	fileStart := time.Now()

	data, err := util.ReadFile(e.fsys, rel)
	if err != nil {
		e.log.Error("error reading file", zap.String("file", rel), zap.Error(err))
		sink.FileFailed(rel, err)
		sum.Failed++
		return
	}

	content := redact.Content(rel, string(data), e.cfg.Redact.Secrets, e.cfg.Redact.Paths)

	req := llm.Request{
		Prompt:      prompt.Build(rel, content, e.cfg.Instructions),
		Temperature: e.cfg.Temperature,
		NumCtx:      e.cfg.NumCtx,
		MaxTokens:   e.cfg.MaxTokens,
	}

	var resp llm.Response
	if e.opts.Streaming {
		resp, err = e.gen.Stream(ctx, req, func(fragment string) error {
			sink.Fragment(rel, fragment)
			return ctx.Err()
		})
	} else {
		resp, err = e.gen.Generate(ctx, req)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		e.log.Error("error analyzing file", zap.String("file", rel), zap.Error(err))
		sink.FileFailed(rel, err)
		sum.Failed++
		return
	}

	if err := e.store.Write(rel, resp.Text); err != nil {
		e.log.Error("error writing analysis", zap.String("file", rel), zap.Error(err))
		sink.FileFailed(rel, err)
		sum.Failed++
		return
	}

	elapsed := time.Since(fileStart)
	e.log.Info("completed analysis",
		zap.String("file", rel),
		zap.Int("tokens", resp.TokensUsed),
		zap.Duration("elapsed", elapsed))
	sink.FileCompleted(rel, elapsed)
	sum.Analyzed++
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RunStarted(int)                      {}
func (NopSink) FileStarted(string)                  {}
func (NopSink) FileSkipped(string, string)          {}
func (NopSink) Fragment(string, string)             {}
func (NopSink) FileCompleted(string, time.Duration) {}
func (NopSink) FileFailed(string, error)            {}
func (NopSink) RunFinished(Summary)                 {}
