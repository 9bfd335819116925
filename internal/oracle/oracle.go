package oracle

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GriffinCanCode/specval/internal/catalogue"
	"github.com/GriffinCanCode/specval/internal/fixture"
	"github.com/GriffinCanCode/specval/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/specval/internal/logging"
	"github.com/GriffinCanCode/specval/internal/math/common"
	"github.com/GriffinCanCode/specval/internal/math/utilities"
	"github.com/GriffinCanCode/specval/internal/shared/id"
	"github.com/GriffinCanCode/specval/internal/shared/utils"
)

// ErrUnknownFixture is returned by Evaluate for identifiers outside the catalogue.
var ErrUnknownFixture = errors.New("unknown fixture")

// Options controls a run.
type Options struct {
	Pattern      string
	DryRun       bool
	OutputDigits int
	Workers      int                 // concurrent fixtures, 0 uses GOMAXPROCS
	Digest       utils.HashAlgorithm // content digest recorded per fixture
}

// Oracle drives the regeneration of a fixture directory.
type Oracle struct {
	catalogue *catalogue.Catalogue
	ctx       *common.Context
	logger    *logging.Logger
	metrics   *monitoring.Metrics
	hasher    *utils.Hasher
	opts      Options
	runID     id.RunID
}

// New creates an oracle evaluating at the working precision. A nil logger or
// metrics collector is replaced by a no-op one.
func New(cat *catalogue.Catalogue, logger *logging.Logger, metrics *monitoring.Metrics, opts Options) *Oracle {
	if logger == nil {
		logger = logging.NewNop()
	}
	if metrics == nil {
		metrics = monitoring.NewMetrics()
	}
	if opts.Pattern == "" {
		opts.Pattern = fixture.DefaultPattern
	}
	if opts.OutputDigits <= 0 {
		opts.OutputDigits = common.OutputDigits
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}

	runID := id.NewRunID()
	return &Oracle{
		catalogue: cat,
		ctx:       common.Working(),
		logger:    logger.ForRun(runID.String()),
		metrics:   metrics,
		hasher:    utils.NewHasher(opts.Digest),
		opts:      opts,
		runID:     runID,
	}
}

// RunID identifies this oracle's run in logs and reports.
func (o *Oracle) RunID() id.RunID { return o.runID }

// Metrics returns the run's metrics collector.
func (o *Oracle) Metrics() *monitoring.Metrics { return o.metrics }

// Run regenerates every matching fixture under dir, up to Options.Workers at
// a time. Failures on individual files are recorded in the report and joined
// into the returned error; the remaining files are still processed. Report
// entries follow the scan order.
func (o *Oracle) Run(ctx context.Context, dir string) (*Report, error) {
	report := &Report{
		RunID:   o.runID.String(),
		Dir:     dir,
		Pattern: o.opts.Pattern,
		DryRun:  o.opts.DryRun,
		Started: time.Now(),
	}

	files, err := fixture.Scan(ctx, dir, o.opts.Pattern)
	if err != nil {
		return nil, err
	}
	o.logger.Info("Starting run",
		zap.String("dir", dir),
		zap.String("pattern", o.opts.Pattern),
		zap.Int("files", len(files)),
		zap.Int("workers", o.opts.Workers),
		zap.Bool("dry_run", o.opts.DryRun))

	results := make([]FileReport, len(files))
	failures := make([]error, len(files))

	var g errgroup.Group
	g.SetLimit(o.opts.Workers)
	for i, f := range files {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			results[i], failures[i] = o.ProcessFile(ctx, f)
			return nil
		})
	}
	_ = g.Wait()

	for _, fr := range results {
		if fr.Name != "" {
			report.Files = append(report.Files, fr)
		}
	}
	if err := ctx.Err(); err != nil {
		return report.finish(o.metrics), err
	}

	report.finish(o.metrics)
	o.logger.Info("Run complete",
		zap.Duration("duration", report.Duration),
		zap.Int64("processed", report.Totals.Files[monitoring.FileProcessed]),
		zap.Int64("skipped", report.Totals.Files[monitoring.FileSkipped]),
		zap.Int64("failed", report.Totals.Files[monitoring.FileFailed]),
		zap.Int64("diagnostics", report.Totals.Diagnostics))
	return report, errors.Join(failures...)
}

// ProcessFile regenerates a single fixture. The file is only rewritten when
// its content changes. ProcessFile is safe for concurrent use on distinct
// files.
func (o *Oracle) ProcessFile(ctx context.Context, f fixture.File) (FileReport, error) {
	start := time.Now()
	log := o.logger.ForFixture(f.Name)
	fr := FileReport{Name: f.Name, Path: f.Path}
	log.Info("Processing fixture")

	entry, ok := o.catalogue.Lookup(f.Name)
	if !ok || !entry.Supported() {
		reason := "unsupported"
		if !ok {
			reason = "unknown"
		}
		log.Info("Don't know how to process, skipping", zap.String("reason", reason))
		return fr.skip(o.metrics, reason), nil
	}

	table, err := fixture.Read(f.Path)
	if err != nil {
		log.Error("Failed to read fixture", zap.Error(err))
		return fr.fail(o.metrics, err), err
	}
	if table.Arity() != entry.Arity() {
		err := fmt.Errorf("%s: table has %d argument columns, want %d: %w", f.Name, table.Arity(), entry.Arity(), catalogue.ErrArity)
		log.Warn("Argument count mismatch, skipping", zap.Error(err))
		return fr.skip(o.metrics, err.Error()), nil
	}
	cols, err := table.ArgumentColumns()
	if err != nil {
		log.Error("Bad fixture header", zap.Error(err))
		return fr.fail(o.metrics, err), err
	}

	sink := newDiagnosticSink(log, o.metrics, o.opts.OutputDigits, &fr)
	env := catalogue.NewEnv(o.ctx, sink)
	for i := range table.Rows {
		if err := ctx.Err(); err != nil {
			return fr.fail(o.metrics, err), err
		}
		o.processRow(log, env, sink, entry, table, i, cols, &fr)
	}
	fr.Rows = len(table.Rows)

	data, err := table.Encode()
	if err != nil {
		log.Error("Failed to encode fixture", zap.Error(err))
		return fr.fail(o.metrics, err), err
	}
	fr.Digest = o.hasher.Hash(data)
	fr.Changed = fr.Digest != o.hasher.Hash(table.Source)
	if fr.Changed && !o.opts.DryRun {
		if err := table.Replace(data); err != nil {
			log.Error("Failed to write fixture", zap.Error(err))
			return fr.fail(o.metrics, err), err
		}
	}

	fr.Status = monitoring.FileProcessed
	fr.Duration = time.Since(start)
	o.metrics.RecordFile(fr.Status)
	log.Info("Fixture done",
		zap.Int("rows", fr.Rows),
		zap.Int("computed", fr.Computed),
		zap.Int("copied", fr.Copied),
		zap.Int("failed", fr.Failed),
		zap.Bool("changed", fr.Changed),
		zap.String("digest", utils.ShortHash(fr.Digest)),
		zap.Duration("duration", fr.Duration))
	return fr, nil
}

// processRow fills in one expectedresult cell.
func (o *Oracle) processRow(log *logging.Logger, env catalogue.Env, sink *diagnosticSink, entry catalogue.Entry, table *fixture.Table, i int, cols []int, fr *FileReport) {
	timer := monitoring.NewTimer(o.metrics, entry.ID)
	if _, ok := utilities.ParseToken(table.Result(i)); ok {
		fr.Copied++
		timer.Stop(monitoring.OutcomeCopied)
		return
	}

	cells := table.Arguments(i, cols)
	sink.row = cells
	res := o.evaluate(env, entry, cells)
	table.SetResult(i, utilities.FormatResult(res, o.opts.OutputDigits))

	if res.IsNaN() {
		fr.Failed++
		timer.Stop(monitoring.OutcomeFailed)
		log.ForRow(i+1, cells).Debug("No real value, setting result to NaN", zap.Error(res.Reason))
		return
	}
	fr.Computed++
	timer.Stop(monitoring.OutcomeComputed)
}

func (o *Oracle) evaluate(env catalogue.Env, entry catalogue.Entry, cells []string) common.Result {
	args := make([]*big.Float, len(cells))
	for j, cell := range cells {
		x, err := utilities.ParseArgument(o.ctx, cell)
		if err != nil {
			return common.Unrepresentable(fmt.Errorf("arg%d: %w", j, err))
		}
		args[j] = x
	}
	return entry.Result(env, args)
}

// Evaluate computes one value for a fixture identifier, formatted the way it
// would be written to the fixture.
func (o *Oracle) Evaluate(fixtureID string, cells []string) (string, common.Result, error) {
	entry, ok := o.catalogue.Lookup(fixtureID)
	if !ok {
		return "", common.Result{}, fmt.Errorf("%q: %w", fixtureID, ErrUnknownFixture)
	}
	if !entry.Supported() {
		return "", common.Result{}, fmt.Errorf("%q: unsupported fixture", fixtureID)
	}
	if len(cells) != entry.Arity() {
		return "", common.Result{}, fmt.Errorf("%q takes %d arguments, got %d: %w", fixtureID, entry.Arity(), len(cells), catalogue.ErrArity)
	}
	sink := newDiagnosticSink(o.logger.ForFixture(fixtureID), o.metrics, o.opts.OutputDigits, nil)
	sink.row = cells
	res := o.evaluate(catalogue.NewEnv(o.ctx, sink), entry, cells)
	return utilities.FormatResult(res, o.opts.OutputDigits), res, nil
}
