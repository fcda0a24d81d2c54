// peakcal measures the position and width of energy deposit peaks in
// simulated detector output for one particle type.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/uyouii/peakcal/common"
	"github.com/uyouii/peakcal/config"
	"github.com/uyouii/peakcal/dataset"
	"github.com/uyouii/peakcal/model"
	"github.com/uyouii/peakcal/peak"
	"github.com/uyouii/peakcal/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	flagConfig = flag.String("config", "peakcal.yaml", "run configuration")
	flagData   = flag.String("data", "", "CSV file with the simulated events")
	flagColumn = flag.String("column", "", "column to analyse, overrides the config")
	flagPDG    = flag.Int("pdg", 0, "particle code to analyse, overrides the config")
	flagOut    = flag.String("out", "", "write the JSON report here instead of stdout")
	flagGrid   = flag.Bool("grid", false, "include the evaluated density grid in the report")
)

type windowReport struct {
	Window string        `json:"window"`
	Error  string        `json:"error,omitempty"`
	Report *model.Report `json:"report,omitempty"`
}

type runReport struct {
	RunID    string         `json:"run_id"`
	Column   string         `json:"column"`
	Category model.Category `json:"category"`
	Events   int            `json:"events"`
	Windows  []windowReport `json:"windows"`
}

func main() {
	flag.Parse()
	if *flagData == "" {
		flag.Usage()
		log.Fatal("-data is required")
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *flagColumn != "" {
		cfg.Column = *flagColumn
	}
	if *flagPDG != 0 {
		cfg.Category = *flagPDG
	}
	if err := utils.InitLogger(cfg.Logging.Development, cfg.Logging.Level); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zap.L().Sync()

	data, err := dataset.LoadFile(*flagData)
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}

	report, err := run(context.Background(), cfg, data)
	if err != nil {
		log.Fatal(err)
	}
	if !*flagGrid {
		for _, w := range report.Windows {
			if w.Report != nil {
				w.Report.Grid = nil
			}
		}
	}

	var out io.Writer = os.Stdout
	if *flagOut != "" {
		f, err := os.Create(*flagOut)
		if err != nil {
			log.Fatalf("failed to create %s: %v", *flagOut, err)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Fatalf("failed to write report: %v", err)
	}
}

// run analyses every configured window of the selected category. Windows are
// independent and run concurrently; a window failing on its range alone is
// recorded in the report instead of failing the run.
func run(ctx context.Context, cfg *config.Config, data *dataset.Dataset) (*runReport, error) {
	runID := uuid.New().String()
	category, _ := cfg.CategoryInfo(cfg.Category)
	logger := utils.GetLogger(ctx).With(zap.String("run", runID), zap.String("column", cfg.Column),
		zap.String("category", category.Name))

	counts, err := data.CategoryCounts(cfg.CategoryColumn)
	if err != nil {
		return nil, err
	}
	for code, cnt := range counts {
		info, _ := cfg.CategoryInfo(code)
		logger.Debug("events per category", zap.Int("pdg", code), zap.String("name", info.Name), zap.Int("events", cnt))
	}

	sample, err := data.Select(cfg.CategoryColumn, cfg.Category, cfg.Column)
	if err != nil {
		return nil, err
	}
	if sample.IsEmpty() {
		return nil, fmt.Errorf("no data available for PDG code %d in column %s: %w",
			cfg.Category, dataset.NormalizeName(cfg.Column), common.ErrorInvalidValue)
	}

	report := &runReport{
		RunID:    runID,
		Column:   dataset.NormalizeName(cfg.Column),
		Category: category,
		Events:   len(sample),
		Windows:  make([]windowReport, len(cfg.Windows)),
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, w := range cfg.Windows {
		i, w := i, w
		g.Go(func() error {
			wctx := utils.ContextWithLogger(gctx, logger.With(zap.String("window", w.Name)))
			res, err := peak.Analyze(wctx, sample, cfg.Params(w))
			report.Windows[i] = windowReport{Window: w.Name, Report: res}
			if err != nil {
				if !errors.Is(err, common.ErrorEmptyRange) {
					return fmt.Errorf("window %s: %w", w.Name, err)
				}
				report.Windows[i].Error = err.Error()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, w := range report.Windows {
		logSummary(logger, w)
	}
	return report, nil
}

func logSummary(logger *zap.Logger, w windowReport) {
	logger = logger.With(zap.String("window", w.Window))
	if w.Report == nil {
		return
	}
	for i, res := range w.Report.Results {
		fields := []zap.Field{
			zap.Int("peak", i+1),
			zap.Float64("x", utils.FormatFloat(res.Peak.X, 6)),
			zap.Float64("y", utils.FormatFloat(res.Peak.Density, 6)),
		}
		if res.WidthAvailable {
			fields = append(fields, zap.Float64("width", utils.FormatFloat(res.Width, 6)))
		}
		logger.Info("peak", fields...)
	}
	if u := w.Report.Uncertainty; u != nil {
		logger.Info("uncertainty", zap.Int("events", u.Count),
			zap.Float64("std", utils.FormatFloat(u.StdDev, 6)),
			zap.Float64("semPeak", utils.FormatFloat(u.SEMPeak, 6)),
			zap.Float64("semWidth", utils.FormatFloat(u.SEMWidth, 6)))
	}
}
