package peak

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/uyouii/peakcal/common"
	"github.com/uyouii/peakcal/kde"
	"github.com/uyouii/peakcal/model"
	"github.com/uyouii/peakcal/utils"
	"go.uber.org/zap"
)

type Params struct {
	// BandwidthScale divides the reference bandwidth.
	BandwidthScale float64
	BandWidthRule  string
	// HeightRatio is the fraction of the peak height the width is measured at.
	HeightRatio float64
	// Range selects the reported peaks (closed) and the uncertainty sample (half open).
	Range      model.Range
	GridSize   int
	SearchStep float64
}

func DefaultParams(r model.Range) Params {
	return Params{
		BandwidthScale: 1,
		BandWidthRule:  kde.BandWidthScott,
		HeightRatio:    DefaultRatio,
		Range:          r,
		GridSize:       DefaultGridSize,
		SearchStep:     DefaultSearchStep,
	}
}

func (p Params) Validate() error {
	if !(p.BandwidthScale > 0) || math.IsInf(p.BandwidthScale, 0) {
		return fmt.Errorf("bandwidth scale %v: %w", p.BandwidthScale, common.ErrorInvalidValue)
	}
	if !(p.HeightRatio > 0 && p.HeightRatio < 1) {
		return fmt.Errorf("height ratio %v: %w", p.HeightRatio, common.ErrorInvalidValue)
	}
	if !p.Range.Valid() || math.IsInf(p.Range.Lower, 0) || math.IsInf(p.Range.Upper, 0) {
		return fmt.Errorf("range %v: %w", p.Range, common.ErrorInvalidValue)
	}
	if p.GridSize != 0 && p.GridSize < minGridSize {
		return fmt.Errorf("grid size %d: %w", p.GridSize, common.ErrorInvalidValue)
	}
	if p.SearchStep < 0 || math.IsNaN(p.SearchStep) || math.IsInf(p.SearchStep, 0) {
		return fmt.Errorf("search step %v: %w", p.SearchStep, common.ErrorInvalidValue)
	}
	return nil
}

// Analyzer runs the peak analysis for one parameter set. It holds no state
// between calls and may be shared.
type Analyzer struct {
	params    Params
	bandWidth kde.BandWidth
	solver    *WidthSolver
}

func NewAnalyzer(params Params) (*Analyzer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.GridSize == 0 {
		params.GridSize = DefaultGridSize
	}
	if params.SearchStep == 0 {
		params.SearchStep = DefaultSearchStep
	}

	bandWidth, err := kde.NewBandWidth(params.BandWidthRule)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		params:    params,
		bandWidth: bandWidth,
		solver:    NewWidthSolver(params.SearchStep),
	}, nil
}

func (a *Analyzer) Params() Params {
	return a.params
}

// Analyze is a shortcut for NewAnalyzer(params) followed by Analyze.
func Analyze(ctx context.Context, sample []float64, params Params) (*model.Report, error) {
	analyzer, err := NewAnalyzer(params)
	if err != nil {
		return nil, err
	}
	return analyzer.Analyze(ctx, sample)
}

// Analyze estimates the density of sample, finds its peaks and measures the
// peaks inside the range.
//
// An invalid sample fails the whole run. When no sample value falls inside the
// range the report is still returned together with an error wrapping
// common.ErrorEmptyRange, with the uncertainty left unset.
func (a *Analyzer) Analyze(ctx context.Context, sample []float64) (report *model.Report, err error) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Analyze recover panic error!", zap.Any("err", r),
				zap.String("panic info", utils.GetPanicInfo()), zap.Int("sampleSize", len(sample)))
			report = nil
			err = fmt.Errorf("analysis panicked: %v: %w", r, common.ErrorInvalidValue)
		}
	}()

	p := a.params
	logger.Info("begin peak analysis", zap.Float64("heightRatio", p.HeightRatio),
		zap.Float64("bandwidthScale", p.BandwidthScale), zap.Stringer("range", p.Range),
		zap.Int("sampleSize", len(sample)))

	k, err := kde.NewKDEUnivariate(sample, p.BandwidthScale, a.bandWidth)
	if err != nil {
		logger.Error("NewKDEUnivariate failed", zap.Error(err))
		return nil, err
	}

	grid := k.Kdensity(p.GridSize)
	peaks := FindPeaks(grid)

	report = &model.Report{
		BandWidth:   k.BandWidth(),
		Range:       p.Range,
		HeightRatio: p.HeightRatio,
		Grid:        grid,
		Peaks:       peaks,
		Results:     []model.AnalysisResult{},
		MassInRange: k.Mass(p.Range.Lower, p.Range.Upper),
	}

	for i, pk := range FilterPeaks(peaks, p.Range) {
		report.Results = append(report.Results, a.measure(logger, k, i, pk))
	}

	uncertainty, uncertaintyErr := EstimateUncertainty(sample, p.Range)
	if uncertaintyErr != nil {
		logger.Warn("EstimateUncertainty failed", zap.Error(uncertaintyErr))
		if !errors.Is(uncertaintyErr, common.ErrorEmptyRange) {
			return nil, uncertaintyErr
		}
		return report, uncertaintyErr
	}

	report.Uncertainty = uncertainty
	for i := range report.Results {
		res := &report.Results[i]
		res.SEMPeak = uncertainty.SEMPeak
		res.UncertaintyAvailable = true
		if res.WidthAvailable {
			res.SEMWidth = uncertainty.SEMWidth
		}
	}

	logger.Info("peak analysis done", zap.Int("peaks", len(peaks)), zap.Int("results", len(report.Results)),
		zap.Int("events", uncertainty.Count), zap.Float64("std", uncertainty.StdDev),
		zap.Float64("semPeak", uncertainty.SEMPeak), zap.Float64("semWidth", uncertainty.SEMWidth))
	return report, nil
}

func (a *Analyzer) measure(logger *zap.Logger, k *kde.KDEUnivariate, i int, pk model.Peak) model.AnalysisResult {
	res := model.AnalysisResult{Peak: pk}

	interval, err := a.solver.WidthAtFraction(k.Density, pk.X, pk.Density, a.params.HeightRatio)
	if err != nil {
		logger.Warn("failed to find intersection for peak, skipping", zap.Int("peak", i+1),
			zap.Float64("x", pk.X), zap.Error(err))
		res.Warning = err.Error()
		return res
	}

	res.Interval = &interval
	res.Width = interval.Width()
	res.WidthAvailable = true
	if !interval.Encloses(pk.X) {
		res.Warning = fmt.Sprintf("crossings [%v, %v] do not enclose the peak at %v",
			interval.Left, interval.Right, pk.X)
		logger.Warn("data quality warning", zap.Int("peak", i+1), zap.String("warning", res.Warning))
	}

	logger.Info("peak measured", zap.Int("peak", i+1), zap.Float64("x", pk.X),
		zap.Float64("density", pk.Density), zap.Float64("width", res.Width))
	return res
}
