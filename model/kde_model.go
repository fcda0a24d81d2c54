package model

type Density struct {
	X     float64 `json:"x"`
	Value float64 `json:"v"`
}

// Peak is a strict local maximum of a density grid.
type Peak struct {
	Index   int     `json:"index"`
	X       float64 `json:"x"`
	Density float64 `json:"density"`
}

// WidthInterval holds the two points around a peak where the density
// crosses Target.
type WidthInterval struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Target float64 `json:"target"`
}

func (w *WidthInterval) Width() float64 {
	return w.Right - w.Left
}

// Encloses reports whether x lies strictly between the two crossings.
func (w *WidthInterval) Encloses(x float64) bool {
	return w.Left < x && x < w.Right
}

type UncertaintySummary struct {
	Range    Range   `json:"range"`
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std"`
	SEMPeak  float64 `json:"sem_peak"`
	SEMWidth float64 `json:"sem_width"`
}

type AnalysisResult struct {
	Peak Peak `json:"peak"`

	// Interval is nil when the width could not be computed.
	Interval       *WidthInterval `json:"interval,omitempty"`
	Width          float64        `json:"width,omitempty"`
	WidthAvailable bool           `json:"width_available"`

	SEMPeak              float64 `json:"sem_peak,omitempty"`
	SEMWidth             float64 `json:"sem_width,omitempty"`
	UncertaintyAvailable bool    `json:"uncertainty_available"`

	Warning string `json:"warning,omitempty"`
}

type Report struct {
	BandWidth   float64             `json:"bandwidth"`
	Range       Range               `json:"range"`
	HeightRatio float64             `json:"height_ratio"`
	Grid        []Density           `json:"grid,omitempty"`
	Peaks       []Peak              `json:"peaks"`
	Results     []AnalysisResult    `json:"results"`
	Uncertainty *UncertaintySummary `json:"uncertainty,omitempty"`
	// MassInRange is the density integrated over Range.
	MassInRange float64 `json:"mass_in_range"`
}

// InRangePeaks returns the peaks whose x lies in the report range.
func (r *Report) InRangePeaks() []Peak {
	res := []Peak{}
	if r == nil {
		return res
	}
	for _, p := range r.Peaks {
		if r.Range.Contains(p.X) {
			res = append(res, p)
		}
	}
	return res
}
