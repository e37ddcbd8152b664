package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/arloliu/expfit"
	"github.com/arloliu/expfit/decay"
	"github.com/arloliu/expfit/regression"
)

type jsonReport struct {
	Series      jsonSeries             `json:"series"`
	Model       regression.ModelType   `json:"model"`
	Linear      regression.Fit         `json:"linear"`
	Diagnostics regression.Diagnostics `json:"diagnostics"`
	Params      *jsonParams            `json:"params,omitempty"`
	Curve       jsonCurve              `json:"curve"`
	Line        [2]Point               `json:"line"`
	Annotations []string               `json:"annotations"`
	Units       jsonUnits              `json:"units"`
}

type jsonSeries struct {
	// ID is hex encoded since JSON numbers cannot hold every uint64.
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Points int    `json:"points"`
}

type jsonParams struct {
	decay.Params
	TimeConstant    *float64 `json:"time_constant,omitempty"`
	TimeConstantErr *float64 `json:"time_constant_err,omitempty"`
	HalfLife        *float64 `json:"half_life,omitempty"`
}

// jsonCurve is the fitted model in the units of the input: [V0, Gamma] for
// exponential fits, [intercept, slope] for linear ones.
type jsonCurve struct {
	Model        regression.ModelType `json:"model"`
	Coefficients []float64            `json:"coefficients"`
}

type jsonUnits struct {
	Time    string `json:"time"`
	Voltage string `json:"voltage"`
}

// WriteJSON writes res to w as an indented JSON document.
func WriteJSON(w io.Writer, res *expfit.Result, opts ...Option) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}

	doc := jsonReport{
		Series: jsonSeries{
			ID:     fmt.Sprintf("%016x", res.SeriesID),
			Name:   res.SeriesName,
			Points: res.Linear.N,
		},
		Model:       res.Model,
		Linear:      res.Linear,
		Diagnostics: res.Diagnostics,
		Curve:       curve(res.Estimator()),
		Line:        FitLine(res),
		Annotations: annotations(res, cfg),
		Units:       jsonUnits{Time: cfg.timeUnit, Voltage: cfg.voltageUnit},
	}

	if res.Params != nil {
		doc.Params = &jsonParams{
			Params:          *res.Params,
			TimeConstant:    finite(res.Params.TimeConstant()),
			TimeConstantErr: finite(res.Params.TimeConstantErr()),
			HalfLife:        finite(res.Params.HalfLife()),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}

func curve(est regression.Estimator) jsonCurve {
	return jsonCurve{Model: est.Type(), Coefficients: slices.Clone(est.Coefficients())}
}

// finite returns nil for values JSON cannot represent.
func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}

	return &v
}
