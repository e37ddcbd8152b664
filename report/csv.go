package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/arloliu/expfit"
)

var csvHeader = []string{"x", "y", "sigma", "fitted", "residual"}

// WriteCSV writes one row per point of res: x, y, sigma, the fitted value and
// the normalized residual (y - fitted)/sigma. Values are written with full precision.
//
// For exponential fits the rows hold the linearized values (t, ln V, dV/V).
func WriteCSV(w io.Writer, res *expfit.Result) error {
	residuals, err := res.Residuals()
	if err != nil {
		return err
	}
	fitted := res.Fitted()

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	row := make([]string, len(csvHeader))
	for i := range res.X {
		row[0] = formatCSV(res.X[i])
		row[1] = formatCSV(res.Y[i])
		row[2] = formatCSV(res.Sigma[i])
		row[3] = formatCSV(fitted[i])
		row[4] = formatCSV(residuals[i])
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

func formatCSV(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
