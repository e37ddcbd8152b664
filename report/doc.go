// Package report renders expfit results.
//
// Three formats are supported, selected by format.ReportFormat:
//
//   - Text: a sectioned, human-readable summary
//   - CSV: one row per point with the fitted value and normalized residual
//   - JSON: the full result, including the annotation lines
//
// Annotations returns the short labelled lines that are usually drawn next to
// a plot of the fit, and FitLine returns the two points that draw the line.
//
//	res, _ := expfit.FitDecay(s)
//	if err := report.WriteText(os.Stdout, res, report.WithTimeUnit("ns")); err != nil {
//	    return err
//	}
package report
