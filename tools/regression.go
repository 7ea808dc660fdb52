package tools

import (
	"fmt"
	"strings"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/stats"
	"github.com/sigmaflow-org/sigmaflow/table"
)

// ============================================================================
// MULTIPLE REGRESSION — least-squares model with residual diagnostics
// ============================================================================

type regressionTool struct{}

func (regressionTool) Analyze(t *table.Table, p analysis.Params) (*analysis.Result, error) {
	if t.IsEmpty() {
		return nil, analysis.Invalidf("numeric data is required for regression")
	}

	targetName := p.String("target_column", "")
	if targetName == "" || !t.Has(targetName) {
		return nil, analysis.Invalidf("the target column %q does not exist in the data", targetName)
	}
	targetCol, _ := t.Column(targetName)
	if targetCol.Kind != table.KindNumeric {
		return nil, analysis.Invalidf("the target column %q must be numeric", targetName)
	}

	predictorNames := p.Strings("predictors")
	if len(predictorNames) == 0 {
		for _, col := range t.NumericColumns() {
			if col.Name != targetName {
				predictorNames = append(predictorNames, col.Name)
			}
		}
	}
	if len(predictorNames) == 0 {
		return nil, analysis.Invalidf("no numeric columns found to use as predictors")
	}
	if err := analysis.RequireColumns(t, predictorNames...); err != nil {
		return nil, err
	}

	predictorCols := make([]*table.Column, len(predictorNames))
	for i, name := range predictorNames {
		col, _ := t.Column(name)
		if col.Kind != table.KindNumeric {
			return nil, analysis.Invalidf("predictor column %q must be numeric", name)
		}
		predictorCols[i] = col
	}

	// Rows with any missing value are dropped before fitting.
	var y []float64
	var x [][]float64
	var kept []int
	for i := 0; i < t.Len(); i++ {
		if targetCol.IsNull(i) {
			continue
		}
		row := make([]float64, len(predictorCols))
		complete := true
		for j, col := range predictorCols {
			if col.IsNull(i) {
				complete = false
				break
			}
			row[j] = col.Float(i)
		}
		if !complete {
			continue
		}
		y = append(y, targetCol.Float(i))
		x = append(x, row)
		kept = append(kept, i)
	}
	if len(y) < len(predictorNames)+2 {
		return nil, analysis.Invalidf("not enough data for the number of selected variables")
	}

	model, err := stats.OLS(y, x)
	if err != nil {
		return nil, analysis.Computef("could not fit the regression model: %v", err)
	}

	termNames := append([]string{"const"}, predictorNames...)
	var coefficients []analysis.Record
	var significant []string
	for j, term := range termNames {
		isSig := model.PValues[j] < 0.05
		if isSig && term != "const" {
			significant = append(significant, term)
		}
		coefficients = append(coefficients, analysis.Record{
			"term":        term,
			"coefficient": stats.Round(model.Coefs[j], 4),
			"std_err":     stats.Round(model.StdErrs[j], 4),
			"t_value":     stats.Round(model.TStats[j], 2),
			"p_value":     stats.Round(model.PValues[j], 5),
			"significant": isSig,
		})
	}

	// Chart rows carry actual, predicted and residual for the diagnostics
	// plot.
	chart := make([]analysis.Record, len(kept))
	for i, rowIdx := range kept {
		row := rowRecord(t, rowIdx)
		row["predicted"] = model.Fitted[i]
		row["residual"] = model.Residuals[i]
		chart[i] = row
	}

	sigText := "No variable appears to have a significant influence (p < 0.05)."
	if len(significant) > 0 {
		sigText = fmt.Sprintf("The significant variables are: %s.", strings.Join(significant, ", "))
	}

	equation := fmt.Sprintf("%s = %.2f", targetName, model.Coefs[0])
	shown := significant
	if len(shown) > 3 {
		shown = shown[:3]
	}
	for _, term := range shown {
		for j, name := range termNames {
			if name == term {
				equation += fmt.Sprintf(" + (%.2f * %s)", model.Coefs[j], term)
			}
		}
	}

	summary := fmt.Sprintf(
		"Regression model fit (adjusted R²: %.2f%%). %s Approximate equation: %s.",
		model.AdjR2*100, sigText, equation)

	return analysis.NewResult("Multiple Regression Analysis", summary, chart, map[string]any{
		"r_squared":     model.R2,
		"adj_r_squared": model.AdjR2,
		"f_pvalue":      model.FPValue,
		"coefficients":  coefficients,
	}), nil
}
