package emit

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/retrotrk/nitrocc/internal/optimise"
)

// WriteStats prints the per-pass optimization summary to w (normally
// stderr), colored per the operator's `-color` choice (§6 "optimization
// statistics go to standard error when not quieted").
func WriteStats(w io.Writer, plan *optimise.Plan) {
	cyan := color.New(color.FgCyan).SprintfFunc()
	yellow := color.New(color.FgYellow).SprintfFunc()
	green := color.New(color.FgGreen).SprintfFunc()

	fmt.Fprintf(w, "%s pruned patterns=%d pruned rows=%d trimmed rows=%d\n",
		cyan("trim/prune:"), plan.Stats.PrunedPatterns, plan.Stats.PrunedRows, plan.Stats.TrimmedRows)
	fmt.Fprintf(w, "%s overlapped rows=%d\n", cyan("overlap search:"), plan.OverlapScore)
	fmt.Fprintf(w, "%s unique cells=%d/%d saved bytes=%s\n",
		cyan("main catalog:"), plan.MainPool.Catalog.Len(), optimise.MaxCatalogSize, byteDelta(green, yellow, plan.MainPool.SavedBytes))
	fmt.Fprintf(w, "%s unique cells=%d/%d saved bytes=%s\n",
		cyan("subpattern catalog:"), plan.SubPool.Catalog.Len(), optimise.MaxCatalogSize, byteDelta(green, yellow, plan.SubPool.SavedBytes))
}

func byteDelta(good, bad func(string, ...interface{}) string, n int) string {
	if n >= 0 {
		return good("+%d", n)
	}
	return bad("%d", n)
}
