package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

// RenderSummary formats the result of a successful import as a bordered panel.
func RenderSummary(result pgcsv.ImportResult) string {
	rows := [][2]string{
		{"Table", result.Table},
		{"Rows written", fmt.Sprintf("%d", result.RowsWritten)},
		{"Batches", fmt.Sprintf("%d", result.Batches)},
	}
	if result.EmptyBatches > 0 {
		rows = append(rows, [2]string{"Empty batches", fmt.Sprintf("%d", result.EmptyBatches)})
	}
	if result.RowsSkipped > 0 {
		rows = append(rows, [2]string{"Rows skipped", WarningStyle.Render(fmt.Sprintf("%d", result.RowsSkipped))})
	}
	rows = append(rows,
		[2]string{"Duration", result.Duration.Round(time.Millisecond).String()},
		[2]string{"Run ID", result.RunID.String()},
	)
	if result.SourceChecksum != "" {
		rows = append(rows, [2]string{"SHA-256", result.SourceChecksum})
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, TitleStyle.Render("Import complete"))
	for _, r := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(r[0]), r[1]))
	}
	return BoxStyle.Render(strings.Join(lines, "\n"))
}
