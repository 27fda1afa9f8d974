package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tabtrain/pkg/data"
	"tabtrain/pkg/model"
)

var (
	primary = lipgloss.Color("#00ff9f")
	dim     = lipgloss.Color("#6e7681")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primary)
	labelStyle = lipgloss.NewStyle().Bold(true).Width(10)
	dimStyle   = lipgloss.NewStyle().Foreground(dim)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1)
)

func field(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

// renderSchema describes a training file and how it splits into batches.
func renderSchema(input string, s data.Schema, sizes []int) string {
	classes := make([]string, len(s.Classes))
	for i, c := range s.Classes {
		classes[i] = fmt.Sprintf("%d=%s", i, c)
	}
	rows := 0
	counts := make([]string, len(sizes))
	for i, n := range sizes {
		rows += n
		counts[i] = fmt.Sprint(n)
	}
	lines := []string{
		titleStyle.Render(input),
		field("Features", fmt.Sprintf("%s (%d)", strings.Join(s.FeatureNames, ", "), len(s.FeatureNames))),
		field("Label", s.Label),
		field("Classes", strings.Join(classes, " ")),
		field("Rows", fmt.Sprint(rows)),
		field("Batches", fmt.Sprintf("%d %s", len(sizes), dimStyle.Render("["+strings.Join(counts, " ")+"]"))),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

type runSummary struct {
	ID        string
	TestRows  int
	Batches   int
	Steps     int
	FinalLoss float64
}

// renderEvaluation formats a finished run and its held-out evaluation.
func renderEvaluation(run runSummary, ev *model.Evaluation) string {
	head := []string{
		titleStyle.Render("Evaluation"),
		field("Run", dimStyle.Render(run.ID)),
		field("Held out", fmt.Sprintf("%d rows", run.TestRows)),
		field("Trained", fmt.Sprintf("%d batches, %d updates", run.Batches, run.Steps)),
	}
	if run.Steps > 0 {
		head = append(head, field("Loss", fmt.Sprintf("%.6f", run.FinalLoss)))
	}
	head = append(head, field("Accuracy", fmt.Sprintf("%.4f", ev.Accuracy())))
	stats := boxStyle.Render(strings.TrimRight(ev.Stats(), "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, lipgloss.JoinVertical(lipgloss.Left, head...), stats) + "\n"
}
