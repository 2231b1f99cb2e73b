package output

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/nao1215/markdown"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/beetlebugorg/huek250/pkg/huek"
)

// WriteMarkdown writes a summary of a run: run metadata and, per output
// column, the mean, minimum and maximum over all catchments.
func WriteMarkdown(w io.Writer, run Run, table *huek.Table) error {
	md := markdown.NewMarkdown(w)

	md.H1("HÜK250 Hydrogeology Attributes")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run", "`" + run.ID + "`"},
			{"Started", run.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Vocabulary", run.VocabularyVersion},
			{"Base map", run.BasePath},
			{"Catchments", run.CatchmentsPath},
			{"Rows", strconv.Itoa(table.Len())},
			{"Excluded", strconv.Itoa(len(table.Excluded))},
		},
	})
	md.PlainText("")

	writeColumnSummary(md, table)

	if len(table.Excluded) > 0 {
		md.H2("Excluded Catchments")
		md.PlainText("")
		md.Warningf("%d catchment(s) do not overlap the base map and are missing from the table.", len(table.Excluded))
		md.PlainText("")
		md.BulletList(table.Excluded...)
		md.PlainText("")
	}

	return md.Build()
}

func writeColumnSummary(md *markdown.Markdown, table *huek.Table) {
	md.H2("Columns")
	md.PlainText("")

	if table.Len() == 0 {
		md.PlainText("No catchments.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(table.Columns))
	for _, name := range table.Columns {
		values, _ := table.Column(name)
		rows = append(rows, []string{
			"`" + name + "`",
			formatPercent(stat.Mean(values, nil)),
			formatPercent(floats.Min(values)),
			formatPercent(floats.Max(values)),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Column", "Mean %", "Min %", "Max %"},
		Rows:   rows,
	})
	md.PlainText("")
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// WriteMarkdownFile writes the summary to path.
func WriteMarkdownFile(path string, run Run, table *huek.Table) error {
	f, err := os.Create(path) //nolint:gosec // output path is configured
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteMarkdown(f, run, table); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
