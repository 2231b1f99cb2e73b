package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"

	"github.com/beetlebugorg/huek250/internal/config"
	"github.com/beetlebugorg/huek250/pkg/huek"
)

func defaultVocabularyVersion() string {
	return huek.DefaultVocabulary().Version
}

// vocabularyFromFlags loads the vocabulary named by --vocabulary, else the
// one from the configuration file, else the built-in one.
func vocabularyFromFlags(cmd *cobra.Command) (*huek.Vocabulary, error) {
	cfg := config.Default()
	if err := loadConfigFile(cmd, cfg); err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("vocabulary") {
		cfg.VocabularyFile, _ = cmd.Flags().GetString("vocabulary")
	}
	return loadVocabulary(cfg.VocabularyFile)
}

// NewVocabularyCmd creates the vocabulary command.
func NewVocabularyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vocabulary",
		Short: "Print the label to column mapping",
		Long: `Print every attribute field of the vocabulary with its labels and the
output column each label is counted in, as Markdown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vocab, err := vocabularyFromFlags(cmd)
			if err != nil {
				return err
			}
			return writeVocabulary(cmd, vocab)
		},
	}
}

func writeVocabulary(cmd *cobra.Command, vocab *huek.Vocabulary) error {
	md := markdown.NewMarkdown(cmd.OutOrStdout())

	md.H1(fmt.Sprintf("%s vocabulary %s", vocab.Product, vocab.Version))
	md.PlainText("")

	md.H2("Shared categories")
	md.PlainText("")
	shared := make([][]string, 0, 2)
	for _, key := range vocab.Shared.Keys() {
		c := vocab.Shared.Get(key)
		shared = append(shared, []string{string(key), c.Label, "`" + c.Column + "`"})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Category", "Label", "Column"},
		Rows:   shared,
	})
	md.PlainText("")

	for _, a := range vocab.Attributes {
		md.H2(fmt.Sprintf("%s (%s)", a.Name, a.Field))
		md.PlainText("")
		if a.Description != "" {
			md.PlainText(a.Description)
			md.PlainText("")
		}
		rows := make([][]string, len(a.Categories))
		for i, c := range a.Categories {
			rows[i] = []string{c.Label, "`" + c.Column + "`"}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Label", "Column"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	return md.Build()
}

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit <base-map>",
		Short: "List base map labels unknown to the vocabulary",
		Long: `Read a base map and list every label of the six attribute fields that the
vocabulary does not map to a column. Such labels make the consistency
check fail for every catchment that covers them.

Exits with an error if unknown labels are found.`,
		Args: cobra.ExactArgs(1),
		RunE: runAuditCmd,
	}
	cmd.Flags().Int("epsg", 0, "Override the CRS of the base map")
	return cmd
}

func runAuditCmd(cmd *cobra.Command, args []string) error {
	vocab, err := vocabularyFromFlags(cmd)
	if err != nil {
		return err
	}

	opts := huek.DefaultReadOptions()
	epsg, err := cmd.Flags().GetInt("epsg")
	if err != nil {
		return err
	}
	opts.CRSOverride = huek.CRS{EPSG: epsg}

	base, err := huek.NewReader().ReadWithOptions(args[0], opts)
	if err != nil {
		return err
	}

	unknown, err := vocab.Audit(base)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(unknown) == 0 {
		fmt.Fprintf(out, "%s: all labels of %d features are known to vocabulary %s\n",
			args[0], base.FeatureCount(), vocab.Version)
		return nil
	}

	sort.SliceStable(unknown, func(i, j int) bool { return unknown[i].Count > unknown[j].Count })
	md := markdown.NewMarkdown(out)
	rows := make([][]string, len(unknown))
	for i, u := range unknown {
		rows[i] = []string{u.Field, strconv.Quote(u.Label), strconv.Itoa(u.Count)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Field", "Label", "Features"},
		Rows:   rows,
	})
	if err := md.Build(); err != nil {
		return err
	}
	return &huek.UnknownLabelsError{Version: vocab.Version, Labels: unknown}
}
