package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/docfind"
)

func searchCMD() *cobra.Command {
	var (
		corpusPath string
		page       int
		pageSize   int
		sort       string
		tags       []string
		asJSON     bool
	)
	var search = &cobra.Command{
		Use:   "search [query]",
		Short: "Run a query against the corpus and print one page of results",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCorpus(corpusPath)
			if err != nil {
				return err
			}
			var query string
			if len(args) > 0 {
				query = args[0]
			}

			b := c.Search(query).Page(page).PageSize(pageSize).Sort(docfind.SortOrder(sort))
			for _, t := range tags {
				b = b.Tag(t)
			}
			res, err := b.Do(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printPage(cmd.OutOrStdout(), res)
		},
	}
	search.Flags().StringVar(&corpusPath, "corpus", "", "YAML corpus file")
	search.Flags().IntVar(&page, "page", 1, "page number (clamped into range)")
	search.Flags().IntVar(&pageSize, "page-size", 5, "results per page")
	search.Flags().StringVar(&sort, "sort", string(docfind.SortRelevance), "relevance, date or title")
	search.Flags().StringSliceVar(&tags, "tag", nil, "required tag (repeatable)")
	search.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	_ = search.MarkFlagRequired("corpus")
	return search
}

func printPage(w io.Writer, res docfind.PageResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSCORE\tTITLE\tMATCHES")
	for _, m := range res.Items {
		fmt.Fprintf(tw, "%s\t%.2f\t%s\t%s\n", m.Document.ID, m.Score, m.Document.Title, spanTexts(m.Spans))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	footer := fmt.Sprintf("page %d/%d, %d matches", res.Page, res.TotalPages, res.TotalItems)
	if res.Clamped {
		footer += fmt.Sprintf(" (requested page %d)", res.RequestedPage)
	}
	_, err := fmt.Fprintln(w, footer)
	return err
}

func spanTexts(spans []docfind.Span) string {
	parts := make([]string, len(spans))
	for i, s := range spans {
		parts[i] = s.Field + ":" + s.Text
	}
	return strings.Join(parts, ", ")
}

func suggestCMD() *cobra.Command {
	var (
		corpusPath string
		limit      int
	)
	var suggest = &cobra.Command{
		Use:   "suggest <prefix>",
		Short: "Print titles and tags containing the text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCorpus(corpusPath)
			if err != nil {
				return err
			}
			for _, s := range c.Suggest(args[0], limit) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.Kind, s.Text)
			}
			return nil
		},
	}
	suggest.Flags().StringVar(&corpusPath, "corpus", "", "YAML corpus file")
	suggest.Flags().IntVar(&limit, "limit", 10, "maximum suggestions")
	_ = suggest.MarkFlagRequired("corpus")
	return suggest
}
