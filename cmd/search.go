package cmd

import (
	"encoding/json"
	"errors"
	"strings"

	"event-finder/controller"
	"event-finder/finder"

	"github.com/spf13/cobra"
)

var (
	searchServerURL string
	searchFilters   filterFlags
	searchJSON      bool
)

func newSearchCommand() *cobra.Command {
	searchCmd := &cobra.Command{
		Use:   "search <city>",
		Short: "Search events in a city and print them",
		Long: `Search events in a city, apply the filters and print the results.

Without --server the search runs in-process with the configured SerpApi key.

Examples:
  event-finder search Austin
  event-finder search "New York" --date-range this_week --category virtual --sort date
  event-finder search Austin --server http://localhost:3000 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "))
		},
	}

	searchCmd.Flags().StringVar(&searchServerURL, "server", "", "event finder server base URL (default: search in-process)")
	addFilterFlags(searchCmd, &searchFilters)
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print the displayed events as JSON")
	return searchCmd
}

func addFilterFlags(cmd *cobra.Command, f *filterFlags) {
	cmd.Flags().StringVar(&f.dateRange, "date-range", "all", "all, today, this_week or this_month")
	cmd.Flags().StringVar(&f.category, "category", "all", "all, virtual or in_person")
	cmd.Flags().StringVar(&f.searchText, "q", "", "only events whose title or description contains this text")
	cmd.Flags().StringVar(&f.sortKey, "sort", "relevance", "relevance, date or title")
}

func runSearch(cmd *cobra.Command, city string) error {
	filter, err := searchFilters.parse()
	if err != nil {
		return err
	}

	s, err := openSession(cmd, searchServerURL)
	if err != nil {
		return err
	}
	defer s.Close()

	search := s.newController()
	if err := search.Search(cmd.Context(), city); err != nil {
		if msg := search.Snapshot().Message; msg != "" {
			return errors.New(msg)
		}
		return err
	}
	if search.Snapshot().Total > 0 {
		if err := search.SetFilter(filter); err != nil {
			return err
		}
	}

	snapshot := search.Snapshot()
	if searchJSON {
		return writeSnapshotJSON(cmd, snapshot)
	}
	printSnapshot(cmd.OutOrStdout(), snapshot)
	return nil
}

func writeSnapshotJSON(cmd *cobra.Command, snapshot controller.Snapshot) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		City   string                `json:"city"`
		Total  int                   `json:"total"`
		Filter finder.FilterState    `json:"filter"`
		Events []finder.DisplayEvent `json:"events"`
	}{
		City:   snapshot.City,
		Total:  snapshot.Total,
		Filter: snapshot.Filter,
		Events: snapshot.Events,
	})
}
