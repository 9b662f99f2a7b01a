package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"event-finder/controller"
	"event-finder/util"

	"github.com/spf13/cobra"
)

var (
	chartServerURL string
	chartOutput    string
	chartFilters   filterFlags
)

func newChartCommand() *cobra.Command {
	chartCmd := &cobra.Command{
		Use:   "chart <city>",
		Short: "Render a bar chart of events per day",
		Long: `Fetch events for a city, apply the filters and write an HTML bar chart of
events per day. Events without a readable date are counted under "Date TBA".

Example:
  event-finder chart Austin --date-range this_month --out austin.html`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(cmd, strings.Join(args, " "))
		},
	}

	chartCmd.Flags().StringVar(&chartServerURL, "server", "", "event finder server base URL (default: search in-process)")
	chartCmd.Flags().StringVarP(&chartOutput, "out", "o", "events.html", "output HTML file")
	addFilterFlags(chartCmd, &chartFilters)
	return chartCmd
}

func runChart(cmd *cobra.Command, city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errors.New(controller.MessageBlankCity)
	}
	filter, err := chartFilters.parse()
	if err != nil {
		return err
	}

	s, err := openSession(cmd, chartServerURL)
	if err != nil {
		return err
	}
	defer s.Close()

	events, err := s.fetcher.FetchEvents(cmd.Context(), city)
	if err != nil {
		return err
	}
	dates := s.engine.Dates()
	events = s.engine.Filter(events, filter, dates.Now())

	f, err := os.Create(chartOutput)
	if err != nil {
		return fmt.Errorf("create %s: %w", chartOutput, err)
	}
	if err := util.PlotEventsPerDay(f, city, events, dates); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d events to %s\n", len(events), chartOutput)
	return nil
}
