package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"event-finder/controller"
	"event-finder/finder"

	"github.com/spf13/cobra"
)

var shellServerURL string

const shellHelp = `Commands:
  search <city>        fetch events for a city (resets filters, keeps sort)
  date <range>         all, today, this_week, this_month
  type <category>      all, virtual, in_person
  find [text]          filter by title or description, empty clears
  sort <key>           relevance, date, title
  show                 print the current results
  help                 print this help
  quit                 leave the shell`

func newShellCommand() *cobra.Command {
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Search and filter events interactively",
		Long: `Start an interactive session. Events are fetched once per city; the date,
type, text and sort commands re-filter the cached list without another fetch.

` + shellHelp,
		Args: cobra.NoArgs,
		RunE: runShell,
	}
	shellCmd.Flags().StringVar(&shellServerURL, "server", "", "event finder server base URL (default: search in-process)")
	return shellCmd
}

func runShell(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, shellServerURL)
	if err != nil {
		return err
	}
	defer s.Close()

	sh := &shell{search: s.newController(), out: cmd.OutOrStdout()}
	scanner := bufio.NewScanner(cmd.InOrStdin())
	fmt.Fprintln(sh.out, `Type "help" for commands.`)
	for {
		fmt.Fprint(sh.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(sh.out)
			return scanner.Err()
		}
		if err := cmd.Context().Err(); err != nil {
			return nil
		}
		if quit := sh.exec(cmd, scanner.Text()); quit {
			return nil
		}
	}
}

type shell struct {
	search *controller.SearchController
	out    io.Writer
}

// exec runs one command line and reports whether the shell should exit.
func (sh *shell) exec(cmd *cobra.Command, line string) bool {
	verb, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	var err error
	isSearch := false
	switch strings.ToLower(verb) {
	case "":
		return false
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(sh.out, shellHelp)
		return false
	case "show":
	case "search", "city":
		if sh.search.Busy() {
			fmt.Fprintln(sh.out, "A search is already running.")
			return false
		}
		isSearch = true
		err = sh.search.Search(cmd.Context(), arg)
	case "date":
		err = sh.search.SetDateRange(finder.DateRange(option(arg)))
	case "type", "category":
		err = sh.search.SetCategory(finder.ParseCategory(arg))
	case "find", "q":
		err = sh.search.SetSearchText(arg)
	case "sort":
		err = sh.search.SetSortKey(finder.SortKey(option(arg)))
	default:
		fmt.Fprintf(sh.out, "Unknown command %q. Type \"help\" for commands.\n", verb)
		return false
	}

	snapshot := sh.search.Snapshot()
	var validationErr *controller.ValidationError
	switch {
	case err == nil, errors.As(err, &validationErr), isSearch && snapshot.State == controller.StateError:
		printSnapshot(sh.out, snapshot)
	default:
		fmt.Fprintln(sh.out, err)
	}
	return false
}

func option(arg string) string {
	return strings.ReplaceAll(strings.ToLower(arg), "-", "_")
}
