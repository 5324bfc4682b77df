package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newEntriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Record management commands",
	}

	cmd.AddCommand(newEntriesRecentCmd())
	cmd.AddCommand(newEntriesSubmitCmd())

	return cmd
}

func newEntriesRecentCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recent records, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/entries"
			if limit > 0 {
				path = fmt.Sprintf("%s?limit=%d", path, limit)
			}

			var result EntryList

			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of records (default: server default)")

	return cmd
}

func newEntriesSubmitCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "submit <name=time>...",
		Short: "Submit a day's record",
		Long: `Submit a day's record as name=time pairs, for example:

  cwtimes entries submit --date 2025-03-01 Merrick=3.45 Moi=4.5

Without --date the record is filed under today's date.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			times := make(map[string]string, len(args))
			for _, arg := range args {
				name, value, ok := strings.Cut(arg, "=")
				if !ok || name == "" {
					return fmt.Errorf("expected name=time, got %q", arg)
				}
				times[name] = value
			}

			if date == "" {
				date = time.Now().Format("2006-01-02")
			}

			req := map[string]any{
				"date":  date,
				"times": times,
			}

			var result Entry

			if err := client.Post("/api/v1/entries", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Record date as YYYY-MM-DD (default: today)")

	return cmd
}
