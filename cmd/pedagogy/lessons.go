package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pedagogy-studio/internal/render"
)

type lessonSummary struct {
	ID        string            `json:"id" yaml:"id"`
	Topic     string            `json:"topic" yaml:"topic"`
	Pedagogy  string            `json:"pedagogy" yaml:"pedagogy"`
	Params    map[string]string `json:"params" yaml:"params"`
	Notes     string            `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt time.Time         `json:"created_at" yaml:"created_at"`
}

func newLessonsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lessons",
		Aliases: []string{"lesson"},
		Short:   "Manage saved lessons",
		Long: `Manage lessons saved in the local library.

Examples:
  pedagogy lessons list --limit 10
  pedagogy lessons show 3f1c...
  pedagogy lessons export backup.json
  pedagogy lessons import backup.json`,
	}
	cmd.AddCommand(newLessonsListCmd(c))
	cmd.AddCommand(newLessonsShowCmd(c))
	cmd.AddCommand(newLessonsDeleteCmd(c))
	cmd.AddCommand(newLessonsExportCmd(c))
	cmd.AddCommand(newLessonsImportCmd(c))
	return cmd
}

func newLessonsListCmd(c *cli) *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved lessons, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.library()
			if err != nil {
				return err
			}
			lessons, err := store.List(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}

			summaries := make([]lessonSummary, 0, len(lessons))
			for _, l := range lessons {
				summaries = append(summaries, lessonSummary{
					ID: l.ID, Topic: l.Topic, Pedagogy: l.Pedagogy, Params: l.Params, Notes: l.Notes, CreatedAt: l.CreatedAt,
				})
			}

			out := cmd.OutOrStdout()
			if ok, err := c.emit(out, summaries); ok {
				return err
			}
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No saved lessons.")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPEDAGOGY\tTOPIC\tSAVED")
			for _, s := range summaries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Pedagogy, s.Topic, s.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of lessons to list")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of lessons to skip")
	return cmd
}

func newLessonsShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Render a saved lesson",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.library()
			if err != nil {
				return err
			}
			lesson, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.printView(cmd.OutOrStdout(), render.Render(lesson.Pedagogy, lesson.Content))
		},
	}
}

func newLessonsDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved lesson",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.library()
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted lesson %s\n", args[0])
			return nil
		},
	}
}

func newLessonsExportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export every lesson as JSON to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.library()
			if err != nil {
				return err
			}
			if len(args) == 0 || args[0] == "-" {
				return store.ExportJSON(cmd.Context(), cmd.OutOrStdout())
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", args[0], err)
			}
			if err := store.ExportJSON(cmd.Context(), f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported lessons to %s\n", args[0])
			return nil
		},
	}
}

func newLessonsImportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import lessons from a JSON export",
		Long: `Import lessons from a JSON export. Lessons whose id already exists are
skipped. Reads stdin when the file is omitted or "-".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.library()
			if err != nil {
				return err
			}

			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to read file %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			}

			imported, skipped, err := store.ImportJSON(cmd.Context(), r)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d lessons, skipped %d\n", imported, skipped)
			return nil
		},
	}
}
