package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pedagogy-studio/internal/domain"
	"github.com/pedagogy-studio/internal/form"
	"github.com/pedagogy-studio/internal/library"
	"github.com/pedagogy-studio/internal/payload"
	"github.com/pedagogy-studio/internal/render"
)

func newGenerateCmd(c *cli) *cobra.Command {
	var (
		topic  string
		params map[string]string
		save   bool
		notes  string
	)

	cmd := &cobra.Command{
		Use:   "generate <pedagogy>",
		Short: "Generate a lesson and render it",
		Long: `Generate a lesson for a topic with the given pedagogy and render it.

Parameters left unset take the pedagogy's defaults.

Examples:
  pedagogy generate blooms_taxonomy --topic "the water cycle"
  pedagogy generate gamification --topic fractions --param duration="1 week" --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trimmed, err := form.ValidateTopic(topic)
			if err != nil {
				return errors.New(domain.UserMessage(err))
			}
			id := args[0]
			merged := form.Merge(id, params)

			c.backend()
			resp, err := c.generator.Generate(cmd.Context(), &domain.GenerateRequest{
				Topic:    trimmed,
				Pedagogy: id,
				Params:   merged,
			})
			if err != nil {
				c.log().WithError(err).Debug("Generation failed")
				return errors.New(domain.UserMessage(err))
			}

			if err := c.printView(cmd.OutOrStdout(), render.Render(id, resp.Content)); err != nil {
				return err
			}
			if !save {
				return nil
			}

			store, err := c.library()
			if err != nil {
				return err
			}
			lesson := &library.Lesson{Topic: trimmed, Pedagogy: id, Params: merged, Content: resp.Content, Notes: notes}
			if err := store.Save(cmd.Context(), lesson); err != nil {
				return fmt.Errorf("failed to save lesson: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved as lesson %s\n", lesson.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Lesson topic (required)")
	cmd.Flags().StringToStringVarP(&params, "param", "p", nil, "Parameter as name=value, repeatable")
	cmd.Flags().BoolVar(&save, "save", false, "Save the lesson to the library")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes stored with a saved lesson")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}

func newRenderCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "render <pedagogy> [file]",
		Short: "Render a generated payload from a file or stdin",
		Long: `Render a generated content payload the way the studio displays it.

The payload is read from the file, or from stdin when the file is
omitted or "-".

Examples:
  pedagogy render inquiry_based lesson.json
  curl -s $BACKEND/generate -d @req.json | jq .content | pedagogy render inquiry_based -`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 2 && args[1] != "-" {
				f, err := os.Open(args[1])
				if err != nil {
					return fmt.Errorf("failed to read file %s: %w", args[1], err)
				}
				defer f.Close()
				r = f
			}

			content, err := payload.Decode(r)
			if err != nil {
				return fmt.Errorf("failed to parse content: %w", err)
			}
			return c.printView(cmd.OutOrStdout(), render.Render(args[0], content))
		},
	}
}
