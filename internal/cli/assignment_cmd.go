package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mecrobet/marga/internal/cli/formatter"
	"github.com/mecrobet/marga/internal/media"
)

var (
	errNoAssignmentYet = errors.New(`no assignment yet: run "marga assignment new"`)
	errNoFeedbackYet   = errors.New(`no feedback yet: run "marga grade --image <photo>"`)
)

func newAssignmentCmd(app *App) *cobra.Command {
	newCmd := newAssignmentNewCmd(app)
	cmd := &cobra.Command{
		Use:   "assignment",
		Short: "Generate or show the assignment for the current topic",
		Long:  "Without a subcommand, generates a new assignment (same as \"assignment new\").",
		RunE:  newCmd.RunE,
	}
	cmd.AddCommand(newCmd, newAssignmentShowCmd(app))
	return cmd
}

func newAssignmentNewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Generate a new assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := app.currentSession(ctx)
			if err != nil {
				return err
			}

			stop := app.spinner(cmd, "Writing assignment...")
			text, err := app.Study.GenerateAssignment(ctx, sess.ID)
			stop()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDocument("Assignment: "+sess.Topic, text))
			return nil
		},
	}
}

func newAssignmentShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the last generated assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.currentSession(cmd.Context())
			if err != nil {
				return err
			}
			if sess.Assignment == "" {
				return errNoAssignmentYet
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDocument("Assignment: "+sess.Topic, sess.Assignment))
			return nil
		},
	}
}

func newGradeCmd(app *App) *cobra.Command {
	var imagePath string

	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Grade a photo of your handwritten answer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := app.currentSession(ctx)
			if err != nil {
				return err
			}

			f, err := os.Open(imagePath)
			if err != nil {
				return fmt.Errorf("%w: %v", media.ErrEncoding, err)
			}
			defer f.Close()

			stop := app.spinner(cmd, "Grading...")
			feedback, err := app.Study.Grade(ctx, sess.ID, media.Upload{Name: filepath.Base(imagePath), Reader: f})
			stop()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDocument("Feedback: "+sess.Topic, feedback))
			return nil
		},
	}

	cmd.Flags().StringVar(&imagePath, "image", "", "Photo of the handwritten answer")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}

func newFeedbackCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Work with grading feedback",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the last grading feedback",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.currentSession(cmd.Context())
			if err != nil {
				return err
			}
			if sess.Feedback == "" {
				return errNoFeedbackYet
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDocument("Feedback: "+sess.Topic, sess.Feedback))
			return nil
		},
	})
	return cmd
}
