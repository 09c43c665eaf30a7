package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gndm/ytTranscript/internal/batch"
	"github.com/gndm/ytTranscript/internal/render"
	"github.com/gndm/ytTranscript/internal/transcript"
	"github.com/gndm/ytTranscript/internal/ytdlp"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "fetch <video id or url>",
		Short: "Print the transcript of one video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				cfg.Format = format
			}

			segments, err := transcript.Fetch(cmd.Context(), args[0], cfg.Transcript())
			if err != nil {
				return err
			}
			return render.Write(cmd.OutOrStdout(), cfg.Format, segments)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json, csv, table or srt")
	return cmd
}

func newLangsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "langs <video id or url>",
		Short: "List the caption languages a video offers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			codes, err := transcript.Languages(cmd.Context(), args[0], cfg.Transcript())
			if err != nil {
				return err
			}
			if len(codes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No caption tracks.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.LanguageList(codes))
			return nil
		},
	}
}

func newPlaylistCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "playlist <playlist url>",
		Short: "Print the transcript of every video in a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				cfg.Format = format
			}

			pipeline := batch.NewPipeline(
				ytdlp.NewClient(cfg.YtDlpBinary),
				transcript.Fetch,
				cfg.Transcript(),
				cfg.RequestsPerSecond,
			)
			session := pipeline.Run(cmd.Context(), batch.Request{URL: args[0]})
			return writeSession(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Format, session)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json, csv, table or srt")
	return cmd
}

// writeSession renders each finished item to out and each failure to errOut.
func writeSession(out, errOut io.Writer, format string, session *batch.Session) error {
	if session.Status == batch.StatusError {
		return errors.New(session.Error)
	}

	for _, item := range session.Items {
		title := item.Input
		if item.Title != "" {
			title = item.Title + " (" + item.Input + ")"
		}

		if item.Status != batch.ItemDone {
			fmt.Fprintf(errOut, "== %s: %s\n", title, item.Error)
			continue
		}
		fmt.Fprintf(out, "== %s\n", title)
		if err := render.Write(out, format, item.Segments); err != nil {
			return err
		}
	}

	if session.Progress.Total > 0 && session.Progress.Failed == session.Progress.Total {
		return fmt.Errorf("no transcripts fetched (%d failed)", session.Progress.Failed)
	}
	return nil
}

func newServeCommand(ctx *commandContext) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			return runServer(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port")
	return cmd
}
