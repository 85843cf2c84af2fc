package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lealre/reelstate/internal/emitter"
	"github.com/lealre/reelstate/internal/logx"
	"github.com/lealre/reelstate/internal/services/progress"
	"github.com/lealre/reelstate/internal/supervisor"
	"github.com/spf13/cobra"
)

// newWatchCmd plays a title against a running server: it reports the
// position every interval and once more on Ctrl-C.
func newWatchCmd() *cobra.Command {
	var (
		server    string
		token     string
		mediaType string
		mediaId   int64
		title     string
		poster    string
		season    int
		episode   int
		start     float64
		interval  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Emit playback progress for a title until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				token = os.Getenv("REELSTATE_TOKEN")
			}
			if token == "" {
				return errors.New("--token or REELSTATE_TOKEN is required")
			}

			req := progress.SaveProgressRequest{MediaId: mediaId, Title: title, MediaType: mediaType}
			if poster != "" {
				req.Poster = &poster
			}
			if cmd.Flags().Changed("season") {
				req.Season = &season
			}
			if cmd.Flags().Changed("episode") {
				req.Episode = &episode
			}

			clock := emitter.NewPlaybackClock(req, start)
			saver := emitter.NewHTTPSaver(server, token, nil, emitter.DefaultBreakerConfig())

			sup := supervisor.New("reelctl-watch", supervisor.DefaultConfig())
			sup.Add(emitter.New(clock, saver, interval))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := logx.Logger()
			logger.Info().Int64("media_id", mediaId).Dur("interval", interval).Msg("watching")

			if err := sup.Serve(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&server, "server", "http://localhost:8080", "server base URL")
	flags.StringVar(&token, "token", "", "bearer token (default $REELSTATE_TOKEN)")
	flags.StringVar(&mediaType, "media-type", "movie", "movie or series")
	flags.Int64Var(&mediaId, "media-id", 0, "catalog id of the title")
	flags.StringVar(&title, "title", "", "title shown in continue-watching")
	flags.StringVar(&poster, "poster", "", "poster path")
	flags.IntVar(&season, "season", 0, "season number (series)")
	flags.IntVar(&episode, "episode", 0, "episode number (series)")
	flags.Float64Var(&start, "start", 0, "start position in seconds")
	flags.DurationVar(&interval, "interval", emitter.DefaultInterval, "save interval")
	cmd.MarkFlagRequired("media-id")
	cmd.MarkFlagRequired("title")
	return cmd
}
