package watch

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"audio-minutes/cmd/minutes/cmd/common"
	"audio-minutes/internal/app/logging"
	"audio-minutes/internal/app/watcher"
	"audio-minutes/internal/config"
)

var (
	dir    string
	settle time.Duration
)

func init() {
	Cmd.Flags().StringVarP(&dir, "dir", "d", "", "directory to watch for audio files")
	Cmd.Flags().DurationVar(&settle, "settle", watcher.DefaultSettle, "how long a file must stay unchanged before it is processed")

	Cmd.MarkFlagRequired("dir")
}

// Cmd represents the watch command
var Cmd = &cobra.Command{
	Use:   "watch",
	Short: "Summarize audio files as they appear in a directory",
	Long: `Summarize audio files as they appear in a directory

- Files already in the directory without a .txt summary are processed first
- New or changed audio files are processed one at a time
- Stops at the first daily quota error`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := common.LoadApp(cmd.Context(), func(cfg *config.Config) (*zap.Logger, error) {
			return logging.NewConsoleLogger(common.Opts.Verbose), nil
		})
		if err != nil {
			return err
		}
		defer a.Logger.Sync()

		w, err := watcher.New(dir, a.Converter, a.Logger.Named("watcher"), settle)
		if err != nil {
			return err
		}
		defer w.Stop()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := w.Start(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}
