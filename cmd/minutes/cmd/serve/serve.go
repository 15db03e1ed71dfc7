package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"audio-minutes/cmd/minutes/cmd/common"
	"audio-minutes/internal/api/server"
	"audio-minutes/internal/app/logging"
	"audio-minutes/internal/config"
)

const shutdownTimeout = 15 * time.Second

var (
	host string
	port int
)

func init() {
	Cmd.Flags().StringVar(&host, "host", "", "listen address (overrides server.host)")
	Cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides server.port)")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP summary service",
	Long: `Run the HTTP summary service

- GET  /           service information
- GET  /health     health check
- POST /summarize  multipart upload (field "file"), returns {summary, original_text}
- GET  /metrics    prometheus metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := common.LoadApp(cmd.Context(), newServerLogger)
		if err != nil {
			return err
		}
		defer a.Logger.Sync()

		srv := server.NewServer(a.Config, a.Converter, a.Provider.Info(), a.Metrics.Handler(), a.Logger.Named("http"))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx, shutdownTimeout)
	},
}

// newServerLogger applies the flag overrides, checks the TLS files and
// builds the rotating file logger.
func newServerLogger(cfg *config.Config) (*zap.Logger, error) {
	if host != "" {
		cfg.Server.Host = host
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if err := cfg.HTTPS.CheckFiles(); err != nil {
		return nil, err
	}
	return logging.NewLogger(cfg.Logging, cfg.Server.Environment != "production")
}
