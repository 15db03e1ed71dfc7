package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"audio-minutes/cmd/minutes/cmd/common"
	"audio-minutes/cmd/minutes/cmd/serve"
	"audio-minutes/cmd/minutes/cmd/summarize"
	"audio-minutes/cmd/minutes/cmd/version"
	"audio-minutes/cmd/minutes/cmd/watch"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minutes",
	Short: "Transcribe and summarize meeting recordings",
	Long: `Transcribe and summarize meeting recordings with a generative AI model.
- The audio is re-encoded to a small mono MP3 with ffmpeg
- The MP3 is uploaded and transcribed, then the transcript is summarized
- Temporary files are deleted as soon as a request finishes`,
	TraverseChildren: true,
	SilenceUsage:     true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(summarize.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(watch.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&common.Opts.Verbose, "verbose", "V", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&common.Opts.ConfigPath, "config", "c", "",
		"settings file (default $MINUTES_CONFIG or config/config.yaml)")
}
