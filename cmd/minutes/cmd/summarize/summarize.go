package summarize

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"audio-minutes/cmd/minutes/cmd/common"
	"audio-minutes/internal/app/audio"
	"audio-minutes/internal/app/converter"
	apperrors "audio-minutes/internal/app/errors"
	"audio-minutes/internal/app/logging"
	"audio-minutes/internal/app/model"
	"audio-minutes/internal/app/util/files"
	"audio-minutes/internal/config"
)

var forceProgress bool

func init() {
	Cmd.Flags().BoolVarP(&forceProgress, "progress", "p", false, "show the progress bar even when not attached to a terminal")
}

// Cmd represents the summarize command
var Cmd = &cobra.Command{
	Use:   "summarize [audio file]",
	Short: "Transcribe and summarize one audio file",
	Long: `Transcribe and summarize one audio file

- Prompts for the file path when none is given
- Prints the summary and saves it next to the audio as a .txt file
- Supported formats: mp3, wav, m4a, ogg, flac, aac, wma, webm`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := common.LoadApp(cmd.Context(), func(cfg *config.Config) (*zap.Logger, error) {
			return logging.NewConsoleLogger(common.Opts.Verbose), nil
		})
		if err != nil {
			return err
		}
		defer a.Logger.Sync()

		path := ""
		if len(args) > 0 {
			path = args[0]
		}

		progress := converter.NewProgressManager(converter.ProgressConfig{
			Enabled: converter.ShouldShowProgress(forceProgress),
			Writer:  cmd.ErrOrStderr(),
		})
		run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), path, a.Converter, progress)
		return nil
	},
}

// pipeline is the part of converter.Converter this command uses
type pipeline interface {
	ProcessAndSave(ctx context.Context, inputPath string, hook converter.StageHook) (*model.Minutes, string, error)
}

const rule = "======================================================================"

// run drives one interactive summary. Failures are reported on out and do
// not change the exit status.
func run(ctx context.Context, in io.Reader, out io.Writer, path string, p pipeline, progress *converter.ProgressManager) {
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "AI meeting minutes")
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "Supported formats: %s\n", strings.Join(audio.SupportedFormats, ", "))
	fmt.Fprintln(out, "Note: free API keys have a daily request limit.")
	fmt.Fprintln(out, rule)

	if path == "" {
		path = prompt(in, out)
	}

	if path == "" || !files.Exists(path) {
		fmt.Fprintf(out, "\n❌ Error: file not found - %s\n", path)
		return
	}

	fmt.Fprintf(out, "\n📁 Source file size: %.2fMB\n", files.SizeMB(path))
	fmt.Fprintln(out, "\n⏳ Processing...")

	stages := progress.NewStageProgress(filepath.Base(path))
	result, saved, err := p.ProcessAndSave(ctx, path, stages.Hook())
	stages.Finish(err == nil)
	progress.Wait()

	if err != nil && result == nil {
		printFailure(out, err)
		return
	}

	fmt.Fprintln(out, "\n"+rule)
	fmt.Fprintln(out, "📝 Meeting summary")
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, result.Summary)
	fmt.Fprintln(out, rule)

	if err != nil {
		fmt.Fprintf(out, "\n❌ Error: could not save the summary: %v\n", err)
		return
	}
	fmt.Fprintf(out, "\n✅ Summary saved to: %s\n", saved)
	fmt.Fprintln(out, "✅ Done. Temporary files have been deleted.")
}

func prompt(in io.Reader, out io.Writer) string {
	fmt.Fprint(out, "\nEnter the path of the audio file: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

func printFailure(out io.Writer, err error) {
	if apperrors.IsQuotaExceeded(err) {
		fmt.Fprintln(out, "\n❌ The daily usage quota has been exceeded. Please try again tomorrow.")
		return
	}

	fmt.Fprintf(out, "\n❌ Error: %v\n", err)
	fmt.Fprintln(out, "\n💡 If the problem persists, check that:")
	fmt.Fprintln(out, "   1. GOOGLE_API_KEY (or OPENAI_API_KEY) is set in .env or the environment")
	fmt.Fprintln(out, "   2. ffmpeg is installed and on PATH")
	fmt.Fprintln(out, "   3. the daily request limit has not been reached")
}
