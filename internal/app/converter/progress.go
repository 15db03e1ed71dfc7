package converter

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"audio-minutes/internal/app/metrics"
)

// Stages in the order the pipeline runs them
var Stages = []string{metrics.StageConvert, metrics.StageUpload, metrics.StageSummarize}

type ProgressConfig struct {
	Enabled bool
	Writer  io.Writer
}

type ProgressManager struct {
	container *mpb.Progress
	enabled   bool
	mu        sync.Mutex
}

type ProgressBar struct {
	bar     *mpb.Bar
	enabled bool
}

func NewProgressManager(config ProgressConfig) *ProgressManager {
	if !config.Enabled {
		return &ProgressManager{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
		mpb.WithWaitGroup(&sync.WaitGroup{}),
	)

	return &ProgressManager{
		container: container,
		enabled:   true,
	}
}

// StageProgress renders the pipeline stages of one file as a bar
type StageProgress struct {
	bar     *ProgressBar
	mu      sync.Mutex
	current string
}

// NewStageProgress adds a bar with one step per pipeline stage
func (pm *ProgressManager) NewStageProgress(description string) *StageProgress {
	sp := &StageProgress{}
	if !pm.enabled || pm.container == nil {
		sp.bar = &ProgressBar{enabled: false}
		return sp
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	bar := pm.container.AddBar(int64(len(Stages)),
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.Any(func(decor.Statistics) string { return sp.stage() }, decor.WCSyncSpaceR),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.Elapsed(decor.ET_STYLE_GO, decor.WCSyncWidth), " ✓ "),
		),
	)
	sp.bar = &ProgressBar{bar: bar, enabled: true}
	return sp
}

// Hook returns the StageHook that advances the bar
func (sp *StageProgress) Hook() StageHook {
	return func(stage string) {
		sp.mu.Lock()
		sp.current = stage
		sp.mu.Unlock()

		_, idx, found := lo.FindIndexOf(Stages, func(s string) bool { return s == stage })
		if found {
			sp.bar.SetCurrent(int64(idx))
		}
	}
}

// Finish completes the bar on success and aborts it otherwise
func (sp *StageProgress) Finish(success bool) {
	if success {
		sp.bar.Complete()
		return
	}
	sp.bar.Abort()
}

func (sp *StageProgress) stage() string {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.current
}

func (pb *ProgressBar) SetCurrent(n int64) {
	if pb.enabled && pb.bar != nil {
		pb.bar.SetCurrent(n)
	}
}

// Complete fills the bar; a bar with a positive total completes once
// current reaches it.
func (pb *ProgressBar) Complete() {
	if pb.enabled && pb.bar != nil {
		pb.bar.SetCurrent(int64(len(Stages)))
	}
}

func (pb *ProgressBar) Abort() {
	if pb.enabled && pb.bar != nil {
		pb.bar.Abort(false)
	}
}

func (pm *ProgressManager) Wait() {
	if pm.enabled && pm.container != nil {
		pm.container.Wait()
	}
}

func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

func ShouldShowProgress(forced bool) bool {
	if forced {
		return true
	}

	return IsTTY(os.Stderr) || IsTTY(os.Stdout)
}
