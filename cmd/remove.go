package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/schollz/progressbar/v3"

	"stickercut/pipeline"
	"stickercut/rembg"
	"stickercut/types"
	"stickercut/ui"
	"stickercut/utils"
)

type RemoveCmd struct {
	Files     []string `arg:"" name:"files" help:"Images or video clips to process" type:"existingfile"`
	Output    string   `help:"Directory for processed files (default: next to each source)" type:"path"`
	Workers   int      `help:"Number of parallel workers" default:"0"`
	ServerURL string   `name:"server-url" env:"STICKERCUT_REMBG_URL" help:"Base URL of a running rembg server (uses the rembg binary when unset)"`
	Model     string   `help:"rembg model name (u2net, isnet-anime, ...)"`
	Keep      bool     `name:"keep-workspace" help:"Keep the job workspace instead of deleting it"`
	NoTUI     bool     `name:"no-tui" help:"Disable the interactive batch view"`
}

func (cmd *RemoveCmd) Run(appCtx *types.AppContext) error {
	if err := utils.ValidatePipelineDependencies(cmd.ServerURL != ""); err != nil {
		return err
	}

	// Set default worker count based on drive type
	workers := cmd.Workers
	if workers <= 0 {
		hasNetworkFiles := false
		for _, file := range cmd.Files {
			if utils.IsNetworkDrive(file) {
				hasNetworkFiles = true
				break
			}
		}

		if hasNetworkFiles {
			workers = 1
			fmt.Printf("⚠️  Network drive detected, using 1 worker for optimal performance\n")
		} else {
			workers = runtime.NumCPU()
		}
	}

	remover := cmd.remover()

	// Use the TUI for multi-file batches
	if len(cmd.Files) > 1 && !cmd.NoTUI {
		return cmd.runWithTUI(remover, workers, appCtx.VersionString())
	}

	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("stickercut %s", appCtx.VersionString())))
	fmt.Println(ui.ProcessingStyle.Render(fmt.Sprintf("Processing %d files:", len(cmd.Files))))

	log := consoleLogger(appCtx.IsVerbose())

	var failed int
	for _, source := range cmd.Files {
		var bar *progressbar.ProgressBar
		progress := func(completed, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetDescription("removing background"),
					progressbar.OptionClearOnFinish(),
				)
			}
			_ = bar.Set(completed)
		}

		final, err := cmd.processOne(context.Background(), source, remover, workers, log, progress)
		if err != nil {
			fmt.Printf("%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ %s: %v", source, err)))
			failed++
			continue
		}
		fmt.Printf("%s\n", ui.SuccessStyle.Render(fmt.Sprintf("✅ %s", final)))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(cmd.Files))
	}
	fmt.Printf("\n%s\n", ui.SuccessStyle.Render("✅ Processing complete."))
	return nil
}

// runWithTUI distributes the batch over a worker pool and renders progress
// through the bubbletea model. Each job keeps a single frame worker since
// parallelism already comes from concurrent files.
func (cmd *RemoveCmd) runWithTUI(remover pipeline.Remover, workers int, version string) error {
	if workers > len(cmd.Files) {
		workers = len(cmd.Files)
	}

	program := tea.NewProgram(ui.NewBatchModel(version, len(cmd.Files), workers), tea.WithAltScreen())

	go func() {
		jobs := make(chan string, len(cmd.Files))
		for _, source := range cmd.Files {
			jobs <- source
		}
		close(jobs)

		var wg sync.WaitGroup
		var completed atomic.Int64

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(workerID int) {
				defer wg.Done()
				for source := range jobs {
					program.Send(ui.JobStartedMsg{WorkerID: workerID, Source: source})

					progress := func(done, total int) {
						program.Send(ui.FrameProgressMsg{WorkerID: workerID, Completed: done, Total: total})
					}
					final, err := cmd.processOne(context.Background(), source, remover, 1, nil, progress)

					program.Send(ui.JobCompletedMsg{WorkerID: workerID, Source: source, Processed: final, Err: err})
					program.Send(ui.BatchProgressMsg{Completed: int(completed.Add(1)), Total: len(cmd.Files)})
				}
			}(i)
		}

		wg.Wait()
		program.Send(ui.BatchDoneMsg{})
	}()

	_, err := program.Run()
	return err
}

// processOne runs the full pipeline for a single source inside a fresh
// workspace and moves the result to its final destination. The workspace is
// released on every exit path unless --keep-workspace was given.
func (cmd *RemoveCmd) processOne(
	ctx context.Context,
	source string,
	remover pipeline.Remover,
	frameWorkers int,
	log pipeline.Logger,
	progress func(completed, total int),
) (string, error) {
	ws, err := pipeline.NewWorkspace("")
	if err != nil {
		return "", err
	}
	if cmd.Keep {
		defer fmt.Printf("%s\n", ui.InfoStyle.Render("workspace kept: "+ws.Root))
	} else {
		defer func() { _ = ws.Cleanup() }()
	}

	p := pipeline.New(pipeline.NewExecRunner(log), remover, log)
	p.Workers = frameWorkers
	p.Progress = progress

	result, err := p.RemoveBackground(ctx, source, ws.Root)
	if err != nil {
		return "", err
	}

	final, err := cmd.destination(result)
	if err != nil {
		return "", err
	}
	if err := utils.MoveFile(result.Processed, final); err != nil {
		return "", fmt.Errorf("move result out of workspace: %w", err)
	}
	return final, nil
}

// destination picks the final path for a processed file: the --output
// directory when given, otherwise next to the source.
func (cmd *RemoveCmd) destination(result *pipeline.Result) (string, error) {
	name := filepath.Base(result.Processed)
	if cmd.Output != "" {
		if err := os.MkdirAll(cmd.Output, 0755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
		return filepath.Join(cmd.Output, name), nil
	}
	return filepath.Join(filepath.Dir(result.Source), name), nil
}

func (cmd *RemoveCmd) remover() pipeline.Remover {
	if cmd.ServerURL != "" {
		return rembg.NewClient(cmd.ServerURL, cmd.Model)
	}
	return rembg.NewCLI(cmd.Model)
}

// consoleLogger renders pipeline log lines to stdout. Without --verbose the
// chatty lines (command echoes, per-frame progress) are suppressed; tool
// diagnostics and warnings still come through.
func consoleLogger(verbose bool) pipeline.Logger {
	return func(line string) {
		if !verbose && (strings.HasPrefix(line, "running:") || strings.HasPrefix(line, "removed background from frame")) {
			return
		}
		fmt.Println(ui.LogStyle.Render(line))
	}
}
