package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"stickercut/pipeline"
	"stickercut/sticker"
	"stickercut/types"
	"stickercut/ui"
	"stickercut/utils"
)

type StickerCmd struct {
	File   string `arg:"" help:"Image or clip to turn into a sticker" type:"existingfile"`
	Output string `arg:"" optional:"" help:"Destination sticker path (default: <source>_sticker.webm)" type:"path"`

	Workers   int    `help:"Number of parallel workers" default:"0"`
	ServerURL string `name:"server-url" env:"STICKERCUT_REMBG_URL" help:"Base URL of a running rembg server (uses the rembg binary when unset)"`
	Model     string `help:"rembg model name (u2net, isnet-anime, ...)"`

	Scaling        string  `help:"Sticker scaling mode" default:"preserve-ratio"`
	Loop           bool    `help:"Loop the sticker animation"`
	BestQuality    bool    `name:"best-quality" help:"Favor quality over encoding speed"`
	Multithreading bool    `help:"Let the encoder use multiple threads"`
	Lossless       bool    `help:"Lossless encoding"`
	GuessValue     string  `name:"guess-value" help:"Value the encoder tunes to fit the size limit (bitrate or crf)" default:"bitrate"`
	Iterations     int     `help:"Encoder guessing iterations"`
	GuessMin       float64 `name:"guess-min" help:"Lower bound for the guessed value"`
	GuessMax       float64 `name:"guess-max" help:"Upper bound for the guessed value"`
	Length         float64 `help:"Clip length limit in seconds"`
	Framerate      float64 `help:"Output frame rate override"`
	Bitrate        int     `help:"Target bitrate override"`
	CRF            int     `help:"Constant rate factor override"`
}

func (cmd *StickerCmd) Run(appCtx *types.AppContext) error {
	if err := utils.ValidatePipelineDependencies(cmd.ServerURL != ""); err != nil {
		return err
	}
	for _, tool := range utils.StickerTools() {
		if !tool.Available() {
			return fmt.Errorf("%s not found in PATH. %s", tool.Name, utils.InstallInstructions(tool.Name))
		}
	}

	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("stickercut %s", appCtx.VersionString())))
	fmt.Println(ui.ProcessingStyle.Render("Creating sticker from " + cmd.File))

	log := consoleLogger(appCtx.IsVerbose())
	ctx := context.Background()

	ws, err := pipeline.NewWorkspace("")
	if err != nil {
		return err
	}
	defer func() { _ = ws.Cleanup() }()

	remove := &RemoveCmd{ServerURL: cmd.ServerURL, Model: cmd.Model}
	runner := pipeline.NewExecRunner(log)

	p := pipeline.New(runner, remove.remover(), log)
	p.Workers = cmd.Workers

	result, err := p.RemoveBackground(ctx, cmd.File, ws.Root)
	if err != nil {
		return err
	}

	destination := cmd.Output
	if destination == "" {
		ext := filepath.Ext(cmd.File)
		destination = strings.TrimSuffix(cmd.File, ext) + "_sticker.webm"
	}

	if err := sticker.Convert(ctx, runner, result.Processed, destination, cmd.options(), log); err != nil {
		return err
	}

	fmt.Printf("%s\n", ui.SuccessStyle.Render("✅ "+destination))
	return nil
}

func (cmd *StickerCmd) options() sticker.Options {
	return sticker.Options{
		Scaling:        cmd.Scaling,
		Loop:           cmd.Loop,
		BestQuality:    cmd.BestQuality,
		Multithreading: cmd.Multithreading,
		Lossless:       cmd.Lossless,
		GuessValue:     cmd.GuessValue,
		Iterations:     cmd.Iterations,
		GuessMin:       cmd.GuessMin,
		GuessMax:       cmd.GuessMax,
		Length:         cmd.Length,
		Framerate:      cmd.Framerate,
		Bitrate:        cmd.Bitrate,
		CRF:            cmd.CRF,
	}
}
