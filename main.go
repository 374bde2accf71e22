package main

import (
	"github.com/alecthomas/kong"

	"stickercut/cmd"
	"stickercut/types"
)

var Version = "dev"

type CLI struct {
	Verbose bool `help:"Echo external tool invocations and per-frame progress" short:"v"`

	Remove  cmd.RemoveCmd  `cmd:"" help:"Remove the background from images and video clips"`
	Sticker cmd.StickerCmd `cmd:"" help:"Turn an image or clip into a transparent sticker"`
	Compare cmd.CompareCmd `cmd:"" help:"Compare a source against its processed output by perceptual hash"`
	Doctor  cmd.DoctorCmd  `cmd:"" help:"Check that the required external tools are installed"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("stickercut"),
		kong.Description("Cut subjects out of their background and pack them into stickers."),
	)
	err := ctx.Run(&types.AppContext{Version: Version, Verbose: cli.Verbose})
	ctx.FatalIfErrorf(err)
}
