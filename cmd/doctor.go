package cmd

import (
	"fmt"

	"stickercut/types"
	"stickercut/ui"
	"stickercut/utils"
)

type DoctorCmd struct {
	Server bool `help:"Assume a rembg server is used instead of the local binary"`
}

// Run reports which external tools resolve on PATH so a user can fix their
// setup before the pipeline fails mid-job.
func (cmd *DoctorCmd) Run(appCtx *types.AppContext) error {
	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("stickercut %s", appCtx.VersionString())))

	missing := 0
	check := func(tool utils.Tool, required bool) {
		if tool.Available() {
			fmt.Printf("%s\n", ui.SuccessStyle.Render(fmt.Sprintf("✅ %s — %s", tool.Name, tool.Purpose)))
			return
		}
		if required {
			missing++
			fmt.Printf("%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ %s — %s", tool.Name, tool.Purpose)))
		} else {
			fmt.Printf("%s\n", ui.WarningStyle.Render(fmt.Sprintf("⚠️  %s — %s (only needed for the sticker command)", tool.Name, tool.Purpose)))
		}
		fmt.Printf("   %s\n", ui.InfoStyle.Render(utils.InstallInstructions(tool.Name)))
	}

	for _, tool := range utils.PipelineTools(cmd.Server) {
		check(tool, true)
	}
	for _, tool := range utils.StickerTools() {
		check(tool, false)
	}

	if cmd.Server {
		fmt.Printf("%s\n", ui.InfoStyle.Render("ℹ️  rembg binary skipped: server mode (--server-url / STICKERCUT_REMBG_URL)"))
	}

	if missing > 0 {
		return fmt.Errorf("%d required tool(s) missing", missing)
	}
	fmt.Printf("\n%s\n", ui.SuccessStyle.Render("✅ All required tools available."))
	return nil
}
