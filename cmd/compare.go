package cmd

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/corona10/goimagehash"

	"stickercut/types"
	"stickercut/ui"
)

type CompareCmd struct {
	Source    string `arg:"" help:"Original image" type:"existingfile"`
	Processed string `arg:"" help:"Background-removed image" type:"existingfile"`
	Threshold int    `help:"Hamming distance threshold for similarity (0-64)" default:"10"`
}

// Run compares a source image against its processed output by perceptual
// hash. A large distance usually means the removal wiped the subject along
// with the background.
func (cmd *CompareCmd) Run(appCtx *types.AppContext) error {
	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("stickercut %s", appCtx.VersionString())))

	sourceHash, err := hashImage(cmd.Source)
	if err != nil {
		return fmt.Errorf("hash source: %w", err)
	}
	processedHash, err := hashImage(cmd.Processed)
	if err != nil {
		return fmt.Errorf("hash processed: %w", err)
	}

	distance, err := sourceHash.Distance(processedHash)
	if err != nil {
		return fmt.Errorf("compare hashes: %w", err)
	}

	if distance <= cmd.Threshold {
		fmt.Printf("%s\n", ui.SuccessStyle.Render(
			fmt.Sprintf("✅ Subject preserved (distance %d ≤ %d)", distance, cmd.Threshold)))
		return nil
	}

	fmt.Printf("%s\n", ui.WarningStyle.Render(
		fmt.Sprintf("⚠️  Output differs strongly from source (distance %d > %d) — check that the subject survived removal", distance, cmd.Threshold)))
	return nil
}

func hashImage(path string) (*goimagehash.ImageHash, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return goimagehash.PerceptionHash(img)
}
