package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yuzeguitarist/loveqr/internal/app"
	"github.com/yuzeguitarist/loveqr/internal/heart"
	"github.com/yuzeguitarist/loveqr/internal/qr"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a heart QR code (or a plain one with --plain) to a file or stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		text, _ := cmd.Flags().GetString("text")
		size, _ := cmd.Flags().GetInt("size")
		levelFlag, _ := cmd.Flags().GetString("level")
		out, _ := cmd.Flags().GetString("out")
		plain, _ := cmd.Flags().GetBool("plain")
		preview, _ := cmd.Flags().GetBool("preview")

		if text == "" {
			text = cfg.DefaultText
		}
		if !cmd.Flags().Changed("size") {
			size = cfg.DefaultSize
		}
		level, err := cfg.Level()
		if err != nil {
			return err
		}
		if levelFlag != "" {
			if level, err = qr.ParseLevel(levelFlag); err != nil {
				return err
			}
		}
		enc, err := cfg.Encoder()
		if err != nil {
			return err
		}

		var b []byte
		if plain {
			sym, err := enc.Encode(text, level, heart.CanvasSide(size))
			if err != nil {
				return err
			}
			ppm, _ := cmd.Flags().GetInt("ppm")
			if b, err = qr.PlainSVG(sym, ppm); err != nil {
				return err
			}
		} else {
			img, err := cfg.Compositor().Render(enc, heart.Request{Text: text, Size: size, Format: heart.FormatSVG, Level: level})
			if err != nil {
				return err
			}
			b = img.Bytes()
		}

		if preview {
			qr.Terminal(cmd.ErrOrStderr(), text, level)
		}
		if out == "" {
			_, err = cmd.OutOrStdout().Write(b)
			return err
		}
		if err := app.AtomicWriteFile(out, 0644, b); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), app.Color("Wrote:", app.Pink), filepath.Clean(out))
		return nil
	},
}

func init() {
	renderCmd.Flags().String("text", "", "text or URL to encode (default from config)")
	renderCmd.Flags().Int("size", 0, "image size in pixels (default from config: 300)")
	renderCmd.Flags().String("level", "", "error correction level: L, M, Q or H (default from config)")
	renderCmd.Flags().String("out", "", "output .svg path (stdout when empty)")
	renderCmd.Flags().Bool("plain", false, "render a flat, unstyled QR code instead of the heart")
	renderCmd.Flags().Int("ppm", 6, "pixels per module for --plain")
	renderCmd.Flags().Bool("preview", false, "also print the QR code to the terminal")
}
