package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"storefront.GO/service/media"
)

var (
	thumbSrc     string
	thumbDst     string
	thumbWidth   int
	thumbQuality float32
)

var mediaThumbsCmd = &cobra.Command{
	Use:   "media:thumbs",
	Short: "Generate webp thumbnails for product images",
	Run: func(cmd *cobra.Command, args []string) {
		res, err := media.GenerateThumbnails(thumbSrc, thumbDst, media.Options{
			Width:   thumbWidth,
			Quality: thumbQuality,
		})
		if err != nil {
			fmt.Printf("Thumbnail run failed: %v\n", err)
			return
		}
		for _, w := range res.Warnings {
			fmt.Printf("  [warn] %s\n", w)
		}
		fmt.Printf("Processed %d, skipped %d in %s\n",
			res.Processed, res.Skipped, res.TotalTime.Round(time.Millisecond))
	},
}

func init() {
	mediaThumbsCmd.Flags().StringVar(&thumbSrc, "src", "media/catalog", "Source image directory")
	mediaThumbsCmd.Flags().StringVar(&thumbDst, "dst", "media/thumbs", "Thumbnail output directory")
	mediaThumbsCmd.Flags().IntVar(&thumbWidth, "width", 320, "Thumbnail width in pixels")
	mediaThumbsCmd.Flags().Float32Var(&thumbQuality, "quality", 80, "webp quality factor")
	rootCmd.AddCommand(mediaThumbsCmd)
}
