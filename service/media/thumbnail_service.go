package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Options for a thumbnail run.
type Options struct {
	// Width of generated thumbnails in pixels; defaults to 320.
	Width int
	// Quality is the webp quality factor; defaults to 80.
	Quality float32
}

// Result is the thumbnail run report.
type Result struct {
	Processed int
	Skipped   int
	Warnings  []string
	TotalTime time.Duration
}

var sourceExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// GenerateThumbnails resizes every jpg/png under srcDir into a webp
// thumbnail under dstDir, mirroring the directory layout. Existing
// thumbnails newer than their source are left alone.
func GenerateThumbnails(srcDir, dstDir string, opts Options) (*Result, error) {
	start := time.Now()
	if opts.Width <= 0 {
		opts.Width = 320
	}
	if opts.Quality <= 0 {
		opts.Quality = 80
	}

	res := &Result{}
	err := filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !sourceExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(dstDir, strings.TrimSuffix(rel, filepath.Ext(rel))+".webp")

		if dstInfo, err := os.Stat(dst); err == nil && dstInfo.ModTime().After(info.ModTime()) {
			res.Skipped++
			return nil
		}
		if err := renderThumbnail(path, dst, opts); err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %v", rel, err))
			return nil
		}
		res.Processed++
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.TotalTime = time.Since(start)
	return res, nil
}

func renderThumbnail(src, dst string, opts Options) error {
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return err
	}
	thumb := imaging.Resize(img, opts.Width, 0, imaging.Lanczos)

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	return webp.Encode(out, thumb, &webp.Options{Quality: opts.Quality})
}
