// Package export writes annotation snapshots to PNG and PDF files.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Format is an output file format.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// ParseFormat accepts "png" or "pdf" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatPNG, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("unsupported export format %q (want png or pdf)", s)
}

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Flatten composites annotations over backdrop. A nil backdrop returns a
// copy of the annotations.
func Flatten(annotations, backdrop image.Image) *image.RGBA {
	b := annotations.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if backdrop != nil {
		draw.Draw(out, out.Bounds(), backdrop, backdrop.Bounds().Min, draw.Src)
	}
	draw.Draw(out, out.Bounds(), annotations, b.Min, draw.Over)
	return out
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// pxToPt converts CSS pixels to PDF points.
const pxToPt = 0.75

// WritePDF writes img as a single-page PDF sized to the image.
func WritePDF(w io.Writer, img image.Image, title string) error {
	b := img.Bounds()
	wd, ht := float64(b.Dx())*pxToPt, float64(b.Dy())*pxToPt
	orientation := "P"
	if wd > ht {
		orientation = "L"
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if title != "" {
		pdf.SetTitle(title, true)
	}
	pdf.SetCreator("markyfy", true)
	pdf.AddPage()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode page image: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("snapshot", opts, &buf)
	pdf.ImageOptions("snapshot", 0, 0, wd, ht, false, opts, 0, "")
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	return pdf.Output(w)
}

// WriteFile writes img to path in format.
func WriteFile(path string, img image.Image, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	switch format {
	case FormatPDF:
		err = WritePDF(f, img, filepath.Base(path))
	default:
		err = WritePNG(f, img)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}
