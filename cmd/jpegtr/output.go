package main

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

func isBMPPath(p string) bool {
	return strings.EqualFold(filepath.Ext(p), ".bmp")
}

// rasterToImage copies a decoded interleaved RGB8 buffer into a new
// opaque image.RGBA, the shape x/image/draw and x/image/bmp both expect.
func rasterToImage(pix []byte, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			i := (row*w + col) * 3
			img.SetRGBA(col, row, color.RGBA{R: pix[i], G: pix[i+1], B: pix[i+2], A: 255})
		}
	}
	return img
}

func writeBMP(w io.Writer, pix []byte, width, height int) error {
	return bmp.Encode(w, rasterToImage(pix, width, height))
}

// resizeRaster downsamples an interleaved RGB8 raster to the WxH given
// in spec (e.g. "320x240") using bilinear interpolation, returning a new
// raster of exactly that size.
func resizeRaster(pix []byte, srcW, srcH int, spec string) ([]byte, int, int, error) {
	dstW, dstH, err := parseDims(spec)
	if err != nil {
		return nil, 0, 0, err
	}
	src := rasterToImage(pix, srcW, srcH)
	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	out := make([]byte, dstW*dstH*3)
	for row := 0; row < dstH; row++ {
		for col := 0; col < dstW; col++ {
			c := dst.RGBAAt(col, row)
			i := (row*dstW + col) * 3
			out[i], out[i+1], out[i+2] = c.R, c.G, c.B
		}
	}
	return out, dstW, dstH, nil
}

func parseDims(spec string) (w, h int, err error) {
	parts := strings.SplitN(spec, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("resize spec %q must be WxH", spec)
	}
	w, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("resize width: %w", err)
	}
	h, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("resize height: %w", err)
	}
	return w, h, nil
}
