// Command jpegtr decodes baseline JPEG files to PPM or BMP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kz16000/jpegtr"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "jpegtr",
		Short: "Decode baseline JPEG images",
	}
	root.AddCommand(newDecodeCmd())
	root.AddCommand(newBatchCmd())
	return root
}

func newDecodeCmd() *cobra.Command {
	var (
		output  string
		resize  string
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "decode <input.jpg>",
		Short: "Decode one JPEG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(args[0], output, resize, verbose)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "out.ppm", "output file (.ppm or .bmp)")
	cmd.Flags().StringVar(&resize, "resize", "", "downsample output to WxH before writing")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log marker trace to stderr")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Decode every *.jpg/*.jpeg file in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(args[0], outDir)
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory to write decoded PPM files into")
	return cmd
}

func runDecode(inputPath, outputPath, resize string, verbose bool) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	control := jpeg.DefaultControl()
	control.Markers = verbose

	dec := jpeg.Load(data, control)
	if verbose {
		level := zapcore.InfoLevel
		dec.SetLogger(newCLILogger(level))
	}

	w, h, n, err := dec.ParseHeaders()
	if err != nil {
		return fmt.Errorf("parse headers: %w", err)
	}
	pix := make([]byte, n)
	if err := dec.Decode(pix); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	if verbose {
		dec.DescribeMarkers(os.Stderr)
	}

	if resize != "" {
		pix, w, h, err = resizeRaster(pix, w, h, resize)
		if err != nil {
			return fmt.Errorf("resize: %w", err)
		}
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if isBMPPath(outputPath) {
		return writeBMP(out, pix, w, h)
	}
	return jpeg.WritePPM(out, pix, w, h)
}

func newCLILogger(level zapcore.Level) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(os.Stderr), level)
	return zap.New(core)
}
