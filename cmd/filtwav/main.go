// Command filtwav runs a WAV file through an IIR filter design.
//
// Usage:
//
//	filtwav [flags] input.wav output.wav
//
// Cutoff frequencies are given in Hz and normalized against the input
// file's sample rate.
//
// Examples:
//
//	filtwav -fc 1000 input.wav lowpassed.wav
//	filtwav -family elliptic -order 6 -fc 300 -band highpass in.wav out.wav
//	filtwav -band bandstop -f0 50 -fc 10 mains_hum.wav clean.wav
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-filter/dsp/filter/design"
	"github.com/cwbudde/algo-filter/dsp/filter/iir"
)

const (
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("filtwav: ")

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	family := flag.String("family", "butterworth", "filter family: butterworth, chebyshev1, chebyshev2, elliptic, bessel")
	band := flag.String("band", "lowpass", "band type: lowpass, highpass, bandpass, bandstop")
	order := flag.Int("order", 4, "filter order")
	fcHz := flag.Float64("fc", 1000, "cutoff (band-edge offset) in Hz")
	f0Hz := flag.Float64("f0", 0, "center frequency in Hz (bandpass, bandstop)")
	ap := flag.Float64("ap", 1, "passband ripple in dB (chebyshev1, elliptic)")
	as := flag.Float64("as", 40, "stopband attenuation in dB (chebyshev2, elliptic)")
	verbose := flag.Bool("v", false, "verbose output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: filtwav [flags] input.wav output.wav\n\n")
		fmt.Fprintf(os.Stderr, "Runs a WAV file through an IIR filter design.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  filtwav -fc 1000 input.wav lowpassed.wav\n")
		fmt.Fprintf(os.Stderr, "  filtwav -family elliptic -order 6 -fc 300 -band highpass in.wav out.wav\n")
		fmt.Fprintf(os.Stderr, "  filtwav -band bandstop -f0 50 -fc 10 mains_hum.wav clean.wav\n")
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		flag.Usage()
		return fmt.Errorf("expected input and output paths, got %d arguments", len(args))
	}

	ftype, err := parseFamily(*family)
	if err != nil {
		return err
	}

	btype, err := parseBand(*band)
	if err != nil {
		return err
	}

	inputPath, outputPath := args[0], args[1]

	buf, bitDepth, err := readWAV(inputPath)
	if err != nil {
		return err
	}

	rate := buf.Format.SampleRate
	channels := buf.Format.NumChannels
	frames := len(buf.Data) / channels

	if *verbose {
		log.Printf("input: %d Hz, %d channels, %d-bit, %d frames", rate, channels, bitDepth, frames)
	}

	// Normalize the cutoff against the file's sample rate; the design
	// package rejects anything at or beyond Nyquist.
	fc := *fcHz / float64(rate)
	f0 := *f0Hz / float64(rate)

	B, A, err := design.Design(ftype, btype, design.FormatSOS, *order, fc, f0, *ap, *as)
	if err != nil {
		return fmt.Errorf("design failed: %w", err)
	}

	if *verbose {
		log.Printf("design: %s %s, order %d, fc %g Hz (%g cycles/sample), %d sections",
			*family, *band, *order, *fcHz, fc, len(B)/3)
	}

	if err := filterChannels(buf, B, A, bitDepth); err != nil {
		return err
	}

	if err := writeWAV(outputPath, buf, bitDepth); err != nil {
		return err
	}

	fmt.Printf("Filtered %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %s %s, order %d, fc %g Hz @ %d Hz (%d channels, %d-bit, %d frames)\n",
		*family, *band, *order, *fcHz, rate, channels, bitDepth, frames)

	return nil
}

func parseFamily(s string) (design.FilterType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "butterworth":
		return design.Butterworth, nil
	case "chebyshev1":
		return design.Chebyshev1, nil
	case "chebyshev2":
		return design.Chebyshev2, nil
	case "elliptic":
		return design.Elliptic, nil
	case "bessel":
		return design.Bessel, nil
	default:
		return 0, fmt.Errorf("unknown family %q (butterworth, chebyshev1, chebyshev2, elliptic, bessel)", s)
	}
}

func parseBand(s string) (design.BandType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lowpass":
		return design.Lowpass, nil
	case "highpass":
		return design.Highpass, nil
	case "bandpass":
		return design.Bandpass, nil
	case "bandstop":
		return design.Bandstop, nil
	default:
		return 0, fmt.Errorf("unknown band %q (lowpass, highpass, bandpass, bandstop)", s)
	}
}

func readWAV(path string) (*audio.IntBuffer, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read audio data: %w", err)
	}

	if buf.Format == nil || buf.Format.NumChannels == 0 {
		return nil, 0, fmt.Errorf("missing format information: %s", path)
	}

	return buf, int(dec.BitDepth), nil
}

// filterChannels deinterleaves buf, runs each channel through its own
// section cascade and writes the clamped result back in place.
func filterChannels(buf *audio.IntBuffer, B, A []float64, bitDepth int) error {
	channels := buf.Format.NumChannels
	frames := len(buf.Data) / channels
	maxVal := maxValue(bitDepth)

	samples := make([]float64, frames)

	for ch := range channels {
		// Independent state per channel.
		f, err := iir.NewSOS(B, A)
		if err != nil {
			return fmt.Errorf("channel %d: %w", ch, err)
		}

		for i := range frames {
			samples[i] = float64(buf.Data[i*channels+ch]) / maxVal
		}

		f.ProcessBlock(samples)

		for i, s := range samples {
			if s > 1 {
				s = 1
			} else if s < -1 {
				s = -1
			}

			buf.Data[i*channels+ch] = int(s * maxVal)
		}
	}

	return nil
}

func writeWAV(path string, buf *audio.IntBuffer, bitDepth int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	enc := wav.NewEncoder(f, buf.Format.SampleRate, bitDepth, buf.Format.NumChannels, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize output: %w", err)
	}

	return nil
}

func maxValue(bitDepth int) float64 {
	switch bitDepth {
	case 24:
		return maxInt24
	case 32:
		return maxInt32
	default:
		return maxInt16
	}
}
