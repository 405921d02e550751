// Command filtinfo prints coefficients and response summaries of IIR
// filter designs.
//
// Usage:
//
//	filtinfo [flags] [family ...]
//
// Without arguments it prints a summary for all filter families.
//
// Examples:
//
//	filtinfo butterworth
//	filtinfo -order 6 -fc 0.15 chebyshev1 elliptic
//	filtinfo -band bandpass -f0 0.25 butterworth
//	filtinfo -format sos -coeffs elliptic
//	filtinfo -sweep 10 bessel
//	filtinfo -list
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-filter/dsp/filter/biquad"
	"github.com/cwbudde/algo-filter/dsp/filter/design"
	"github.com/cwbudde/algo-filter/dsp/filter/iir"
)

type familyEntry struct {
	name        string
	typ         design.FilterType
	hasRipple   bool
	hasStopband bool
}

var registry = []familyEntry{
	{"butterworth", design.Butterworth, false, false},
	{"chebyshev1", design.Chebyshev1, true, false},
	{"chebyshev2", design.Chebyshev2, false, true},
	{"elliptic", design.Elliptic, true, true},
	{"bessel", design.Bessel, false, false},
}

func main() {
	order := flag.Int("order", 4, "filter order")
	band := flag.String("band", "lowpass", "band type: lowpass, highpass, bandpass, bandstop")
	format := flag.String("format", "tf", "coefficient format: tf (direct form) or sos (cascaded sections)")
	fc := flag.Float64("fc", 0.1, "cutoff (band-edge offset) as a fraction of the sample rate, in (0, 0.5)")
	f0 := flag.Float64("f0", 0.25, "center frequency for bandpass/bandstop designs")
	ap := flag.Float64("ap", 1, "passband ripple in dB (chebyshev1, elliptic)")
	as := flag.Float64("as", 40, "stopband attenuation in dB (chebyshev2, elliptic)")
	sweep := flag.Int("sweep", 0, "print a response sweep with this many rows per family")
	coeffs := flag.Bool("coeffs", false, "print the coefficient dump for each family")
	all := flag.Bool("all", false, "show all filter families")
	list := flag.Bool("list", false, "list available family names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: filtinfo [flags] [family ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints coefficients and response summaries of IIR filter designs.\n")
		fmt.Fprintf(os.Stderr, "Without arguments or with -all, prints a summary for all families.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  filtinfo butterworth elliptic\n")
		fmt.Fprintf(os.Stderr, "  filtinfo -band bandpass -f0 0.25 butterworth\n")
		fmt.Fprintf(os.Stderr, "  filtinfo -format sos -coeffs elliptic\n")
		fmt.Fprintf(os.Stderr, "  filtinfo -list\n")
	}
	flag.Parse()

	if *list {
		printList()
		return
	}

	btype, err := parseBand(*band)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ftFormat, err := parseFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	names := flag.Args()
	if len(names) == 0 || *all {
		names = nil
		for _, e := range registry {
			names = append(names, e.name)
		}
	}

	entries := resolveEntries(names)
	if len(entries) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching filter families\n")
		os.Exit(1)
	}

	params := designParams{
		btype:  btype,
		format: ftFormat,
		order:  *order,
		fc:     *fc,
		f0:     *f0,
		ap:     *ap,
		as:     *as,
	}

	built := buildFilters(entries, params)
	if len(built) == 0 {
		fmt.Fprintf(os.Stderr, "error: no designable filters\n")
		os.Exit(1)
	}

	printSummary(built, params)

	if *sweep > 0 {
		for _, bf := range built {
			printSweep(bf, *sweep)
		}
	}

	if *coeffs {
		for _, bf := range built {
			printCoeffs(bf)
		}
	}
}

// printCoeffs dumps the coefficient set and, for cascaded filters, the
// section poles with a stability verdict.
func printCoeffs(bf builtFilter) {
	fmt.Printf("\n%s:\n%s\n", bf.label, bf.filter)

	secs := bf.filter.Sections()
	if secs == nil {
		return
	}

	for i, pair := range biquad.PoleZeroPairs(secs) {
		fmt.Printf("  section %d poles: %.4f%+.4fi, %.4f%+.4fi stable=%v\n",
			i,
			real(pair.Poles[0]), imag(pair.Poles[0]),
			real(pair.Poles[1]), imag(pair.Poles[1]),
			secs[i].Stable())
	}
}

func printList() {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(n)
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

func parseFormat(s string) (design.Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tf":
		return design.FormatTF, nil
	case "sos":
		return design.FormatSOS, nil
	default:
		return 0, fmt.Errorf("unknown format %q (tf, sos)", s)
	}
}

func resolveEntries(names []string) []familyEntry {
	byName := make(map[string]familyEntry, len(registry))
	for _, e := range registry {
		byName[e.name] = e
	}

	var result []familyEntry
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		e, ok := byName[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: unknown family %q (use -list to see available)\n", name)
			continue
		}
		result = append(result, e)
	}
	return result
}

type designParams struct {
	btype  design.BandType
	format design.Format
	order  int
	fc     float64
	f0     float64
	ap     float64
	as     float64
}

// probes returns the frequencies at which the summary samples the
// magnitude response, and the passband frequency used for group delay.
func (p designParams) probes() (mags []float64, pass float64) {
	switch p.btype {
	case design.Highpass:
		pass = (p.fc + 0.5) / 2
		return []float64{0, p.fc / 2, p.fc, pass}, pass
	case design.Bandpass:
		return []float64{0, p.f0 - p.fc, p.f0, p.f0 + p.fc}, p.f0
	case design.Bandstop:
		pass = (p.f0 - p.fc) / 2
		return []float64{pass, p.f0 - p.fc, p.f0, p.f0 + p.fc}, pass
	default:
		pass = p.fc / 2
		return []float64{0, pass, p.fc, min(2*p.fc, 0.49)}, pass
	}
}

type builtFilter struct {
	label  string
	filter *iir.Filter
}

func buildFilters(entries []familyEntry, p designParams) []builtFilter {
	var result []builtFilter

	for _, e := range entries {
		f, err := iir.NewPrototype(e.typ, p.btype, p.format, p.order, p.fc, p.f0, p.ap, p.as)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", e.name, err)
			continue
		}

		label := e.name
		if e.hasRipple && e.hasStopband {
			label = fmt.Sprintf("%s (ap=%.1f as=%.0f)", e.name, p.ap, p.as)
		} else if e.hasRipple {
			label = fmt.Sprintf("%s (ap=%.1f)", e.name, p.ap)
		} else if e.hasStopband {
			label = fmt.Sprintf("%s (as=%.0f)", e.name, p.as)
		}

		result = append(result, builtFilter{label, f})
	}

	return result
}

func printSummary(built []builtFilter, p designParams) {
	mags, pass := p.probes()

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	header := "Family\tForm\tLen"
	rule := "------\t----\t---"
	for _, fc := range mags {
		header += fmt.Sprintf("\t|H(%.3f)| [dB]", fc)
		rule += "\t--------------"
	}
	header += fmt.Sprintf("\tGD(%.3f) [smp]\n", pass)
	rule += "\t--------------\n"

	if _, err := fmt.Fprintf(tw, "%s%s", header, rule); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for _, bf := range built {
		row := fmt.Sprintf("%s\t%v\t%d", bf.label, bf.filter.Form(), bf.filter.Len())
		for _, fc := range mags {
			row += fmt.Sprintf("\t%.2f", bf.filter.MagnitudeDB(fc))
		}
		row += fmt.Sprintf("\t%.2f\n", bf.filter.GroupDelay(pass))

		if _, err := fmt.Fprint(tw, row); err != nil {
			fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func printSweep(bf builtFilter, rows int) {
	fmt.Printf("\n%s sweep:\n", bf.label)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "f\t|H| [dB]\tGD [smp]\n")

	for i := range rows {
		fc := 0.5 * float64(i) / float64(rows)
		fmt.Fprintf(tw, "%.4f\t%.2f\t%.2f\n", fc, bf.filter.MagnitudeDB(fc), bf.filter.GroupDelay(fc))
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
