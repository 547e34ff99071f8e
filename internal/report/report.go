// Package report renders ranked summaries of an aggregation index.
package report

import (
	"fmt"
	"io"

	"kerncount/internal/index"
)

// Options controls which sections are rendered and how far the ranked
// lists are truncated.
type Options struct {
	// TopN limits every ranked list to its N highest-count entries.
	// Zero or negative means unbounded.
	TopN int
	// SkipDetails suppresses the per-object and per-kernel breakdowns
	// while keeping the summaries.
	SkipDetails bool
	// SkipObjects suppresses the object summary and object details.
	SkipObjects bool
	// SkipKernels suppresses the kernel summary and kernel details.
	SkipKernels bool
}

// Render writes the report for idx to w. An empty index renders section
// headers with no entries.
func Render(w io.Writer, idx *index.Index, opts Options) {
	objects := truncate(idx.Objects(), opts.TopN)
	kernels := truncate(idx.Kernels(), opts.TopN)

	if !opts.SkipObjects {
		fmt.Fprintf(w, "\nObjects with most kernels\n=========================\n\n")
		for _, e := range objects {
			fmt.Fprintf(w, "%4d kernel instances in %s (%d kernel templates)\n",
				e.Total, e.Name, e.Distinct)
		}
	}

	if !opts.SkipKernels {
		fmt.Fprintf(w, "\nKernels with most instances\n===========================\n\n")
		for _, e := range kernels {
			fmt.Fprintf(w, "%4d instances of %s in %d objects.\n",
				e.Total, e.Name, e.Distinct)
		}
	}

	if opts.SkipDetails {
		return
	}

	if !opts.SkipObjects {
		fmt.Fprintf(w, "\nDetails: Objects\n================\n\n")
		for _, e := range objects {
			fmt.Fprintf(w, "%4d kernel instances in %s across %d templates:\n",
				e.Total, e.Name, e.Distinct)
			for _, p := range idx.ObjectDetail(e.Name) {
				fmt.Fprintf(w, "    %4d: %s\n", p.Count, p.Name)
			}
			fmt.Fprintln(w)
		}
	}

	if !opts.SkipKernels {
		fmt.Fprintf(w, "\nDetails: Kernels\n================\n\n")
		for _, e := range kernels {
			fmt.Fprintf(w, "%4d instances of %s in %d objects:\n",
				e.Total, e.Name, e.Distinct)
			for _, p := range idx.KernelDetail(e.Name) {
				fmt.Fprintf(w, "    %4d: %s\n", p.Count, p.Name)
			}
			fmt.Fprintln(w)
		}
	}
}

func truncate(entries []index.Entry, topN int) []index.Entry {
	if topN > 0 && topN < len(entries) {
		return entries[:topN]
	}
	return entries
}
