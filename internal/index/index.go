// Package index aggregates (object, kernel) occurrences into the
// bidirectional frequency index the report is rendered from.
//
// Counting is commutative and associative, so the final index is
// independent of the order occurrences arrive in, and accumulators
// built in parallel can be merged before taking a snapshot.
package index

import (
	"sort"
)

// Occurrence is one kernel instantiation found inside one object file.
// Identical pairs are distinct instantiation sites and each one counts.
type Occurrence struct {
	Object string
	Kernel string
}

type pairKey struct {
	object string
	kernel string
}

// Accumulator collects occurrence counts. It is not safe for concurrent
// use; parallel producers each own an Accumulator and Merge afterwards.
type Accumulator struct {
	counts map[pairKey]int
	total  int
}

// NewAccumulator creates an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		counts: make(map[pairKey]int),
	}
}

// Add records one occurrence.
func (a *Accumulator) Add(o Occurrence) {
	a.counts[pairKey{object: o.Object, kernel: o.Kernel}]++
	a.total++
}

// Merge folds another accumulator's counts into this one.
func (a *Accumulator) Merge(other *Accumulator) {
	for key, count := range other.counts {
		a.counts[key] += count
	}
	a.total += other.total
}

// Total returns the number of occurrences recorded so far.
func (a *Accumulator) Total() int {
	return a.total
}

// Entry is one line of a ranked summary.
type Entry struct {
	// Name is an object path or a kernel identity, depending on the list.
	Name string
	// Total is the summed instantiation count for this entry.
	Total int
	// Distinct is the number of distinct counterparts: kernel templates
	// for an object entry, objects for a kernel entry.
	Distinct int
}

// Pair is one counterpart line of a detail listing.
type Pair struct {
	Name  string
	Count int
}

// Index is the read-only aggregation built from an Accumulator.
type Index struct {
	pairs       map[pairKey]int
	objectHist  map[string]map[string]int
	kernelHist  map[string]map[string]int
	objectTotal map[string]int
	kernelTotal map[string]int
	total       int
}

// Snapshot derives the read-only Index from the accumulated counts.
// Each pair count fans out into exactly one object-keyed bucket and one
// kernel-keyed bucket; the accumulator may keep growing afterwards
// without affecting the snapshot.
func (a *Accumulator) Snapshot() *Index {
	idx := &Index{
		pairs:       make(map[pairKey]int, len(a.counts)),
		objectHist:  make(map[string]map[string]int),
		kernelHist:  make(map[string]map[string]int),
		objectTotal: make(map[string]int),
		kernelTotal: make(map[string]int),
		total:       a.total,
	}

	for key, count := range a.counts {
		idx.pairs[key] = count

		objHist := idx.objectHist[key.object]
		if objHist == nil {
			objHist = make(map[string]int)
			idx.objectHist[key.object] = objHist
		}
		objHist[key.kernel] += count

		kernHist := idx.kernelHist[key.kernel]
		if kernHist == nil {
			kernHist = make(map[string]int)
			idx.kernelHist[key.kernel] = kernHist
		}
		kernHist[key.object] += count

		idx.objectTotal[key.object] += count
		idx.kernelTotal[key.kernel] += count
	}

	return idx
}

// PairCount returns how many instantiations of kernel live in object.
func (i *Index) PairCount(object, kernel string) int {
	return i.pairs[pairKey{object: object, kernel: kernel}]
}

// ObjectHistogram returns the kernel→count histogram for one object.
// The returned map is shared; callers must not mutate it.
func (i *Index) ObjectHistogram(object string) map[string]int {
	return i.objectHist[object]
}

// KernelHistogram returns the object→count histogram for one kernel.
// The returned map is shared; callers must not mutate it.
func (i *Index) KernelHistogram(kernel string) map[string]int {
	return i.kernelHist[kernel]
}

// ObjectTotal returns the total instantiation count inside one object.
func (i *Index) ObjectTotal(object string) int {
	return i.objectTotal[object]
}

// KernelTotal returns the total instantiation count of one kernel.
func (i *Index) KernelTotal(kernel string) int {
	return i.kernelTotal[kernel]
}

// TotalOccurrences returns the size of the occurrence multiset.
func (i *Index) TotalOccurrences() int {
	return i.total
}

// Objects returns one Entry per object, ranked by descending total.
// Tie order between equal totals is unspecified.
func (i *Index) Objects() []Entry {
	entries := make([]Entry, 0, len(i.objectTotal))
	for object, total := range i.objectTotal {
		entries = append(entries, Entry{
			Name:     object,
			Total:    total,
			Distinct: len(i.objectHist[object]),
		})
	}
	rank(entries)
	return entries
}

// Kernels returns one Entry per kernel, ranked by descending total.
// Tie order between equal totals is unspecified.
func (i *Index) Kernels() []Entry {
	entries := make([]Entry, 0, len(i.kernelTotal))
	for kernel, total := range i.kernelTotal {
		entries = append(entries, Entry{
			Name:     kernel,
			Total:    total,
			Distinct: len(i.kernelHist[kernel]),
		})
	}
	rank(entries)
	return entries
}

// ObjectDetail returns the kernels inside one object, ranked by
// descending count.
func (i *Index) ObjectDetail(object string) []Pair {
	return rankedPairs(i.objectHist[object])
}

// KernelDetail returns the objects containing one kernel, ranked by
// descending count.
func (i *Index) KernelDetail(kernel string) []Pair {
	return rankedPairs(i.kernelHist[kernel])
}

// PairCounts returns every (object, kernel) count, sorted by object
// then kernel so exports are deterministic.
func (i *Index) PairCounts() []PairCount {
	out := make([]PairCount, 0, len(i.pairs))
	for key, count := range i.pairs {
		out = append(out, PairCount{
			Object: key.object,
			Kernel: key.kernel,
			Count:  count,
		})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Object != out[b].Object {
			return out[a].Object < out[b].Object
		}
		return out[a].Kernel < out[b].Kernel
	})
	return out
}

// PairCount is one (object, kernel) multiset count.
type PairCount struct {
	Object string
	Kernel string
	Count  int
}

func rank(entries []Entry) {
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Total > entries[b].Total
	})
}

func rankedPairs(hist map[string]int) []Pair {
	pairs := make([]Pair, 0, len(hist))
	for name, count := range hist {
		pairs = append(pairs, Pair{Name: name, Count: count})
	}
	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].Count > pairs[b].Count
	})
	return pairs
}
