package kernels

import (
	"strings"
)

// Canonicalize turns one raw introspection line into the canonical,
// template-stripped identity of the kernel it names.
//
// Example input:
//
//	Function void raft::random::detail::rmat_gen_kernel<long, double>(T1 *, T1 *, T1 *, const T2 *, T1, T1, T1, T1, raft::random::RngState):
//
// Example output:
//
//	raft::random::detail::rmat_gen_kernel
//
// The literal tokens "Function" and "void" are removed, everything from
// the first '<' on is discarded, and surrounding whitespace is trimmed.
// This assumes one template-argument list per line and a function name
// that never legitimately contains '<'; operator-template spellings
// violate that assumption and come out truncated. Malformed lines are
// not rejected; whatever string remains is used as an opaque identity.
func Canonicalize(line string) string {
	line = strings.ReplaceAll(line, "Function", "")
	line = strings.ReplaceAll(line, "void", "")
	if i := strings.Index(line, "<"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}
