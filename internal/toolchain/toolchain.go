// Package toolchain resolves the external binaries kerncount invokes.
//
// Resolution happens exactly once, before any work starts, and the
// resolved paths are handed explicitly to the components that spawn
// processes. Nothing downstream consults PATH on its own.
package toolchain

import (
	"os/exec"

	"kerncount/internal/config"
	"kerncount/internal/errors"
)

// Tools holds the resolved absolute paths of the required binaries
type Tools struct {
	Ninja     string
	Grep      string
	Cuobjdump string
	CuFilt    string
}

// Resolution records the outcome of resolving one binary
type Resolution struct {
	// Name is the configured binary name (e.g. "cu++filt")
	Name string
	// Path is the resolved absolute path, empty when Err is set
	Path string
	Err  error
}

// Resolve looks up every required binary. It never stops at the first
// missing tool; the caller gets one Resolution per binary so every
// problem can be reported in a single pre-flight pass.
func Resolve(cfg *config.Config) (Tools, []Resolution) {
	names := []string{
		cfg.Tools.Ninja,
		cfg.Tools.Grep,
		cfg.Tools.Cuobjdump,
		cfg.Tools.CuFilt,
	}

	resolutions := make([]Resolution, 0, len(names))
	paths := make([]string, len(names))
	for i, name := range names {
		path, err := exec.LookPath(name)
		res := Resolution{Name: name, Path: path}
		if err != nil {
			res.Path = ""
			res.Err = errors.NewKernError(
				errors.ToolMissing,
				"Could not find "+name+". Make sure "+name+" is in PATH.",
				err,
			).WithDetails(map[string]interface{}{
				"tool": name,
			})
		}
		paths[i] = res.Path
		resolutions = append(resolutions, res)
	}

	return Tools{
		Ninja:     paths[0],
		Grep:      paths[1],
		Cuobjdump: paths[2],
		CuFilt:    paths[3],
	}, resolutions
}

// Missing filters resolutions down to the failed ones
func Missing(resolutions []Resolution) []Resolution {
	var missing []Resolution
	for _, r := range resolutions {
		if r.Err != nil {
			missing = append(missing, r)
		}
	}
	return missing
}
