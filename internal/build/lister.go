// Package build enumerates the object files contributing to a ninja target.
package build

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"kerncount/internal/errors"
	"kerncount/internal/logging"
)

// Lister lists the object-file inputs of a build target.
type Lister struct {
	ninja    string
	buildDir string
	logger   *logging.Logger
}

// NewLister creates a Lister. ninja must be a resolved binary path.
func NewLister(ninja, buildDir string, logger *logging.Logger) *Lister {
	return &Lister{
		ninja:    ninja,
		buildDir: buildDir,
		logger:   logger,
	}
}

// ListObjects runs `ninja -C buildDir -t inputs target` and returns every
// input whose path ends in ".o", joined under the build directory, in the
// order ninja reports them. Duplicates are preserved: a target that
// references an object more than once counts it more than once. If the
// target itself resolves to an existing object file under the build
// directory it is appended last: a target can be the object file of
// interest rather than something built from objects.
func (l *Lister) ListObjects(ctx context.Context, target string) ([]string, error) {
	args := []string{"-C", l.buildDir, "-t", "inputs", target}

	l.logger.Debug("Executing build-graph query", map[string]interface{}{
		"binary": l.ninja,
		"args":   args,
	})

	cmd := exec.CommandContext(ctx, l.ninja, args...)
	output, err := cmd.Output()
	if err != nil {
		kerr := errors.NewKernError(
			errors.EnumerationFailed,
			"Failed to list inputs of target "+target,
			err,
		)
		if exitErr, ok := err.(*exec.ExitError); ok {
			kerr = kerr.WithDetails(map[string]interface{}{
				"stderr": string(exitErr.Stderr),
			})
		}
		return nil, kerr
	}

	var objects []string
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasSuffix(line, ".o") {
			objects = append(objects, filepath.Join(l.buildDir, line))
		}
	}

	selfPath := filepath.Join(l.buildDir, target)
	if strings.HasSuffix(selfPath, ".o") {
		if _, err := os.Stat(selfPath); err == nil {
			objects = append(objects, selfPath)
		}
	}

	return objects, nil
}
