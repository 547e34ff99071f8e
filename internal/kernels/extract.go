// Package kernels extracts canonical kernel identities from object files
// by driving the cuobjdump | cu++filt | grep introspection pipeline.
package kernels

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"unicode/utf8"

	"kerncount/internal/errors"
	"kerncount/internal/logging"
)

// functionMarker is the token the final filter stage passes through.
// cuobjdump prefixes every per-function resource block with it.
const functionMarker = "Function"

// IntrospectionRunner produces the raw filtered introspection lines for
// one object file. The production implementation shells out to real
// binaries; tests substitute fixtures.
type IntrospectionRunner interface {
	Run(ctx context.Context, objectPath string) ([]string, error)
}

// PipelineRunner runs the three-stage introspection pipeline:
//
//	cuobjdump -res-usage <object> | cu++filt | grep Function
//
// Each stage is a short-lived process fed the previous stage's stdout.
type PipelineRunner struct {
	cuobjdump string
	cuFilt    string
	grep      string
	logger    *logging.Logger
}

// NewPipelineRunner creates a PipelineRunner from resolved binary paths.
func NewPipelineRunner(cuobjdump, cuFilt, grep string, logger *logging.Logger) *PipelineRunner {
	return &PipelineRunner{
		cuobjdump: cuobjdump,
		cuFilt:    cuFilt,
		grep:      grep,
		logger:    logger,
	}
}

// Run executes the pipeline and returns the surviving lines. Any stage
// failing to launch, exiting non-zero (grep exits 1 for an object with no
// kernels) or producing undecodable output is returned as an error.
func (p *PipelineRunner) Run(ctx context.Context, objectPath string) ([]string, error) {
	dump, err := p.runStage(ctx, p.cuobjdump, []string{"-res-usage", objectPath}, nil)
	if err != nil {
		return nil, err
	}

	demangled, err := p.runStage(ctx, p.cuFilt, nil, dump)
	if err != nil {
		return nil, err
	}

	filtered, err := p.runStage(ctx, p.grep, []string{functionMarker}, demangled)
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(filtered) {
		return nil, errors.NewKernError(
			errors.PipelineFailed,
			"Introspection output is not valid UTF-8",
			nil,
		).WithDetails(map[string]interface{}{
			"object": objectPath,
		})
	}

	out := strings.TrimRight(string(filtered), "\n")
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

func (p *PipelineRunner) runStage(ctx context.Context, binary string, args []string, stdin []byte) ([]byte, error) {
	p.logger.Debug("Executing pipeline stage", map[string]interface{}{
		"binary": binary,
		"args":   args,
	})

	cmd := exec.CommandContext(ctx, binary, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	output, err := cmd.Output()
	if err != nil {
		kerr := errors.NewKernError(
			errors.PipelineFailed,
			"Pipeline stage "+binary+" failed",
			err,
		)
		if exitErr, ok := err.(*exec.ExitError); ok {
			kerr = kerr.WithDetails(map[string]interface{}{
				"stderr": string(exitErr.Stderr),
			})
		}
		return nil, kerr
	}
	return output, nil
}

// Extractor yields the canonical kernel identities found in one object.
type Extractor struct {
	runner IntrospectionRunner
	logger *logging.Logger
}

// NewExtractor creates an Extractor over the given runner.
func NewExtractor(runner IntrospectionRunner, logger *logging.Logger) *Extractor {
	return &Extractor{
		runner: runner,
		logger: logger,
	}
}

// Extract returns one canonical identity per introspection line, in
// order and with duplicates; each line is a distinct instantiation.
// A pipeline failure is logged and yields an empty result; one bad
// object never aborts the rest of the run.
func (e *Extractor) Extract(ctx context.Context, objectPath string) []string {
	lines, err := e.runner.Run(ctx, objectPath)
	if err != nil {
		e.logger.Error("Kernel extraction failed", map[string]interface{}{
			"object": objectPath,
			"error":  err.Error(),
		})
		return nil
	}

	identities := make([]string, 0, len(lines))
	for _, line := range lines {
		identities = append(identities, Canonicalize(line))
	}
	return identities
}
