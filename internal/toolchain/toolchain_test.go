package toolchain

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"kerncount/internal/config"
)

// fakeBinary writes an executable file and returns its absolute path.
// LookPath accepts paths containing a separator directly, so tests
// never need to touch PATH.
func fakeBinary(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolve_AllPresent(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake shell binaries are not executable on windows")
	}
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Tools.Ninja = fakeBinary(t, dir, "ninja")
	cfg.Tools.Grep = fakeBinary(t, dir, "grep")
	cfg.Tools.Cuobjdump = fakeBinary(t, dir, "cuobjdump")
	cfg.Tools.CuFilt = fakeBinary(t, dir, "cu++filt")

	tools, resolutions := Resolve(cfg)

	if missing := Missing(resolutions); len(missing) != 0 {
		t.Fatalf("Missing = %v, want none", missing)
	}
	if tools.Ninja != cfg.Tools.Ninja {
		t.Errorf("Ninja = %q, want %q", tools.Ninja, cfg.Tools.Ninja)
	}
	if tools.CuFilt != cfg.Tools.CuFilt {
		t.Errorf("CuFilt = %q, want %q", tools.CuFilt, cfg.Tools.CuFilt)
	}
}

func TestResolve_ReportsEveryMissingTool(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	// None of these exist; every single one must be reported.
	cfg.Tools.Ninja = filepath.Join(dir, "ninja")
	cfg.Tools.Grep = filepath.Join(dir, "grep")
	cfg.Tools.Cuobjdump = filepath.Join(dir, "cuobjdump")
	cfg.Tools.CuFilt = filepath.Join(dir, "cu++filt")

	_, resolutions := Resolve(cfg)

	missing := Missing(resolutions)
	if len(missing) != 4 {
		t.Fatalf("len(Missing) = %d, want 4", len(missing))
	}
	for _, m := range missing {
		if m.Err == nil {
			t.Errorf("missing resolution %q has nil Err", m.Name)
		}
		if m.Path != "" {
			t.Errorf("missing resolution %q has non-empty Path %q", m.Name, m.Path)
		}
	}
}

func TestResolve_PartialMiss(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake shell binaries are not executable on windows")
	}
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Tools.Ninja = fakeBinary(t, dir, "ninja")
	cfg.Tools.Grep = fakeBinary(t, dir, "grep")
	cfg.Tools.Cuobjdump = filepath.Join(dir, "cuobjdump") // absent
	cfg.Tools.CuFilt = fakeBinary(t, dir, "cu++filt")

	_, resolutions := Resolve(cfg)

	missing := Missing(resolutions)
	if len(missing) != 1 {
		t.Fatalf("len(Missing) = %d, want 1", len(missing))
	}
	if missing[0].Name != cfg.Tools.Cuobjdump {
		t.Errorf("missing tool = %q, want %q", missing[0].Name, cfg.Tools.Cuobjdump)
	}
}
