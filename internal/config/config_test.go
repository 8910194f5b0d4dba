package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lpstitch/internal/imaging"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bench.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFillsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "matcher: flann\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Matcher != "flann" {
		t.Errorf("Matcher = %q", cfg.Matcher)
	}
	if cfg.Seed != 12345 || cfg.RansacThreshold != 3.0 || cfg.MaxKeypoints != 50000 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Alpha != imaging.DefaultRampAlpha {
		t.Errorf("Alpha = %v", cfg.Alpha)
	}
	if cfg.ReferenceAlgorithm != "SIFT" {
		t.Errorf("ReferenceAlgorithm = %q", cfg.ReferenceAlgorithm)
	}
}

func TestLoadFullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
seed: 99
ransac_threshold: 5.0
detectors: [SIFT, LP-SIFT64]
sets: [set03]
windows:
  small: [16, 32]
  large: [64, 128, 256]
save_overlays: true
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 99 || cfg.RansacThreshold != 5.0 {
		t.Errorf("explicit values lost: %+v", cfg)
	}
	if !cfg.SaveOverlays {
		t.Error("save_overlays not read")
	}

	table := cfg.WindowTable()
	if got := table[imaging.SizeSmall]; len(got) != 2 || got[0] != 16 {
		t.Errorf("small windows = %v", got)
	}
	if _, ok := table[imaging.SizeMedium]; ok {
		t.Error("medium should be absent, falling back at lookup")
	}

	if !cfg.WantsDetector("SIFT") || cfg.WantsDetector("ORB") {
		t.Error("detector filter not honored")
	}
	if !cfg.WantsSet("set03") || cfg.WantsSet("set01") {
		t.Error("set filter not honored")
	}
}

func TestLoadRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"bad matcher", "matcher: hashed\n", "unknown matcher"},
		{"bad category", "windows:\n  huge: [16]\n", "unknown size category"},
		{"bad windows", "windows:\n  small: [1]\n", "windows for small"},
		{"unknown key", "turbo: true\n", "field turbo not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestEmptyFiltersMatchEverything(t *testing.T) {
	cfg := Default()
	if !cfg.WantsDetector("anything") || !cfg.WantsSet("anything") {
		t.Error("empty filters should match everything")
	}
	if cfg.WindowTable() != nil {
		t.Error("no windows configured should yield nil table")
	}
}
