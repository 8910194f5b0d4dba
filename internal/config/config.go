// Package config loads and validates benchmark sweep settings.
//
// A config file is optional; zero values fall back to the standard
// deterministic parameters. Example:
//
//	alpha: 1.0e-6
//	unique3x3: false
//	seed: 12345
//	ransac_threshold: 3.0
//	max_keypoints: 50000
//	matcher: brute-force
//	cross_check: false
//	reference_algorithm: SIFT
//	detectors: [SIFT, ORB, LP-SIFT64, LP-SIFT, LP-ORB]
//	sets: []
//	windows:
//	  small: [16, 32, 64]
//	  medium: [16, 32, 64, 128]
//	  large: [16, 32, 64, 128, 256]
//	output_dir: results
//	save_stitched: true
//	save_overlays: false
package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"

	"lpstitch/internal/imaging"
)

// Config is the full sweep configuration.
type Config struct {
	// Alpha is the tie-breaking ramp slope for local-peak detection.
	Alpha float64 `yaml:"alpha"`
	// Unique3x3 enables the 3x3 neighborhood uniqueness filter.
	Unique3x3 bool `yaml:"unique3x3"`

	Seed            int     `yaml:"seed"`
	RansacThreshold float64 `yaml:"ransac_threshold"`
	MaxKeypoints    int     `yaml:"max_keypoints"`

	// Matcher is "brute-force" or "flann".
	Matcher    string `yaml:"matcher"`
	CrossCheck bool   `yaml:"cross_check"`

	ReferenceAlgorithm string `yaml:"reference_algorithm"`

	// Detectors filters the algorithm sweep; empty means all known.
	Detectors []string `yaml:"detectors"`
	// Sets filters the dataset directories; empty means all found.
	Sets []string `yaml:"sets"`

	// Windows maps a size category (small, medium, large) to the window
	// sizes used for images in that category.
	Windows map[string][]int `yaml:"windows"`

	OutputDir    string `yaml:"output_dir"`
	SaveStitched bool   `yaml:"save_stitched"`
	SaveOverlays bool   `yaml:"save_overlays"`
}

// Default returns the standard configuration.
func Default() *Config {
	return &Config{
		Alpha:              imaging.DefaultRampAlpha,
		Seed:               12345,
		RansacThreshold:    3.0,
		MaxKeypoints:       50000,
		Matcher:            "brute-force",
		ReferenceAlgorithm: "SIFT",
		OutputDir:          "results",
		SaveStitched:       true,
	}
}

// Load reads a YAML config from path and fills unset fields with
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := &Config{}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Alpha == 0 {
		c.Alpha = d.Alpha
	}
	if c.Seed == 0 {
		c.Seed = d.Seed
	}
	if c.RansacThreshold == 0 {
		c.RansacThreshold = d.RansacThreshold
	}
	if c.MaxKeypoints == 0 {
		c.MaxKeypoints = d.MaxKeypoints
	}
	if c.Matcher == "" {
		c.Matcher = d.Matcher
	}
	if c.ReferenceAlgorithm == "" {
		c.ReferenceAlgorithm = d.ReferenceAlgorithm
	}
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
}

// Validate checks field consistency.
func (c *Config) Validate() error {
	if c.Matcher != "brute-force" && c.Matcher != "flann" {
		return fmt.Errorf("unknown matcher %q", c.Matcher)
	}
	if c.RansacThreshold <= 0 {
		return fmt.Errorf("ransac_threshold must be positive, got %v", c.RansacThreshold)
	}
	if c.Alpha <= 0 {
		return fmt.Errorf("alpha must be positive, got %v", c.Alpha)
	}
	for category, sizes := range c.Windows {
		switch category {
		case "small", "medium", "large":
		default:
			return fmt.Errorf("unknown size category %q in windows", category)
		}
		if err := imaging.ValidateWindowSizes(sizes); err != nil {
			return fmt.Errorf("windows for %s: %w", category, err)
		}
	}
	return nil
}

// WindowTable converts the category-keyed window map to the detection
// layer's typed table. Missing categories fall back to the default
// window set at lookup time.
func (c *Config) WindowTable() map[imaging.SizeCategory][]int {
	if len(c.Windows) == 0 {
		return nil
	}
	out := make(map[imaging.SizeCategory][]int, len(c.Windows))
	for name, sizes := range c.Windows {
		var cat imaging.SizeCategory
		switch name {
		case "small":
			cat = imaging.SizeSmall
		case "medium":
			cat = imaging.SizeMedium
		case "large":
			cat = imaging.SizeLarge
		default:
			continue
		}
		out[cat] = append([]int(nil), sizes...)
	}
	return out
}

// WantsDetector reports whether the named algorithm is in the sweep.
func (c *Config) WantsDetector(name string) bool {
	if len(c.Detectors) == 0 {
		return true
	}
	for _, d := range c.Detectors {
		if d == name {
			return true
		}
	}
	return false
}

// WantsSet reports whether the named dataset directory is in the sweep.
func (c *Config) WantsSet(name string) bool {
	if len(c.Sets) == 0 {
		return true
	}
	for _, s := range c.Sets {
		if s == name {
			return true
		}
	}
	return false
}
