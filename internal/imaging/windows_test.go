package imaging

import (
	"reflect"
	"testing"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		want   SizeCategory
	}{
		{"snapshot", 602, 400, SizeSmall},
		{"just under 1MP", 999, 1000, SizeSmall},
		{"XGA", 1024, 768, SizeMedium},
		{"portrait FHD", 1080, 1920, SizeMedium},
		{"12MP", 3072, 4096, SizeLarge},
		{"exactly 3MP", 1500, 2000, SizeLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.w, tt.h); got != tt.want {
				t.Errorf("Categorize(%d,%d) = %s, want %s", tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestWindowSizesFor(t *testing.T) {
	table := map[SizeCategory][]int{
		SizeSmall: {32, 40},
		SizeLarge: {256, 512},
	}

	if got := WindowSizesFor(640, 480, table); !reflect.DeepEqual(got, []int{32, 40}) {
		t.Errorf("small override: got %v", got)
	}
	// Medium has no entry and falls back to the default set.
	if got := WindowSizesFor(1024, 768, table); !reflect.DeepEqual(got, DefaultWindowSizes) {
		t.Errorf("medium fallback: got %v", got)
	}

	// Returned slices must be copies, not aliases of the table.
	got := WindowSizesFor(640, 480, table)
	got[0] = 999
	if table[SizeSmall][0] != 32 {
		t.Error("WindowSizesFor aliased the configured table")
	}
}

func TestParseWindowSizes(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"16,32,64", []int{16, 32, 64}, false},
		{" 16 , 32 ", []int{16, 32}, false},
		{"", nil, true},
		{"16,abc", nil, true},
		{"16,1", nil, true}, // sizes must exceed 1
		{"0", nil, true},
	}
	for _, tt := range tests {
		got, err := ParseWindowSizes(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseWindowSizes(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseWindowSizes(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatWindowSizes(t *testing.T) {
	if got := FormatWindowSizes([]int{16, 32, 64}); got != "16,32,64" {
		t.Errorf("FormatWindowSizes = %q", got)
	}
	if got := FormatWindowSizes(nil); got != "" {
		t.Errorf("FormatWindowSizes(nil) = %q, want empty", got)
	}
}
