package hgf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseObservations(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  []float64
		expectErr bool
	}{
		{"empty", "", nil, false},
		{"comma_separated", "1,0,1,1", []float64{1, 0, 1, 1}, false},
		{"newline_separated", "1\n0\n1\n", []float64{1, 0, 1}, false},
		{"mixed_separators", "1, 0\n1\t0", []float64{1, 0, 1, 0}, false},
		{"trailing_comma", "1,0,", []float64{1, 0}, false},
		{"non_binary", "1,0.5,0", nil, true},
		{"negative", "1,-1", nil, true},
		{"garbage", "1,x,0", nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseObservations(tc.input)
			if tc.expectErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tc.expected) {
				t.Fatalf("length: got %d, want %d", len(got), len(tc.expected))
			}
			for i, v := range got {
				if v != tc.expected[i] {
					t.Errorf("index %d: got %g, want %g", i, v, tc.expected[i])
				}
			}
		})
	}
}

func TestLoadObservations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "obs.csv")
	if err := os.WriteFile(path, []byte("1\n0\n0\n1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	obs, err := LoadObservations(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(obs) != 4 {
		t.Errorf("length: got %d, want 4", len(obs))
	}

	if _, err := LoadObservations(filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseIgnoreList(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  []int
		expectErr bool
	}{
		{"empty", "", nil, false},
		{"single", "3", []int{3}, false},
		{"multiple", "3,7,12", []int{3, 7, 12}, false},
		{"with_spaces", " 3 , 7 ", []int{3, 7}, false},
		{"empty_parts", "3,,7", []int{3, 7}, false},
		{"zero_index", "0,3", nil, true},
		{"negative", "-2", nil, true},
		{"garbage", "3,x", nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseIgnoreList(tc.input)
			if tc.expectErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tc.expected) {
				t.Fatalf("length: got %d, want %d", len(got), len(tc.expected))
			}
			for i, v := range got {
				if v != tc.expected[i] {
					t.Errorf("index %d: got %d, want %d", i, v, tc.expected[i])
				}
			}
		})
	}
}
