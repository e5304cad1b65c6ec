package hgf

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseObservations parses a comma-, whitespace- or newline-separated list
// of binary outcomes. Returns nil, nil for empty input.
func ParseObservations(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) == 0 {
		return nil, nil
	}
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid observation '%s': %w", f, err)
		}
		if v != 0 && v != 1 {
			return nil, fmt.Errorf("invalid observation '%s': outcomes must be 0 or 1", f)
		}
		out = append(out, v)
	}
	return out, nil
}

// LoadObservations reads a binary observation sequence from a file of
// comma- or newline-separated 0/1 values.
func LoadObservations(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read observations: %w", err)
	}
	obs, err := ParseObservations(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return obs, nil
}

// ParseIgnoreList parses a comma-separated list of 1-based trial indices.
// Returns nil, nil for empty input strings.
func ParseIgnoreList(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid trial index '%s': %w", p, err)
		}
		if v < 1 {
			return nil, fmt.Errorf("invalid trial index %d: indices are 1-based", v)
		}
		out = append(out, v)
	}
	return out, nil
}
