package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// buildMask combines --mask and --flag into a mask over n channels.
func buildMask(n int) ([]bool, error) {
	mask := make([]bool, n)
	if maskFile != "" {
		fromFile, err := readMask(maskFile, n)
		if err != nil {
			return nil, err
		}
		copy(mask, fromFile)
	}
	if maskChans != "" {
		chans, err := parseChannels(maskChans, n)
		if err != nil {
			return nil, err
		}
		for _, c := range chans {
			mask[c] = true
		}
	}
	return mask, nil
}

// readMask reads a JSON list of flagged channel numbers, or a JSON list of
// n booleans.
func readMask(path string, n int) ([]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var flags []bool
	if err := json.Unmarshal(data, &flags); err == nil {
		if len(flags) == 0 {
			return make([]bool, n), nil
		}
		if len(flags) != n {
			return nil, fmt.Errorf("mask %s has %d entries, want %d", path, len(flags), n)
		}
		return flags, nil
	}

	var chans []int
	if err := json.Unmarshal(data, &chans); err != nil {
		return nil, fmt.Errorf("mask %s: %w", path, err)
	}
	mask := make([]bool, n)
	for _, c := range chans {
		if c < 0 || c >= n {
			return nil, fmt.Errorf("mask %s: channel %d out of range [0, %d)", path, c, n)
		}
		mask[c] = true
	}
	return mask, nil
}

// parseChannels parses a list such as "3,10-12" into channel numbers.
func parseChannels(list string, n int) ([]int, error) {
	var chans []int
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("bad channel %q", part)
		}
		to := from
		if isRange {
			if to, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, fmt.Errorf("bad channel range %q", part)
			}
		}
		if from > to || from < 0 || to >= n {
			return nil, fmt.Errorf("channel range %q outside [0, %d)", part, n)
		}
		for c := from; c <= to; c++ {
			chans = append(chans, c)
		}
	}
	return chans, nil
}

// flaggedChannels lists the indices set in mask.
func flaggedChannels(mask []bool) []int {
	chans := make([]int, 0)
	for i, m := range mask {
		if m {
			chans = append(chans, i)
		}
	}
	return chans
}
