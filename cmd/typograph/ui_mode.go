package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode controls whether a directory check renders the interactive
// progress view. Auto defers to whether stdout is a terminal.
type uiMode uint8

const (
	uiAuto uiMode = iota
	uiOn
	uiOff
)

func readUIMode(value string) (uiMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return uiAuto, nil
	case "on":
		return uiOn, nil
	case "off":
		return uiOff, nil
	}
	return uiOff, fmt.Errorf("--ui must be auto, on, or off (got %q)", value)
}

func shouldUseTUI(mode uiMode) bool {
	if mode == uiAuto {
		return isTerminal(os.Stdout)
	}
	return mode == uiOn
}
