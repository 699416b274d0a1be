package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// uiMode is the value of --ui.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch m := uiMode(strings.ToLower(strings.TrimSpace(value))); m {
	case "":
		return uiModeAuto, nil
	case uiModeAuto, uiModeOn, uiModeOff:
		return m, nil
	}
	return "", fmt.Errorf("--ui must be auto, on or off, got %q", value)
}

// shouldUseTUI reports whether the progress view is drawn on w. In auto
// mode that requires w to be a terminal.
func shouldUseTUI(mode uiMode, w io.Writer) bool {
	if mode != uiModeAuto {
		return mode == uiModeOn
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}
