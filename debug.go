package cuesheet

import (
	"os"
	"strings"
	"sync"
)

// DebugEnv is the environment variable that turns on per-line debug output.
// Any value other than "", "0", "false", "off" or "no" enables it. It is
// read once per process.
const DebugEnv = "CUESHEET_DEBUG"

var (
	debugOnce    sync.Once
	debugEnabled bool
)

func debugFromEnv() bool {
	debugOnce.Do(func() {
		debugEnabled = parseDebugValue(os.Getenv(DebugEnv))
	})
	return debugEnabled
}

func parseDebugValue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "off", "no":
		return false
	default:
		return true
	}
}
