package options

import "time"

const (
	// DefaultDataDir is the base directory used when no other directory is
	// specified during initialization.
	DefaultDataDir = "."

	// CompactionThreshold is the number of stale bytes that, once exceeded,
	// triggers a synchronous compaction at the end of the Set/Remove call
	// that crossed it.
	CompactionThreshold uint64 = 1024 * 1024 // 1 MiB

	// DefaultCompactInterval is the default value of
	// Options.CompactInterval.
	DefaultCompactInterval = time.Duration(0)
)

// Holds the default configuration settings for a kvs instance.
var defaultOptions = Options{
	DataDir:             DefaultDataDir,
	CompactionThreshold: CompactionThreshold,
	CompactInterval:     DefaultCompactInterval,
}

func NewDefaultOptions() Options {
	return defaultOptions
}
