package config

import "time"

// defaultDebounce matches spec's documented 500ms default.
const defaultDebounce = 500 * time.Millisecond

// DebounceDuration parses Debounce, falling back to 500ms.
func (w WatchConfig) DebounceDuration() time.Duration {
	return ParseDuration(w.Debounce, defaultDebounce)
}
