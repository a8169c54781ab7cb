package terminal

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// ClusterWidth classifies the terminal display width of a single grapheme
// cluster: 0 for combining/zero-width content, 1 for narrow, 2 for wide
// (East Asian wide, emoji). Unrecognized code points count as narrow.
// There is no error path.
func ClusterWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		return 0
	}
	if w > 2 {
		// Multi-glyph clusters (e.g. flag sequences measured rune-wise)
		// still occupy at most two columns on real terminals.
		return 2
	}
	return w
}

// graphemes iterates the grapheme clusters of s, calling fn with each
// cluster and its display width. Iteration stops when fn returns false.
func graphemes(s string, fn func(cluster string, width int) bool) {
	state := -1
	var cluster string
	for len(s) > 0 {
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		if !fn(cluster, ClusterWidth(cluster)) {
			return
		}
	}
}
