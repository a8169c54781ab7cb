// Package terminal provides direct ANSI terminal control with cell-level
// diff rendering.
//
// Features:
//   - Cell buffer with per-cell dirty tracking and wide-character placement
//   - Differential flush emitting only changed cells, with cursor and style
//     state caching to minimize escape output
//   - True color (24-bit), 256-color, 16-color and monochrome tiers with
//     one-directional color degradation
//   - Grapheme-cluster aware text drawing (combining marks, East Asian wide)
//   - Raw mode / alternate screen lifecycle with guaranteed restoration on
//     exit and panic paths
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI
// sequences. Target environments: Linux, macOS, BSDs with xterm-compatible
// terminals.
package terminal
