// Package plan walks the phonetic inventory and produces the ordered list of
// generation tasks. Target paths are derived deterministically from
// sanitized glyphs, example text and romanization so a later run computes
// the same paths and can skip work already on disk.
package plan
