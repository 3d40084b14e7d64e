// Package extract turns line-oriented markdown files into flashcards.
//
// A file is split into segments: every line that starts with "Q:" or "C:"
// opens a new segment, and every other line is appended to the segment being
// built. Each finished segment becomes exactly one card:
//
//	Q: What is the capital of France?
//	A: Paris
//
//	C: The capital of France is [Paris].
//
// Within a segment the last "Q:", "A:", and "C:" line of each kind wins. A
// segment with a non-empty question and answer is a basic card; otherwise a
// segment with a cloze line is a cloze card whose deletion is the first [...]
// pair; anything else is malformed.
package extract
