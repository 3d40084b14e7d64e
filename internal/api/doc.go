// Package api serves a read-only HTTP view of a card deck: statistics and the
// current due queue. Cards are registered from the configured paths on every
// request, so the responses always reflect the files on disk.
package api
