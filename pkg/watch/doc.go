// Package watch re-renders a figure when the data files behind it change.
//
// FileWatcher observes the parent directories of the watched files, so
// editors that save by writing a new file and renaming it over the old one
// are still noticed. Bursts of events for one file are collapsed into a
// single callback after the file has been quiet for the debounce interval.
//
// Replotter serializes redraws on one session: each redraw resets the
// engine, draws again from fresh temporary files and releases the files of
// the previous drawing so that long watch sessions never exhaust the
// temporary file table.
package watch
