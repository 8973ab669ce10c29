// Package transaction provides a bounded undo/redo history over objects that
// can snapshot themselves.
//
// A transaction is opened with Begin, every object about to change is
// registered with Modify, and Commit records the after states. Undo restores
// the before states, Redo the after states. Curves in the curve package
// implement Transactor, and their snapshots carry the key handle map, so
// handles held by callers are valid again after an undo.
package transaction
