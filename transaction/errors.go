package transaction

import "errors"

var (
	ErrNoTransaction   = errors.New("no transaction is open")
	ErrTransactionOpen = errors.New("a transaction is already open")
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrNothingToRedo   = errors.New("nothing to redo")
	ErrNotComparable   = errors.New("transactor must be non nil and comparable")
)
