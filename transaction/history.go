package transaction

import (
	"fmt"
	"reflect"

	"github.com/datatrails/go-datatrails-common/logger"
)

// Transactor is implemented by objects that can be captured in a
// transaction. The bytes are only ever read back by the same object type.
type Transactor interface {
	MarshalTransaction() ([]byte, error)
	UnmarshalTransaction(data []byte) error
}

type change struct {
	obj    Transactor
	before []byte
	after  []byte
}

type entry struct {
	label   string
	changes []change
	index   map[Transactor]int
}

// restore applies the before or after state of each change. Before states
// are applied newest first.
func (e *entry) restore(after bool) error {
	if after {
		for _, c := range e.changes {
			if err := c.obj.UnmarshalTransaction(c.after); err != nil {
				return fmt.Errorf("redo %q: %w", e.label, err)
			}
		}
		return nil
	}
	for i := len(e.changes) - 1; i >= 0; i-- {
		c := e.changes[i]
		if err := c.obj.UnmarshalTransaction(c.before); err != nil {
			return fmt.Errorf("undo %q: %w", e.label, err)
		}
	}
	return nil
}

// History is an undo/redo stack. It is not safe for concurrent use.
type History struct {
	Opts Options
	Log  logger.Logger

	open *entry
	undo []*entry
	redo []*entry
}

func NewHistory(log logger.Logger, opts ...Option) *History {
	return &History{
		Opts: NewOptions(opts...),
		Log:  log,
	}
}

// Begin opens a transaction. Only one may be open at a time.
func (h *History) Begin(label string) error {
	if h.open != nil {
		return fmt.Errorf("begin %q while %q is open: %w", label, h.open.label, ErrTransactionOpen)
	}
	h.open = &entry{label: label, index: map[Transactor]int{}}
	h.Log.Debugf("transaction begin: %s", label)
	return nil
}

// Modify captures the state of obj before it is changed. Calling it again
// for the same object within a transaction is a no-op. obj must be non nil
// and comparable, normally a pointer.
func (h *History) Modify(obj Transactor) error {
	if h.open == nil {
		return ErrNoTransaction
	}
	if obj == nil || !reflect.TypeOf(obj).Comparable() {
		return fmt.Errorf("%T: %w", obj, ErrNotComparable)
	}
	if _, ok := h.open.index[obj]; ok {
		return nil
	}
	before, err := obj.MarshalTransaction()
	if err != nil {
		return err
	}
	h.open.index[obj] = len(h.open.changes)
	h.open.changes = append(h.open.changes, change{obj: obj, before: before})
	return nil
}

// Commit records the after state of every modified object and pushes the
// transaction on the undo stack. The redo stack is cleared. A transaction
// that modified nothing is discarded.
func (h *History) Commit() error {
	if h.open == nil {
		return ErrNoTransaction
	}
	e := h.open
	for i := range e.changes {
		after, err := e.changes[i].obj.MarshalTransaction()
		if err != nil {
			return err
		}
		e.changes[i].after = after
	}
	h.open = nil
	if len(e.changes) == 0 {
		h.Log.Debugf("transaction empty: %s", e.label)
		return nil
	}
	e.index = nil

	h.undo = append(h.undo, e)
	clear(h.redo)
	h.redo = h.redo[:0]
	if drop := len(h.undo) - h.Opts.MaxDepth; drop > 0 {
		h.Log.Infof("undo history full, dropping %d oldest", drop)
		clear(h.undo[:drop])
		h.undo = h.undo[drop:]
	}
	h.Log.Debugf("transaction commit: %s (%d objects)", e.label, len(e.changes))
	return nil
}

// Cancel restores every object modified in the open transaction and
// discards it.
func (h *History) Cancel() error {
	if h.open == nil {
		return ErrNoTransaction
	}
	e := h.open
	h.open = nil
	h.Log.Debugf("transaction cancel: %s", e.label)
	return e.restore(false)
}

// Undo reverts the most recent committed transaction.
func (h *History) Undo() error {
	if h.open != nil {
		return ErrTransactionOpen
	}
	if len(h.undo) == 0 {
		return ErrNothingToUndo
	}
	e := h.undo[len(h.undo)-1]
	if err := e.restore(false); err != nil {
		return err
	}
	h.undo[len(h.undo)-1] = nil
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, e)
	h.Log.Debugf("undo: %s", e.label)
	return nil
}

// Redo reapplies the most recently undone transaction.
func (h *History) Redo() error {
	if h.open != nil {
		return ErrTransactionOpen
	}
	if len(h.redo) == 0 {
		return ErrNothingToRedo
	}
	e := h.redo[len(h.redo)-1]
	if err := e.restore(true); err != nil {
		return err
	}
	h.redo[len(h.redo)-1] = nil
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, e)
	h.Log.Debugf("redo: %s", e.label)
	return nil
}

func (h *History) CanUndo() bool { return h.open == nil && len(h.undo) > 0 }
func (h *History) CanRedo() bool { return h.open == nil && len(h.redo) > 0 }

// UndoLabel is the label of the transaction Undo would revert.
func (h *History) UndoLabel() string {
	if len(h.undo) == 0 {
		return ""
	}
	return h.undo[len(h.undo)-1].label
}

func (h *History) RedoLabel() string {
	if len(h.redo) == 0 {
		return ""
	}
	return h.redo[len(h.redo)-1].label
}

// Len is the number of transactions available to undo.
func (h *History) Len() int { return len(h.undo) }

// InTransaction reports whether Begin has been called without a matching
// Commit or Cancel.
func (h *History) InTransaction() bool { return h.open != nil }
