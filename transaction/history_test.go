package transaction

import (
	"errors"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-keycurves/curve"
	"github.com/forestrie/go-keycurves/keyhandle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistory(t *testing.T, opts ...Option) *History {
	t.Helper()
	logger.New("NOOP")
	t.Cleanup(logger.OnExit)
	return NewHistory(logger.Sugar.WithServiceName(t.Name()), opts...)
}

func newCurve() *curve.RichCurve {
	return curve.NewRichCurve(curve.WithHandleGenerator(keyhandle.NewSequential()))
}

func TestHistory_UndoRedoRestoresHandles(t *testing.T) {
	h := newTestHistory(t)
	c := newCurve()
	k0 := c.AddKey(0, 0)
	k1 := c.AddKey(1, 1)

	require.NoError(t, h.Begin("delete first"))
	require.NoError(t, h.Modify(c))
	require.True(t, c.DeleteKey(k0))
	require.NoError(t, h.Commit())

	assert.False(t, c.IsKeyHandleValid(k0))
	assert.Equal(t, 0, c.GetIndex(k1))
	assert.True(t, h.CanUndo())
	assert.Equal(t, "delete first", h.UndoLabel())

	require.NoError(t, h.Undo())
	assert.Equal(t, 0, c.GetIndex(k0))
	assert.Equal(t, 1, c.GetIndex(k1))
	assert.False(t, h.CanUndo())
	assert.True(t, h.CanRedo())
	assert.Equal(t, "delete first", h.RedoLabel())

	require.NoError(t, h.Redo())
	assert.False(t, c.IsKeyHandleValid(k0))
	assert.Equal(t, 0, c.GetIndex(k1))
	assert.Equal(t, 1, h.Len())
}

func TestHistory_ModifyIsCapturedOnce(t *testing.T) {
	h := newTestHistory(t)
	c := newCurve()
	c.AddKey(0, 0)

	require.NoError(t, h.Begin("two edits"))
	require.NoError(t, h.Modify(c))
	c.AddKey(1, 1)
	require.NoError(t, h.Modify(c))
	c.AddKey(2, 2)
	require.NoError(t, h.Commit())

	require.NoError(t, h.Undo())
	assert.Equal(t, 1, c.NumKeys())
}

func TestHistory_MultipleObjects(t *testing.T) {
	h := newTestHistory(t)
	a := newCurve()
	b := curve.NewIntegralCurve(curve.WithHandleGenerator(keyhandle.NewSequential()))

	require.NoError(t, h.Begin("both"))
	require.NoError(t, h.Modify(a))
	require.NoError(t, h.Modify(b))
	ka := a.AddKey(1, 1)
	kb := b.AddKey(1, 1)
	require.NoError(t, h.Commit())

	require.NoError(t, h.Undo())
	assert.Equal(t, 0, a.NumKeys())
	assert.Equal(t, 0, b.NumKeys())

	require.NoError(t, h.Redo())
	assert.Equal(t, 0, a.GetIndex(ka))
	assert.Equal(t, 0, b.GetIndex(kb))
}

func TestHistory_Cancel(t *testing.T) {
	h := newTestHistory(t)
	c := newCurve()
	k := c.AddKey(0, 5)

	require.NoError(t, h.Begin("edit"))
	require.NoError(t, h.Modify(c))
	c.SetKeyValue(k, 9, false)
	require.NoError(t, h.Cancel())

	assert.Equal(t, 5.0, c.GetKeyValue(k))
	assert.False(t, h.InTransaction())
	assert.False(t, h.CanUndo())
}

func TestHistory_CommitClearsRedo(t *testing.T) {
	h := newTestHistory(t)
	c := newCurve()

	for _, label := range []string{"one", "two"} {
		require.NoError(t, h.Begin(label))
		require.NoError(t, h.Modify(c))
		c.AddKey(float64(c.NumKeys()), 0)
		require.NoError(t, h.Commit())
	}
	require.NoError(t, h.Undo())
	require.True(t, h.CanRedo())

	require.NoError(t, h.Begin("three"))
	require.NoError(t, h.Modify(c))
	c.AddKey(10, 0)
	require.NoError(t, h.Commit())

	assert.False(t, h.CanRedo())
	assert.ErrorIs(t, h.Redo(), ErrNothingToRedo)
	assert.Equal(t, "three", h.UndoLabel())
	assert.Equal(t, 2, h.Len())
}

func TestHistory_EmptyTransactionDiscarded(t *testing.T) {
	h := newTestHistory(t)
	require.NoError(t, h.Begin("nothing"))
	require.NoError(t, h.Commit())
	assert.Equal(t, 0, h.Len())
}

func TestHistory_MaxDepth(t *testing.T) {
	h := newTestHistory(t, WithMaxDepth(2))
	c := newCurve()

	for i := range 4 {
		require.NoError(t, h.Begin("add"))
		require.NoError(t, h.Modify(c))
		c.AddKey(float64(i), 0)
		require.NoError(t, h.Commit())
	}
	assert.Equal(t, 2, h.Len())

	require.NoError(t, h.Undo())
	require.NoError(t, h.Undo())
	assert.ErrorIs(t, h.Undo(), ErrNothingToUndo)
	assert.Equal(t, 2, c.NumKeys())
}

func TestHistory_StateErrors(t *testing.T) {
	h := newTestHistory(t)
	c := newCurve()

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"modify without begin", func() error { return h.Modify(c) }, ErrNoTransaction},
		{"commit without begin", h.Commit, ErrNoTransaction},
		{"cancel without begin", h.Cancel, ErrNoTransaction},
		{"undo with nothing", h.Undo, ErrNothingToUndo},
		{"redo with nothing", h.Redo, ErrNothingToRedo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), tt.want)
		})
	}

	require.NoError(t, h.Begin("open"))
	assert.ErrorIs(t, h.Begin("again"), ErrTransactionOpen)
	assert.ErrorIs(t, h.Undo(), ErrTransactionOpen)
	assert.ErrorIs(t, h.Redo(), ErrTransactionOpen)
	assert.False(t, h.CanUndo())
}

type valueTransactor struct{ b []byte }

func (v valueTransactor) MarshalTransaction() ([]byte, error) { return v.b, nil }
func (v valueTransactor) UnmarshalTransaction([]byte) error   { return nil }

type failingTransactor struct{ fail bool }

func (f *failingTransactor) MarshalTransaction() ([]byte, error) { return []byte{1}, nil }
func (f *failingTransactor) UnmarshalTransaction([]byte) error {
	if f.fail {
		return errors.New("boom")
	}
	return nil
}

func TestHistory_ModifyRejectsNilAndUncomparable(t *testing.T) {
	h := newTestHistory(t)
	require.NoError(t, h.Begin("x"))
	assert.ErrorIs(t, h.Modify(valueTransactor{}), ErrNotComparable)
	assert.ErrorIs(t, h.Modify(nil), ErrNotComparable)
}

func TestHistory_UndoFailureKeepsStacks(t *testing.T) {
	h := newTestHistory(t)
	f := &failingTransactor{}

	require.NoError(t, h.Begin("x"))
	require.NoError(t, h.Modify(f))
	require.NoError(t, h.Commit())

	f.fail = true
	assert.Error(t, h.Undo())
	assert.Equal(t, 1, h.Len())
	assert.False(t, h.CanRedo())
}
