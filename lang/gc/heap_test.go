package gc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/yarrow/lang/gc"
	"github.com/mna/yarrow/lang/value"
)

type fakeRoots struct {
	values []value.Value
}

func (f *fakeRoots) EachRoot(mark func(value.Value)) {
	for _, v := range f.values {
		mark(v)
	}
}

func TestAllocateStringInterns(t *testing.T) {
	h := gc.New()
	a := h.AllocateString("hello")
	b := h.AllocateString("hello")
	assert.Same(t, a, b)

	c := h.AllocateString("world")
	assert.NotSame(t, a, c)
}

func TestCollectFreesUnreachable(t *testing.T) {
	h := gc.New()
	roots := &fakeRoots{}
	h.SetRoots(roots)

	kept := h.AllocateString("kept")
	garbage := h.AllocateString("garbage")
	roots.values = []value.Value{value.Object(kept)}

	h.Collect()

	require.Equal(t, 1, h.Collections)
	assert.Same(t, kept, h.AllocateString("kept"))
	// "garbage" was swept, including its intern-table entry, so allocating
	// the same content again must mint a fresh object.
	fresh := h.AllocateString("garbage")
	assert.Equal(t, "garbage", fresh.Chars)
	assert.NotSame(t, garbage, fresh)
}

func TestClassAndInstanceTraceReachesFields(t *testing.T) {
	h := gc.New()
	roots := &fakeRoots{}
	h.SetRoots(roots)

	name := h.AllocateString("Point")
	cls := h.NewClass(name)
	inst := h.NewInstance(cls)
	fieldName := h.AllocateString("x")
	inst.Fields.Put(fieldName, value.Number(3))

	roots.values = []value.Value{value.Object(inst)}
	h.Collect()

	assert.Equal(t, "Point", cls.Name.Chars)
	// The class name and the field-name key were traced, so they are still
	// the interned objects for their content.
	assert.Same(t, name, h.AllocateString("Point"))
	assert.Same(t, fieldName, h.AllocateString("x"))
	v, ok := inst.Fields.Get(fieldName)
	require.True(t, ok)
	assert.Equal(t, float64(3), v.AsNumber())
}
