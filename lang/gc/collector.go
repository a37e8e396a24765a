package gc

import (
	"golang.org/x/exp/slices"

	"github.com/mna/yarrow/lang/value"
)

// Collect runs one full tri-color mark-sweep cycle: mark every root and
// everything reachable from it, then sweep the intrusive object list,
// freeing anything left white. It grows the next trigger by
// growthFactor so collections become less frequent as the live set settles.
func (h *Heap) Collect() {
	h.markRoots()
	h.traceGray()
	h.sweep()

	h.nextGC = h.allocated * growthFactor
	if h.nextGC < minThreshold {
		h.nextGC = minThreshold
	}
	h.Collections++
}

func (h *Heap) markRoots() {
	if h.gray == nil {
		h.gray = make([]value.HeapObject, 0, grayStackInit)
	} else {
		h.gray = h.gray[:0]
	}
	if h.roots == nil {
		return
	}
	h.roots.EachRoot(h.markValue)
}

// markValue is the callback every HeapObject.Trace and every Roots.EachRoot
// call invokes for each Value it holds a reference to.
func (h *Heap) markValue(v value.Value) {
	if !v.IsObject() || v.Obj == nil {
		return
	}
	h.markObject(v.Obj)
}

func (h *Heap) markObject(o value.HeapObject) {
	if value.Marked(o) {
		return
	}
	value.SetMarked(o, true)
	h.gray = append(h.gray, o)
}

func (h *Heap) traceGray() {
	for len(h.gray) > 0 {
		last := len(h.gray) - 1
		obj := h.gray[last]
		h.gray = h.gray[:last]
		obj.Trace(h.markValue)
	}
}

func (h *Heap) sweep() {
	var prev value.HeapObject
	obj := h.head
	for obj != nil {
		next := value.NextObject(obj)
		if value.Marked(obj) {
			value.SetMarked(obj, false)
			prev = obj
			obj = next
			continue
		}
		if prev == nil {
			h.head = next
		} else {
			value.SetNextObject(prev, next)
		}
		switch o := obj.(type) {
		case *value.ObjString:
			h.strings.Delete(o.Chars)
			h.allocated -= sizeofString(o.Chars)
		case *value.Closure:
			h.allocated -= sizeofObjHeader + int64(8*len(o.Upvalues))
		default:
			h.allocated -= sizeofObjHeader
		}
		obj = next
	}
	h.compactGray()
}

// compactGray drops the gray stack's backing array back to a small
// capacity after a large cycle so a one-off deep trace doesn't pin memory
// for the lifetime of the heap.
func (h *Heap) compactGray() {
	if cap(h.gray) > 4*grayStackInit {
		h.gray = slices.Clip(h.gray[:0])
	}
}
