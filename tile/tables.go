package tile

import "github.com/swen-ui/swen/ir"

// MaxPaints caps the per-frame paint table.
const MaxPaints = 1024

// MaxClips caps the per-frame clip table.
const MaxClips = 256

// paintTable deduplicates paint keys with linear probing. Entries are
// stored densely so the snapshot exposes them as a plain slice; the
// probe array maps hash slots to dense indices.
type paintTable struct {
	slots   [MaxPaints]int16
	entries []ir.PaintKey
}

func newPaintTable() *paintTable {
	t := &paintTable{entries: make([]ir.PaintKey, 0, MaxPaints)}
	t.reset()
	return t
}

func (t *paintTable) reset() {
	for i := range t.slots {
		t.slots[i] = -1
	}
	t.entries = t.entries[:0]
}

// intern returns the dense index of the key, inserting if new.
func (t *paintTable) intern(k ir.PaintKey) (uint16, error) {
	slot := int(k.Hash() % MaxPaints)
	for probes := 0; probes < MaxPaints; probes++ {
		idx := t.slots[slot]
		if idx < 0 {
			if len(t.entries) >= MaxPaints {
				return 0, ErrPaintTableOverflow
			}
			dense := int16(len(t.entries))
			t.entries = append(t.entries, k)
			t.slots[slot] = dense
			return uint16(dense), nil
		}
		if t.entries[idx].Eql(k) {
			return uint16(idx), nil
		}
		slot = (slot + 1) % MaxPaints
	}
	return 0, ErrPaintTableOverflow
}

func (t *paintTable) items() []ir.PaintKey {
	return t.entries
}

// clipTable mirrors paintTable for clip keys.
type clipTable struct {
	slots   [MaxClips]int16
	entries []ir.ClipKey
}

func newClipTable() *clipTable {
	t := &clipTable{entries: make([]ir.ClipKey, 0, MaxClips)}
	t.reset()
	return t
}

func (t *clipTable) reset() {
	for i := range t.slots {
		t.slots[i] = -1
	}
	t.entries = t.entries[:0]
}

func (t *clipTable) intern(k ir.ClipKey) (uint16, error) {
	slot := int(k.Hash() % MaxClips)
	for probes := 0; probes < MaxClips; probes++ {
		idx := t.slots[slot]
		if idx < 0 {
			if len(t.entries) >= MaxClips {
				return 0, ErrClipTableOverflow
			}
			dense := int16(len(t.entries))
			t.entries = append(t.entries, k)
			t.slots[slot] = dense
			return uint16(dense), nil
		}
		if t.entries[idx].Eql(k) {
			return uint16(idx), nil
		}
		slot = (slot + 1) % MaxClips
	}
	return 0, ErrClipTableOverflow
}

func (t *clipTable) items() []ir.ClipKey {
	return t.entries
}
