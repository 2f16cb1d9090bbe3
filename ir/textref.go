package ir

// InlineTextMax is the longest body copied directly into an
// instruction. Longer bodies are interned in the buffer's table and
// referenced by index.
const InlineTextMax = 64

// TextRefKind discriminates inline from interned text.
type TextRefKind uint8

const (
	// TextInline stores the body bytes in the instruction itself.
	TextInline TextRefKind = iota

	// TextInterned references the buffer's intern table.
	TextInterned
)

// TextRef is a self-contained reference to a text body.
// Draw instructions carry a TextRef instead of borrowing scene-tree
// memory.
type TextRef struct {
	Kind TextRefKind

	// Len is the inline byte count; zero for interned refs.
	Len uint8

	// Index is the intern-table index; zero for inline refs.
	Index uint32

	// Data holds the inline bytes.
	Data [InlineTextMax]byte
}

// InlineText builds an inline ref. The body must be at most
// InlineTextMax bytes; longer bodies go through Buffer.InternText.
func InlineText(body string) TextRef {
	r := TextRef{Kind: TextInline, Len: uint8(len(body))}
	copy(r.Data[:], body)
	return r
}

// InternedText builds a ref into an intern table.
func InternedText(index uint32) TextRef {
	return TextRef{Kind: TextInterned, Index: index}
}

// Resolve returns the body, reading interned refs out of table.
func (r TextRef) Resolve(table []string) string {
	if r.Kind == TextInline {
		return string(r.Data[:r.Len])
	}
	if int(r.Index) < len(table) {
		return table[r.Index]
	}
	return ""
}

// ByteLen returns the body length in bytes.
func (r TextRef) ByteLen(table []string) int {
	if r.Kind == TextInline {
		return int(r.Len)
	}
	if int(r.Index) < len(table) {
		return len(table[r.Index])
	}
	return 0
}
