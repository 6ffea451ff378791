// Package fields implements the declarative field-layout system
// described in spec.md §4.2: an ordered list of fixed or
// length-prefixed fields declared once, at package-init time, that
// yields per-field offsets and two aggregate constants —
// FixedPartLength and MaxLength — computed left to right. There is no
// macro stage in Go, so what the original expresses as compile-time
// code generation becomes a builder that runs at declaration time and
// panics on misuse, matching spec.md §9's "wrong usage ... is a
// declaration-time error."
package fields

import "fmt"

// Kind distinguishes a fixed-width field from a length-prefixed one.
type Kind uint8

const (
	// KindFixedInt is a big-endian unsigned integer of width 1, 2, 4, 8,
	// or 16 bytes.
	KindFixedInt Kind = iota
	// KindFixedBytes is an arbitrary-length fixed byte blob (a literal
	// byte count given in place of an integer type).
	KindFixedBytes
	// KindLengthPrefixed is a prefix-width length header followed by up
	// to MaxLength bytes of payload.
	KindLengthPrefixed
)

var validIntWidths = map[int]bool{1: true, 2: true, 4: true, 8: true, 16: true}
var validPrefixWidths = map[int]bool{1: true, 2: true, 4: true, 8: true}

// Field is one resolved field descriptor: its name, its offset within
// the fixed part of the layout, its width (the prefix width for a
// length-prefixed field; its own width otherwise), and — for
// length-prefixed fields — the maximum payload length it accepts.
type Field struct {
	Name      string
	Offset    int
	Width     int
	MaxLength int
	Kind      Kind
}

// Layout is the resolved, ordered field declaration plus its two
// aggregate constants.
type Layout struct {
	Fields []Field
	// FixedPartLength is the sum of every field's own width (prefix
	// widths count for length-prefixed fields; their payload bytes do
	// not).
	FixedPartLength int
	// MaxLength is FixedPartLength plus the sum of each length-prefixed
	// field's MaxLength.
	MaxLength int
}

// ByName returns the field descriptor with the given name, or false if
// no such field was declared.
func (l *Layout) ByName(name string) (Field, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Builder accumulates field declarations in order and resolves them
// into a Layout on Build. A Builder is not safe for concurrent use;
// declarations are meant to run once, at package init.
type Builder struct {
	fields     []Field
	nextOffset int
}

// NewBuilder starts a new, empty field declaration.
func NewBuilder() *Builder {
	return &Builder{}
}

// FixedInt declares a big-endian unsigned integer field of the given
// byte width (one of 1, 2, 4, 8, 16) at the next implicit offset.
func (b *Builder) FixedInt(name string, width int) *Builder {
	return b.FixedIntAt(name, width, b.nextOffset)
}

// FixedIntAt declares a FixedInt field at an explicit offset; the next
// implicit offset resumes after this field's end.
func (b *Builder) FixedIntAt(name string, width, offset int) *Builder {
	if !validIntWidths[width] {
		panic(fmt.Sprintf("fields: %q: unsupported integer width %d (must be 1, 2, 4, 8, or 16)", name, width))
	}
	return b.add(Field{Name: name, Offset: offset, Width: width, Kind: KindFixedInt}, offset+width)
}

// FixedBytes declares an arbitrary-length fixed byte blob at the next
// implicit offset.
func (b *Builder) FixedBytes(name string, length int) *Builder {
	return b.FixedBytesAt(name, length, b.nextOffset)
}

// FixedBytesAt declares a FixedBytes field at an explicit offset.
func (b *Builder) FixedBytesAt(name string, length, offset int) *Builder {
	if length <= 0 {
		panic(fmt.Sprintf("fields: %q: fixed byte width must be positive, got %d", name, length))
	}
	return b.add(Field{Name: name, Offset: offset, Width: length, Kind: KindFixedBytes}, offset+length)
}

// LengthPrefixed declares a prefixWidth-byte length header (width one
// of 1, 2, 4, 8) followed by up to maxLength bytes of payload, at the
// next implicit offset. The payload bytes themselves are not part of
// the fixed part and do not consume offset space in later fields.
func (b *Builder) LengthPrefixed(name string, prefixWidth, maxLength int) *Builder {
	return b.LengthPrefixedAt(name, prefixWidth, maxLength, b.nextOffset)
}

// LengthPrefixedAt declares a LengthPrefixed field at an explicit
// offset.
func (b *Builder) LengthPrefixedAt(name string, prefixWidth, maxLength, offset int) *Builder {
	if !validPrefixWidths[prefixWidth] {
		panic(fmt.Sprintf("fields: %q: unsupported length-prefix width %d (must be 1, 2, 4, or 8)", name, prefixWidth))
	}
	if maxLength <= 0 {
		panic(fmt.Sprintf("fields: %q: max_length must be positive, got %d", name, maxLength))
	}
	if ceiling := addressableCeiling(prefixWidth); maxLength > ceiling {
		panic(fmt.Sprintf("fields: %q: max_length %d exceeds what a %d-byte prefix can address (%d)", name, maxLength, prefixWidth, ceiling))
	}
	return b.add(Field{Name: name, Offset: offset, Width: prefixWidth, MaxLength: maxLength, Kind: KindLengthPrefixed}, offset+prefixWidth)
}

func (b *Builder) add(f Field, nextOffset int) *Builder {
	for _, existing := range b.fields {
		if existing.Name == f.Name {
			panic(fmt.Sprintf("fields: duplicate field name %q", f.Name))
		}
	}
	b.fields = append(b.fields, f)
	b.nextOffset = nextOffset
	return b
}

// Build resolves the declaration into a Layout.
func (b *Builder) Build() *Layout {
	layout := &Layout{Fields: append([]Field(nil), b.fields...)}
	for _, f := range layout.Fields {
		layout.FixedPartLength += f.Width
		layout.MaxLength += f.Width
		if f.Kind == KindLengthPrefixed {
			layout.MaxLength += f.MaxLength
		}
	}
	return layout
}

func addressableCeiling(prefixWidth int) int {
	// 1<<(8*prefixWidth) overflows int for prefixWidth==8 on 64-bit
	// platforms only at the full 64-bit range; this wire format never
	// declares an 8-byte length prefix; it's accepted above for
	// generality but its ceiling is reported as the max int rather than
	// overflowing.
	if prefixWidth >= 8 {
		return int(^uint(0) >> 1)
	}
	bits := uint(8 * prefixWidth)
	return (1 << bits) - 1
}
