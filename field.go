package solrdex

import "fmt"

// Field is a schema field descriptor: a mapping from property name to a
// JSON-compatible value, submitted verbatim to the schema endpoint.
type Field map[string]any

// FieldBuilder is a fluent builder for field descriptors. No property is
// defaulted: Build returns exactly what was set, and the engine applies
// its own per-type defaults for everything else.
type FieldBuilder struct {
	props Field
}

// NewField starts building a descriptor for the named field.
func NewField(name string) *FieldBuilder {
	return &FieldBuilder{props: Field{"name": name}}
}

// Set stores an arbitrary descriptor property.
func (b *FieldBuilder) Set(property string, value any) *FieldBuilder {
	b.props[property] = value
	return b
}

// Type sets the field type name, e.g. "pfloat" or "text_general".
func (b *FieldBuilder) Type(t string) *FieldBuilder { return b.Set("type", t) }

// Default sets the value indexed when a document omits the field.
func (b *FieldBuilder) Default(v any) *FieldBuilder { return b.Set("default", v) }

// Indexed controls whether the field can be searched.
func (b *FieldBuilder) Indexed(v bool) *FieldBuilder { return b.Set("indexed", v) }

// Stored controls whether the field value can be retrieved.
func (b *FieldBuilder) Stored(v bool) *FieldBuilder { return b.Set("stored", v) }

// DocValues enables the column-oriented DocValues representation.
func (b *FieldBuilder) DocValues(v bool) *FieldBuilder { return b.Set("docValues", v) }

// SortMissingFirst sorts documents without the field before all others.
func (b *FieldBuilder) SortMissingFirst(v bool) *FieldBuilder { return b.Set("sortMissingFirst", v) }

// SortMissingLast sorts documents without the field after all others.
func (b *FieldBuilder) SortMissingLast(v bool) *FieldBuilder { return b.Set("sortMissingLast", v) }

// MultiValued allows a document to carry multiple values for the field.
func (b *FieldBuilder) MultiValued(v bool) *FieldBuilder { return b.Set("multiValued", v) }

// Uninvertible allows building an in-memory field cache when docValues are absent.
func (b *FieldBuilder) Uninvertible(v bool) *FieldBuilder { return b.Set("uninvertible", v) }

// OmitNorms disables length normalization and index-time boosting.
func (b *FieldBuilder) OmitNorms(v bool) *FieldBuilder { return b.Set("omitNorms", v) }

// OmitTermFreqAndPositions drops term frequencies and positions from postings.
func (b *FieldBuilder) OmitTermFreqAndPositions(v bool) *FieldBuilder {
	return b.Set("omitTermFreqAndPositions", v)
}

// OmitPositions drops positions while keeping term frequencies.
func (b *FieldBuilder) OmitPositions(v bool) *FieldBuilder { return b.Set("omitPositions", v) }

// TermVectors stores the term vector of the field.
func (b *FieldBuilder) TermVectors(v bool) *FieldBuilder { return b.Set("termVectors", v) }

// TermPositions stores position information with the term vector.
func (b *FieldBuilder) TermPositions(v bool) *FieldBuilder { return b.Set("termPositions", v) }

// TermOffsets stores offset information with the term vector.
func (b *FieldBuilder) TermOffsets(v bool) *FieldBuilder { return b.Set("termOffsets", v) }

// TermPayloads stores payload information with the term vector.
func (b *FieldBuilder) TermPayloads(v bool) *FieldBuilder { return b.Set("termPayloads", v) }

// Required rejects documents that omit the field.
func (b *FieldBuilder) Required(v bool) *FieldBuilder { return b.Set("required", v) }

// UseDocValuesAsStored exposes docValues through stored-field retrieval.
func (b *FieldBuilder) UseDocValuesAsStored(v bool) *FieldBuilder {
	return b.Set("useDocValuesAsStored", v)
}

// Large lazily loads the field and caches it only when under 512 KB.
func (b *FieldBuilder) Large(v bool) *FieldBuilder { return b.Set("large", v) }

// Build validates and returns the descriptor. Name and type are the only
// required properties; nothing else is defaulted.
func (b *FieldBuilder) Build() (Field, error) {
	name, _ := b.props["name"].(string)
	if name == "" {
		return nil, fmt.Errorf("%w: field name is required", ErrValidation)
	}
	if t, _ := b.props["type"].(string); t == "" {
		return nil, fmt.Errorf("%w: field %q has no type", ErrValidation, name)
	}
	out := make(Field, len(b.props))
	for k, v := range b.props {
		out[k] = v
	}
	return out, nil
}

// MustBuild calls Build and panics on error. Intended for descriptors
// assembled from constants.
func (b *FieldBuilder) MustBuild() Field {
	f, err := b.Build()
	if err != nil {
		panic(err)
	}
	return f
}

// Ready-made builders for common semantic types. Each is a fixed
// type/flag combination callers may adjust further before Build.

// TextField is an exact-match field lowercased at index time.
func TextField(name string) *FieldBuilder {
	return NewField(name).Type("lowercase").Stored(true)
}

// StringField is an exact-match string field.
func StringField(name string) *FieldBuilder {
	return NewField(name).Type("string").OmitNorms(true).Stored(true)
}

// MultiStringField is an exact-match string field holding multiple values.
func MultiStringField(name string) *FieldBuilder {
	return NewField(name).Type("strings").OmitNorms(true).MultiValued(true).Stored(true)
}

// NumericField is a single-precision floating point field.
func NumericField(name string) *FieldBuilder {
	return NewField(name).Type("pfloat").Stored(true)
}

// DoubleField is a double-precision floating point field.
func DoubleField(name string) *FieldBuilder {
	return NewField(name).Type("pdouble").Stored(true)
}

// LongField is a 64-bit integer field.
func LongField(name string) *FieldBuilder {
	return NewField(name).Type("plong").Stored(true)
}

// FulltextField is a tokenized free-text field.
func FulltextField(name string) *FieldBuilder {
	return NewField(name).Type("text_general").Stored(true)
}

// TagField holds delimited payload tags.
func TagField(name string) *FieldBuilder {
	return NewField(name).Type("delimited_payloads_string").Stored(true)
}

// DateField holds point date values.
func DateField(name string) *FieldBuilder {
	return NewField(name).Type("pdate").Stored(true)
}
