package kind

// Bytes is the raw byte sequence kind. Every byte sequence is valid.
//
// Resolved slices alias interner memory: they are capacity-capped so an
// append reallocates, but they must not be modified in place.
type Bytes struct{}

// Name implements Kind.
func (Bytes) Name() string { return "bytes" }

// Bytes implements Kind.
func (Bytes) Bytes(v []byte) []byte { return v }

// Validate implements Kind.
func (Bytes) Validate([]byte) error { return nil }

// FromBytes implements Kind.
func (Bytes) FromBytes(b []byte) []byte { return b[:len(b):len(b)] }
