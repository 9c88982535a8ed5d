package value

// A Blob is an opaque byte string, distinct from a String: it carries no
// text encoding and is never subject to the default-string short forms.
type Blob []byte
