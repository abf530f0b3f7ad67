package nativefs

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultEncoding is the label of the encoding used when a caller does not choose one (e.g. the CLI).
const DefaultEncoding = "utf8"

// supportedEncodings maps canonical encoding names to the codecs the layer accepts. Only 8-bit Unicode text is
// supported; other encodings are rejected even when the platform could decode them.
var supportedEncodings = map[string]supportedEncoding{
	"utf-8": {codec: unicode.UTF8, strict: encoding.UTF8Validator},
}

// supportedEncoding pairs a codec with the transformer that rejects raw content the codec would otherwise replace.
type supportedEncoding struct {
	codec  encoding.Encoding
	strict transform.Transformer
}

// Encoding is a resolved, supported text encoding.
type Encoding struct {
	name  string
	label string
	supportedEncoding
}

// LookupEncoding resolves the encoding label (e.g. "utf8", "UTF-8") into a supported Encoding.
//
// Labels follow the WHATWG encoding registry. Unknown labels and known but unsupported encodings both fail with an
// *Error carrying ErrUnsupportedEncoding.
func LookupEncoding(label string) (*Encoding, error) {
	codec, err := htmlindex.Get(label)
	if err != nil {
		return nil, newError(ErrUnsupportedEncoding, "", "", fmt.Errorf("%q: %w", label, err))
	}

	name, err := htmlindex.Name(codec)
	if err != nil {
		return nil, newError(ErrUnsupportedEncoding, "", "", fmt.Errorf("%q: %w", label, err))
	}

	s, ok := supportedEncodings[name]
	if !ok {
		return nil, newError(ErrUnsupportedEncoding, "", "", fmt.Errorf("%q (%s) is not supported", label, name))
	}
	return &Encoding{name: name, label: label, supportedEncoding: s}, nil
}

// Name returns the canonical name of the Encoding.
func (e *Encoding) Name() string {
	return e.name
}

// Label returns the label the Encoding was resolved from.
func (e *Encoding) Label() string {
	return e.label
}

// Decode converts raw file content into text. Content that is not valid in the Encoding is rejected rather than
// replaced so that a successful read is always faithful to the bytes on disk.
func (e *Encoding) Decode(b []byte) (string, error) {
	d, _, err := transform.Bytes(transform.Chain(e.strict, e.codec.NewDecoder()), b)
	if err != nil {
		return "", fmt.Errorf("content is not valid %s: %w", e.name, err)
	}
	return string(d), nil
}

// Encode converts text into the bytes to persist. Text that is not valid UTF-8 is rejected.
func (e *Encoding) Encode(s string) ([]byte, error) {
	b, _, err := transform.Bytes(transform.Chain(encoding.UTF8Validator, e.codec.NewEncoder()), []byte(s))
	if err != nil {
		return nil, fmt.Errorf("content is not representable as %s: %w", e.name, err)
	}
	return b, nil
}
