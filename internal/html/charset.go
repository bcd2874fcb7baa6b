package html

import (
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

// ReadUTF8 reads an HTML document and converts it to UTF-8.
// A charset named in contentType or a BOM wins. Otherwise input that is
// already valid UTF-8 is kept as is, and anything else is decoded with the
// encoding sniffed from its <meta> declaration.
func ReadUTF8(r io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}

	enc, name, certain := charset.DetermineEncoding(data, contentType)
	if !certain && utf8.Valid(data) {
		return string(data), nil
	}
	if enc == encoding.Nop {
		return string(data), nil
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s document: %w", name, err)
	}

	return string(decoded), nil
}
