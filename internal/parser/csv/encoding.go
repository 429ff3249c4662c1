package csv

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// decodeReader wraps r with a decoder for the named text encoding. Names are
// resolved through the IANA index, so the usual aliases work ("latin1",
// "windows-1250", "iso-8859-2", ...). UTF-8 (or an empty name) passes the
// reader through unchanged.
func decodeReader(r io.Reader, name string) (io.Reader, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "", "utf-8", "utf8":
		return r, nil
	}

	enc, err := ianaindex.IANA.Encoding(n)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
