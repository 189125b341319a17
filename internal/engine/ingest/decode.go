package ingest

import (
	"errors"

	"go.trai.ch/intake/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeText turns raw bytes into text. A UTF-8 or UTF-16 byte order mark
// selects the encoding and is stripped; without one the bytes are read as UTF-8.
func decodeText(raw []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return "", errors.Join(domain.ErrIOFailure, zerr.Wrap(err, "failed to decode text"))
	}
	return string(out), nil
}
