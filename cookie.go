package moodle2pdf

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DefaultCookieName is the cookie Moodle uses to identify a session.
const DefaultCookieName = "MoodleSession"

// cookieSeparator separates pairs in a raw Cookie header.
const cookieSeparator = "; "

// Cookie is a single browser cookie scoped to a domain.
type Cookie struct {
	Name   string
	Value  string
	Domain string
}

// DecodeSessionCookie decodes a base64 Cookie header and extracts the value
// of the cookie called name. found is false when the header has no such
// cookie; that is not an error at this point.
func DecodeSessionCookie(arg, name string) (value string, found bool, err error) {
	header, err := decodeBase64(strings.TrimSpace(arg))
	if err != nil {
		return "", false, configError(fmt.Errorf("%w: %v", ErrCookieDecode, err))
	}

	for _, pair := range strings.Split(strings.TrimSpace(header), cookieSeparator) {
		key, val, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		if key == name {
			return val, true, nil
		}
	}
	return "", false, nil
}

// decodeBase64 accepts padded and unpadded input in both alphabets.
func decodeBase64(s string) (string, error) {
	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}

	var firstErr error
	for _, enc := range encodings {
		b, err := enc.DecodeString(s)
		if err == nil {
			return string(b), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return "", firstErr
}
