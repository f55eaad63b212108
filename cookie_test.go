package moodle2pdf

import (
	"errors"
	"testing"
)

func TestDecodeSessionCookie(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		arg       string
		cookie    string
		wantValue string
		wantFound bool
	}{
		{
			name:      "session cookie first",
			arg:       sessionCookiesB64,
			cookie:    DefaultCookieName,
			wantValue: "abc123",
			wantFound: true,
		},
		{
			name:      "value containing equals",
			arg:       "YT0xOyBNb29kbGVTZXNzaW9uPXg9eTsgYj0y", // a=1; MoodleSession=x=y; b=2
			cookie:    DefaultCookieName,
			wantValue: "x=y",
			wantFound: true,
		},
		{
			name:      "empty value is found",
			arg:       "TW9vZGxlU2Vzc2lvbj0=", // MoodleSession=
			cookie:    DefaultCookieName,
			wantValue: "",
			wantFound: true,
		},
		{
			name:      "unpadded input",
			arg:       "TW9vZGxlU2Vzc2lvbj1hYmM", // MoodleSession=abc
			cookie:    DefaultCookieName,
			wantValue: "abc",
			wantFound: true,
		},
		{
			name:      "URL alphabet",
			arg:       "TW9vZGxlU2Vzc2lvbj3_Pz4=", // MoodleSession=\xff?>
			cookie:    DefaultCookieName,
			wantValue: "\xff?>",
			wantFound: true,
		},
		{
			name:      "surrounding whitespace",
			arg:       "  " + sessionCookiesB64 + "\t",
			cookie:    DefaultCookieName,
			wantValue: "abc123",
			wantFound: true,
		},
		{
			name:      "custom cookie name",
			arg:       sessionCookiesB64,
			cookie:    "MOODLEID1_",
			wantValue: "xyz",
			wantFound: true,
		},
		{
			name:      "cookie absent",
			arg:       otherCookiesB64,
			cookie:    DefaultCookieName,
			wantFound: false,
		},
		{
			name:      "name is case sensitive",
			arg:       sessionCookiesB64,
			cookie:    "moodlesession",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			value, found, err := DecodeSessionCookie(tt.arg, tt.cookie)
			if err != nil {
				t.Fatalf("DecodeSessionCookie() unexpected error: %v", err)
			}
			if found != tt.wantFound {
				t.Errorf("found = %v, want %v", found, tt.wantFound)
			}
			if value != tt.wantValue {
				t.Errorf("value = %q, want %q", value, tt.wantValue)
			}
		})
	}
}

func TestDecodeSessionCookie_InvalidBase64(t *testing.T) {
	t.Parallel()

	_, _, err := DecodeSessionCookie("!!!not base64!!!", DefaultCookieName)
	if !errors.Is(err, ErrCookieDecode) {
		t.Errorf("error = %v, want ErrCookieDecode", err)
	}
	if !errors.Is(err, ErrConfig) {
		t.Errorf("error = %v, want ErrConfig", err)
	}
}
