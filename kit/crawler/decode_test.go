package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func TestDecodeText(t *testing.T) {
	utf16be, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().String("héllo")
	require.NoError(t, err)

	tests := []struct {
		name    string
		data    string
		want    string
		wantErr string
	}{
		{name: "empty", data: "", want: ""},
		{name: "ascii", data: "plain", want: "plain"},
		{name: "multibyte utf8", data: "日本語", want: "日本語"},
		{name: "utf8 bom stripped", data: "\xef\xbb\xbfhi", want: "hi"},
		{name: "utf16 with bom", data: utf16be, want: "héllo"},
		{name: "utf16 surrogate pair", data: "\xff\xfe\x3d\xd8\x00\xde", want: "\U0001F600"},
		{name: "utf16 unpaired high surrogate", data: "\xff\xfe\x01\xd8\x41\x00\x9a\x03", wantErr: "invalid UTF-16 at byte 2"},
		{name: "utf16 lone low surrogate", data: "\xfe\xff\xdc\x00", wantErr: "invalid UTF-16 at byte 2"},
		{name: "utf16 odd length", data: "\xff\xfe\x41\x00\x42", wantErr: "invalid UTF-16 at byte 4"},
		{name: "invalid utf8", data: "ab\xffcd", wantErr: "invalid UTF-8 at byte 2"},
		{name: "truncated sequence", data: "ok\xe6\x97", wantErr: "invalid UTF-8 at byte 2"},
		{name: "nul byte", data: "a\x00b", wantErr: "NUL byte at offset 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeText([]byte(tt.data))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
