package netx

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultipart_Encode_FieldsAndFiles(t *testing.T) {
	m := NewMultipart().
		AddField("folder", "avatars").
		AddFile("file", "me.png", strings.NewReader("png-bytes"))

	body, contentType, err := m.Encode()
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	r := multipart.NewReader(body, params["boundary"])

	p, err := r.NextPart()
	require.NoError(t, err)
	require.Equal(t, "folder", p.FormName())
	v, _ := io.ReadAll(p)
	require.Equal(t, "avatars", string(v))

	p, err = r.NextPart()
	require.NoError(t, err)
	require.Equal(t, "file", p.FormName())
	require.Equal(t, "me.png", p.FileName())
	v, _ = io.ReadAll(p)
	require.Equal(t, "png-bytes", string(v))

	_, err = r.NextPart()
	require.ErrorIs(t, err, io.EOF)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestMultipart_Encode_PropagatesReaderError(t *testing.T) {
	_, _, err := NewMultipart().AddFile("file", "x.bin", failingReader{}).Encode()
	require.ErrorContains(t, err, "copy file part file")
	require.ErrorContains(t, err, "disk gone")
}
