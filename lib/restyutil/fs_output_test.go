package restyutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestInstrumentClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("echo:" + string(body)))
	}))
	defer server.Close()

	dir := filepath.Join(t.TempDir(), "dump")
	output, err := NewFilesystemOutput(dir)
	require.NoError(t, err)
	require.Equal(t, dir, output.Directory())

	client := resty.New().SetBaseURL(server.URL)
	InstrumentClient(client, output)

	_, err = client.R().Get("/")
	require.NoError(t, err)
	_, err = client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(`{"template":"/evaluate{?RO}"}`).
		Post("/uritemplate")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "001-GET.txt", entries[0].Name())
	require.Equal(t, "002-POST.txt", entries[1].Name())

	dump, err := os.ReadFile(filepath.Join(dir, "002-POST.txt"))
	require.NoError(t, err)
	require.Contains(t, string(dump), "---- REQUEST ----")
	require.Contains(t, string(dump), `{"template":"/evaluate{?RO}"}`)
	require.Contains(t, string(dump), "---- RESPONSE ----")
	require.Contains(t, string(dump), `echo:{"template":"/evaluate{?RO}"}`)
}

func TestInstrumentClientNilOutput(t *testing.T) {
	client := resty.New()
	InstrumentClient(client, nil)
}

func TestFormatHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Add("Accept", "text/turtle")
	headers.Add("Link", "<a>; rel=a")
	headers.Add("Link", "<b>; rel=b")
	require.Equal(t, "Accept: text/turtle\nLink: <a>; rel=a\nLink: <b>; rel=b", formatHeaders(headers))
	require.Equal(t, "", formatHeaders(http.Header{}))
}
