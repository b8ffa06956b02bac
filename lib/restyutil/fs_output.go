package restyutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	devenv "roeval/dev/env"

	"github.com/go-resty/resty/v2"
)

// InstrumentOutput receives a formatted dump of every HTTP exchange.
type InstrumentOutput interface {
	Write(id string, contents string)
}

// FilesystemOutput writes each exchange into its own file in a directory.
type FilesystemOutput struct {
	directory string
}

// NewFilesystemOutput creates (if needed) the directory `dir`, which may start
// with <dev_state>.
func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	dir, err := devenv.ResolvePath(dir)
	if err != nil {
		return FilesystemOutput{}, err
	}
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) Directory() string {
	return o.directory
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write message info file", "id", id, "err", err)
	}
}

// InstrumentClient writes every request made by the client (and its response
// if there was one) to output. a nil output makes this a no-op.
func InstrumentClient(client *resty.Client, output InstrumentOutput) {
	if output == nil {
		return
	}

	var idcounter uint64
	nextId := func(method string) string {
		n := atomic.AddUint64(&idcounter, 1)
		return fmt.Sprintf("%03d-%s.txt", n, method)
	}

	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		output.Write(nextId(res.Request.Method), formatHttpMessage(res))
		return nil
	})
	client.OnError(func(req *resty.Request, err error) {
		output.Write(
			nextId(req.Method),
			fmt.Sprintf("%s\n\n---- ERROR ----\n\n%s", formatHttpRequest(req), err.Error()),
		)
	})
}
