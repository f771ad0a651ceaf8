package ftptool

import (
	"fmt"
	"io"
	"net"
	"strconv"

	"github.com/jlaffaye/ftp"
)

// netTransport is the production Transport, backed by jlaffaye/ftp. It is
// constructed by Connect and never used directly by callers; custom
// transports go through NewSession instead.
type netTransport struct {
	conn *ftp.ServerConn
}

// dialTransport establishes the control connection described by cfg.
func dialTransport(host string, cfg *dialConfig) (*netTransport, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(cfg.port))

	var opts []ftp.DialOption
	if cfg.timeout > 0 {
		opts = append(opts, ftp.DialWithTimeout(cfg.timeout))
	}
	switch cfg.tlsMode {
	case tlsModeExplicit:
		opts = append(opts, ftp.DialWithExplicitTLS(cfg.tlsConfig))
	case tlsModeImplicit:
		opts = append(opts, ftp.DialWithTLS(cfg.tlsConfig))
	}

	conn, err := ftp.Dial(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("ftptool: dial %s: %w", addr, err)
	}
	return &netTransport{conn: conn}, nil
}

func (t *netTransport) Login(user, password string) error {
	return t.conn.Login(user, password)
}

func (t *netTransport) ChangeDir(path string) error {
	return t.conn.ChangeDir(path)
}

func (t *netTransport) CurrentDir() (string, error) {
	return t.conn.CurrentDir()
}

func (t *netTransport) MakeDir(path string) error {
	return t.conn.MakeDir(path)
}

func (t *netTransport) RemoveDir(path string) error {
	return t.conn.RemoveDir(path)
}

func (t *netTransport) Delete(path string) error {
	return t.conn.Delete(path)
}

func (t *netTransport) Rename(from, to string) error {
	return t.conn.Rename(from, to)
}

func (t *netTransport) ListDir(path string) ([]Entry, error) {
	raw, err := t.conn.List(path)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(raw))
	for _, e := range raw {
		if e.Name == "." || e.Name == ".." {
			continue
		}
		entry := Entry{Name: e.Name}
		switch e.Type {
		case ftp.EntryTypeFolder:
			entry.Type = EntryTypeDir
		case ftp.EntryTypeLink:
			entry.Type = EntryTypeLink
		default:
			entry.Type = EntryTypeFile
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (t *netTransport) Retrieve(path string, w io.Writer) error {
	resp, err := t.conn.Retr(path)
	if err != nil {
		return err
	}

	_, copyErr := io.Copy(w, resp)

	// Always drain the data connection and read the completion reply.
	closeErr := resp.Close()

	if copyErr != nil {
		return copyErr
	}
	return closeErr
}

func (t *netTransport) Store(path string, r io.Reader) error {
	return t.conn.Stor(path, r)
}

func (t *netTransport) Quit() error {
	return t.conn.Quit()
}

// Close ends the connection. jlaffaye/ftp exposes no abrupt teardown on an
// established ServerConn, so Close sends the QUIT as well.
func (t *netTransport) Close() error {
	return t.conn.Quit()
}
