package ftptool_test

import (
	"bytes"
	"fmt"
	"io"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"

	"github.com/bloggse/ftptool"
)

// fakeTransport is an in-memory FTP server state machine implementing
// ftptool.Transport. It records every command it receives so tests can
// assert exact round-trip counts, and surfaces rejections as
// *textproto.Error like the production transport does.
type fakeTransport struct {
	cwd   string
	dirs  map[string][]string // dir path -> ordered child names
	files map[string][]byte
	calls []string

	listErr map[string]error // dir path -> forced listing failure
	retrErr map[string]error // file path -> forced download stream failure
	storErr map[string]error // file path -> forced upload stream failure

	closed bool
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		cwd:     "/",
		dirs:    map[string][]string{"/": nil},
		files:   map[string][]byte{},
		listErr: map[string]error{},
		retrErr: map[string]error{},
		storErr: map[string]error{},
	}
}

func protoErr(code int, format string, args ...any) error {
	return &textproto.Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func (ft *fakeTransport) log(format string, args ...any) {
	ft.calls = append(ft.calls, fmt.Sprintf(format, args...))
}

// count returns how many recorded commands start with op.
func (ft *fakeTransport) count(op string) int {
	n := 0
	for _, c := range ft.calls {
		if c == op || strings.HasPrefix(c, op+" ") {
			n++
		}
	}
	return n
}

func (ft *fakeTransport) isDir(p string) bool {
	_, ok := ft.dirs[p]
	return ok
}

func parentAndBase(p string) (string, string) {
	i := strings.LastIndex(p, "/")
	if i == 0 {
		return "/", p[1:]
	}
	return p[:i], p[i+1:]
}

// addDir creates a directory and any missing ancestors, test setup only
// (not recorded in the command log).
func (ft *fakeTransport) addDir(p string) {
	if p == "/" || ft.isDir(p) {
		return
	}
	parent, base := parentAndBase(p)
	ft.addDir(parent)
	ft.dirs[p] = nil
	ft.dirs[parent] = append(ft.dirs[parent], base)
}

// addFile creates a file and its ancestors, test setup only.
func (ft *fakeTransport) addFile(p string, data []byte) {
	parent, base := parentAndBase(p)
	ft.addDir(parent)
	if _, ok := ft.files[p]; !ok {
		ft.dirs[parent] = append(ft.dirs[parent], base)
	}
	ft.files[p] = data
}

func (ft *fakeTransport) removeName(dir, name string) {
	kept := ft.dirs[dir][:0]
	for _, n := range ft.dirs[dir] {
		if n != name {
			kept = append(kept, n)
		}
	}
	ft.dirs[dir] = kept
}

func (ft *fakeTransport) Login(user, password string) error {
	ft.log("login %s", user)
	return nil
}

func (ft *fakeTransport) ChangeDir(p string) error {
	ft.log("cwd %s", p)
	if !ft.isDir(p) {
		return protoErr(550, "%s: no such directory", p)
	}
	ft.cwd = p
	return nil
}

func (ft *fakeTransport) CurrentDir() (string, error) {
	ft.log("pwd")
	return ft.cwd, nil
}

func (ft *fakeTransport) MakeDir(p string) error {
	ft.log("mkd %s", p)
	parent, base := parentAndBase(p)
	if !ft.isDir(parent) {
		return protoErr(550, "%s: parent does not exist", p)
	}
	if ft.isDir(p) {
		return protoErr(550, "%s: already exists", p)
	}
	if _, ok := ft.files[p]; ok {
		return protoErr(550, "%s: already exists", p)
	}
	ft.dirs[p] = nil
	ft.dirs[parent] = append(ft.dirs[parent], base)
	return nil
}

func (ft *fakeTransport) RemoveDir(p string) error {
	ft.log("rmd %s", p)
	if !ft.isDir(p) {
		return protoErr(550, "%s: no such directory", p)
	}
	if len(ft.dirs[p]) > 0 {
		return protoErr(550, "%s: directory not empty", p)
	}
	delete(ft.dirs, p)
	parent, base := parentAndBase(p)
	ft.removeName(parent, base)
	return nil
}

func (ft *fakeTransport) Delete(p string) error {
	ft.log("dele %s", p)
	if _, ok := ft.files[p]; !ok {
		return protoErr(550, "%s: no such file", p)
	}
	delete(ft.files, p)
	parent, base := parentAndBase(p)
	ft.removeName(parent, base)
	return nil
}

func (ft *fakeTransport) Rename(from, to string) error {
	ft.log("rename %s %s", from, to)
	data, ok := ft.files[from]
	if !ok {
		return protoErr(550, "%s: no such file", from)
	}
	toParent, toBase := parentAndBase(to)
	if !ft.isDir(toParent) {
		return protoErr(550, "%s: no such directory", toParent)
	}
	delete(ft.files, from)
	fromParent, fromBase := parentAndBase(from)
	ft.removeName(fromParent, fromBase)
	if _, existed := ft.files[to]; !existed {
		ft.dirs[toParent] = append(ft.dirs[toParent], toBase)
	}
	ft.files[to] = data
	return nil
}

func (ft *fakeTransport) ListDir(p string) ([]ftptool.Entry, error) {
	ft.log("list %s", p)
	if err := ft.listErr[p]; err != nil {
		return nil, err
	}
	if !ft.isDir(p) {
		return nil, protoErr(550, "%s: no such directory", p)
	}

	var entries []ftptool.Entry
	for _, name := range ft.dirs[p] {
		child := p + "/" + name
		if p == "/" {
			child = "/" + name
		}
		e := ftptool.Entry{Name: name, Type: ftptool.EntryTypeFile}
		if ft.isDir(child) {
			e.Type = ftptool.EntryTypeDir
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (ft *fakeTransport) Retrieve(p string, w io.Writer) error {
	ft.log("retr %s", p)
	if err := ft.retrErr[p]; err != nil {
		return err
	}
	data, ok := ft.files[p]
	if !ok {
		return protoErr(550, "%s: no such file", p)
	}
	_, err := io.Copy(w, bytes.NewReader(data))
	return err
}

func (ft *fakeTransport) Store(p string, r io.Reader) error {
	ft.log("stor %s", p)
	if err := ft.storErr[p]; err != nil {
		return err
	}
	parent, base := parentAndBase(p)
	if !ft.isDir(parent) {
		return protoErr(550, "%s: no such directory", parent)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if _, existed := ft.files[p]; !existed {
		ft.dirs[parent] = append(ft.dirs[parent], base)
	}
	ft.files[p] = data
	return nil
}

func (ft *fakeTransport) Quit() error {
	ft.log("quit")
	ft.closed = true
	return nil
}

func (ft *fakeTransport) Close() error {
	ft.log("close")
	ft.closed = true
	return nil
}

// newTestSession wires a fake transport to a session backed by an
// in-memory local filesystem.
func newTestSession(t *testing.T, ft *fakeTransport, opts ...ftptool.Option) (*ftptool.Session, billy.Filesystem) {
	t.Helper()
	fs := memfs.New()
	s, err := ftptool.NewSession(ft, append([]ftptool.Option{ftptool.WithLocalFS(fs)}, opts...)...)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s, fs
}

// seedSampleTree builds the documentation tree:
//
//	/a_dir/{other_dir/{hello}, some_dir/{}} with files foo, bar
func seedSampleTree(ft *fakeTransport) {
	ft.addDir("/a_dir/other_dir")
	ft.addDir("/a_dir/some_dir")
	ft.addFile("/a_dir/foo", []byte(`This is the file "foo".`))
	ft.addFile("/a_dir/bar", []byte(`This is the file "bar".`))
	ft.addFile("/a_dir/other_dir/hello", []byte("Hello world!"))
}
