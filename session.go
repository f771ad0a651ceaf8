package ftptool

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/bloggse/ftptool/internal/rate"
)

// Session is one live, authenticated control connection plus the state
// layered on top of it: the lazily cached working directory, the local
// filesystem used by file conveniences and mirroring, and the session
// options.
//
// A Session is not safe for concurrent use. All operations are synchronous
// request/response pairs over the one control connection; callers that
// need parallelism open independent sessions.
type Session struct {
	transport  Transport
	fs         billy.Filesystem
	logger     *slog.Logger
	dial       dialConfig
	extensions map[string]string
	limiter    *rate.Limiter

	// cwd caches the server's working directory. cwdKnown gates it; the
	// pair is only ever written together. Invariant: when cwdKnown is
	// set, cwd equals the server's true working directory.
	cwd      string
	cwdKnown bool
}

// Connect dials host, authenticates, and returns a session. The default
// port is 21; see WithPort, WithTimeout, WithExplicitTLS and the other
// options for connection settings.
//
// Example:
//
//	s, err := ftptool.Connect("ftp.example.com", "user", "secret")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Quit()
func Connect(host, user, password string, opts ...Option) (*Session, error) {
	s, err := newSession(nil, opts...)
	if err != nil {
		return nil, err
	}

	tr, err := dialTransport(host, &s.dial)
	if err != nil {
		return nil, err
	}
	if err := tr.Login(user, password); err != nil {
		_ = tr.Close()
		return nil, &RemoteOperationError{Op: "login", Path: host, Err: err}
	}

	s.transport = tr
	return s, nil
}

// NewSession wraps an already connected and authenticated Transport.
// This is the entry point for custom transports and for tests.
func NewSession(t Transport, opts ...Option) (*Session, error) {
	if t == nil {
		return nil, fmt.Errorf("ftptool: nil transport")
	}
	return newSession(t, opts...)
}

func newSession(t Transport, opts ...Option) (*Session, error) {
	s := &Session{
		transport: t,
		fs:        osfs.New("."),
		logger:    slog.Default(),
		dial:      dialConfig{port: 21},
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// CurrentDirectory returns the server's working directory. The first call
// after a connect or a directory change issues one PWD; subsequent calls
// return the cached reply without a round trip.
func (s *Session) CurrentDirectory() (string, error) {
	if s.cwdKnown {
		return s.cwd, nil
	}

	dir, err := s.transport.CurrentDir()
	if err != nil {
		return "", &RemoteStateError{Op: "pwd", Err: err}
	}
	s.cwd, s.cwdKnown = dir, true
	s.logger.Debug("ftptool: cached working directory", "dir", dir)
	return dir, nil
}

// SetCurrentDirectory changes the server's working directory. Relative
// targets resolve against the current directory. After the CWD the session
// always re-reads the directory with a PWD and caches the literal server
// reply: the protocol does not standardize CWD reply text, and the server
// may normalize ".." or resolve symlinks in ways the client cannot
// predict.
//
// On failure of either round trip the error is a *RemoteStateError and the
// cache is left unset, so the next CurrentDirectory call asks the server.
func (s *Session) SetCurrentDirectory(dir string) error {
	target, err := s.resolveRemote(dir)
	if err != nil {
		return err
	}

	s.cwdKnown = false
	if err := s.transport.ChangeDir(target); err != nil {
		return &RemoteStateError{Op: "cwd", Err: err}
	}

	reply, err := s.transport.CurrentDir()
	if err != nil {
		return &RemoteStateError{Op: "pwd", Err: err}
	}
	s.cwd, s.cwdKnown = reply, true
	s.logger.Debug("ftptool: changed working directory", "dir", reply)
	return nil
}

// ListDir lists one remote directory, non-recursively, and partitions the
// result into subdirectory names and file names. The server's listing
// order is preserved in both halves. Symbolic links appear in neither.
func (s *Session) ListDir(dir string) (subdirs, files []string, err error) {
	target, err := s.resolveRemote(dir)
	if err != nil {
		return nil, nil, err
	}

	entries, err := s.transport.ListDir(target)
	if err != nil {
		return nil, nil, &RemoteStateError{Op: "list " + target, Err: err}
	}

	for _, e := range entries {
		switch e.Type {
		case EntryTypeDir:
			subdirs = append(subdirs, e.Name)
		case EntryTypeFile:
			files = append(files, e.Name)
		}
	}
	return subdirs, files, nil
}

// Mkdir creates a single remote directory. It fails with a
// *RemoteOperationError if the parent is missing or the name exists;
// see MakeDirs for the create-everything form.
func (s *Session) Mkdir(dir string) error {
	target, err := s.resolveRemote(dir)
	if err != nil {
		return err
	}
	if err := s.transport.MakeDir(target); err != nil {
		return &RemoteOperationError{Op: "mkd", Path: target, Err: err}
	}
	return nil
}

// RemoveDir removes an empty remote directory.
func (s *Session) RemoveDir(dir string) error {
	target, err := s.resolveRemote(dir)
	if err != nil {
		return err
	}
	if err := s.transport.RemoveDir(target); err != nil {
		return &RemoteOperationError{Op: "rmd", Path: target, Err: err}
	}
	return nil
}

// MakeDirs ensures dir and all of its ancestors exist, creating the
// missing ones from the root down. Existence is probed with a scoped
// change-directory (the cheapest check the protocol offers), restoring
// the original working directory whatever the outcome; a failed probe is
// the expected "absent" signal, not an error. Already existing prefixes
// are never recreated, so calling MakeDirs twice on the same path
// succeeds silently the second time without issuing any MKD.
func (s *Session) MakeDirs(dir string) error {
	target, err := s.resolveRemote(dir)
	if err != nil {
		return err
	}
	restore, err := s.CurrentDirectory()
	if err != nil {
		return err
	}

	exists, err := s.probeDir(restore, target)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	prefix := ""
	for _, seg := range splitSegments(target) {
		prefix += "/" + seg
		exists, err := s.probeDir(restore, prefix)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		s.logger.Debug("ftptool: creating directory", "dir", prefix)
		if err := s.transport.MakeDir(prefix); err != nil {
			return &RemoteOperationError{Op: "mkd", Path: prefix, Err: err}
		}
	}
	return nil
}

// probeDir reports whether dir exists by attempting to change into it,
// then restoring the working directory. A failed restore invalidates the
// cache: the server is in an unknown directory at that point.
func (s *Session) probeDir(restore, dir string) (bool, error) {
	if err := s.transport.ChangeDir(dir); err != nil {
		return false, nil
	}
	if err := s.transport.ChangeDir(restore); err != nil {
		s.cwdKnown = false
		return true, &RemoteStateError{Op: "cwd " + restore, Err: err}
	}
	return true, nil
}

// FileProxy returns a proxy for the named remote file. Relative names
// resolve against the current directory, which may cost one PWD if the
// cache is cold. The session's extension map, if any, is applied to the
// name first.
//
// Proxies are cheap identities, not open handles: constructing one does
// not touch the file, and several proxies may address the same path.
func (s *Session) FileProxy(name string) (*FileProxy, error) {
	target, err := s.resolveRemote(s.mapExtension(name))
	if err != nil {
		return nil, err
	}
	return &FileProxy{session: s, path: target}, nil
}

// mapExtension applies the session's extension rewrite to name.
func (s *Session) mapExtension(name string) string {
	for ext, repl := range s.extensions {
		if strings.HasSuffix(name, "."+ext) {
			name = name[:len(name)-len(ext)-1]
			if repl != "" {
				name += "." + repl
			}
			break
		}
	}
	return name
}

// resolveRemote validates p and resolves it to an absolute remote path.
// Absolute inputs never touch the network; relative inputs need the
// current directory as a base.
func (s *Session) resolveRemote(p string) (string, error) {
	if err := checkPath(p); err != nil {
		return "", err
	}
	if strings.HasPrefix(p, "/") {
		return Resolve("/", p), nil
	}
	base, err := s.CurrentDirectory()
	if err != nil {
		return "", err
	}
	return Resolve(base, p), nil
}

// Quit ends the session gracefully. If the QUIT exchange fails the
// connection is dropped instead, so the session is gone either way.
func (s *Session) Quit() error {
	if err := s.transport.Quit(); err != nil {
		return s.transport.Close()
	}
	return nil
}

// Close drops the connection without the closing handshake.
func (s *Session) Close() error {
	return s.transport.Close()
}
