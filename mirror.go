package ftptool

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// MirrorOption adjusts a single mirror operation.
type MirrorOption func(*mirrorConfig)

type mirrorConfig struct {
	dotfiles bool
}

// WithDotfiles makes MirrorToRemote upload dotfiles (names starting with
// ".") instead of skipping them. Skipping is the default because some FTP
// daemons reject dotfile names outright.
func WithDotfiles() MirrorOption {
	return func(c *mirrorConfig) {
		c.dotfiles = true
	}
}

// MirrorToLocal downloads the remote tree rooted at remoteSrc into
// localDst on the session's local filesystem. The sync is one-way and
// additive: missing local directories are created, files are created or
// overwritten, and nothing absent from the remote side is ever deleted
// locally.
//
// The tree is processed in pre-order — each directory is created and its
// files downloaded before any subdirectory is entered — so an aborted
// mirror leaves a valid partial prefix of the tree that a later run
// completes. The first failed listing or transfer aborts the remainder.
func (s *Session) MirrorToLocal(remoteSrc, localDst string) error {
	src, err := s.resolveRemote(remoteSrc)
	if err != nil {
		return err
	}
	if err := checkPath(localDst); err != nil {
		return err
	}
	dst := strings.TrimRight(localDst, "/")

	w := s.Walk(src)
	for w.Next() {
		frame := w.Frame()
		cur := s.fs.Join(dst, relativeTo(src, frame.Dir))

		if err := s.ensureLocalDir(cur); err != nil {
			return err
		}
		s.logger.Debug("ftptool: mirroring to local", "remote", frame.Dir, "local", cur)

		for _, name := range frame.Files {
			proxy, err := s.FileProxy(Resolve(frame.Dir, name))
			if err != nil {
				return err
			}
			if err := proxy.DownloadToFile(s.fs.Join(cur, name)); err != nil {
				return err
			}
		}
	}
	return w.Err()
}

// MirrorToRemote uploads the local tree rooted at localSrc into remoteDst,
// the mirror image of MirrorToLocal: one-way, additive, pre-order, with
// remote directories ensured via MakeDirs before their files upload.
// Dotfiles are skipped unless WithDotfiles is given; symbolic links are
// never uploaded.
func (s *Session) MirrorToRemote(localSrc, remoteDst string, opts ...MirrorOption) error {
	var cfg mirrorConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := checkPath(localSrc); err != nil {
		return err
	}
	dst, err := s.resolveRemote(remoteDst)
	if err != nil {
		return err
	}
	if !cfg.dotfiles {
		for _, seg := range splitSegments(dst) {
			if strings.HasPrefix(seg, ".") {
				return &PathError{Path: dst, Reason: "destination contains a dotfile segment while dotfiles are skipped"}
			}
		}
	}

	src := strings.TrimRight(localSrc, "/")
	w := newLocalWalker(s.fs, src)
	for w.Next() {
		frame := w.Frame()

		if !cfg.dotfiles {
			frame.Subdirs = withoutDotfiles(frame.Subdirs)
			frame.Files = withoutDotfiles(frame.Files)
		}

		cur := Resolve(dst, relativeTo(src, frame.Dir))
		if err := s.MakeDirs(cur); err != nil {
			return err
		}
		s.logger.Debug("ftptool: mirroring to remote", "local", frame.Dir, "remote", cur)

		for _, name := range frame.Files {
			proxy, err := s.FileProxy(Resolve(cur, name))
			if err != nil {
				return err
			}
			if err := proxy.UploadFromFile(s.fs.Join(frame.Dir, name)); err != nil {
				return err
			}
		}
	}
	return w.Err()
}

// ensureLocalDir creates dir if it is absent. An existing non-directory
// at the path is an error.
func (s *Session) ensureLocalDir(dir string) error {
	info, err := s.fs.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return fmt.Errorf("ftptool: local path %s exists and is not a directory", dir)
	}
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ftptool: create local directory: %w", err)
	}
	return nil
}

// relativeTo returns dir relative to root. The walkers only produce dirs
// inside their root, so a plain prefix strip suffices.
func relativeTo(root, dir string) string {
	rel := strings.TrimPrefix(dir, root)
	return strings.TrimPrefix(rel, "/")
}

func withoutDotfiles(names []string) []string {
	kept := names[:0]
	for _, name := range names {
		if !strings.HasPrefix(name, ".") {
			kept = append(kept, name)
		}
	}
	return kept
}

// localWalker walks the local filesystem with the same depth-first,
// pre-order, prunable contract as Walker, so both mirror directions share
// one traversal shape.
type localWalker struct {
	fs    billy.Filesystem
	stack []string
	frame *WalkFrame
	err   error
}

func newLocalWalker(fs billy.Filesystem, root string) *localWalker {
	return &localWalker{fs: fs, stack: []string{root}}
}

func (w *localWalker) Next() bool {
	if w.err != nil {
		return false
	}

	if w.frame != nil {
		for i := len(w.frame.Subdirs) - 1; i >= 0; i-- {
			w.stack = append(w.stack, w.fs.Join(w.frame.Dir, w.frame.Subdirs[i]))
		}
	}

	if len(w.stack) == 0 {
		w.frame = nil
		return false
	}
	dir := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]

	infos, err := w.fs.ReadDir(dir)
	if err != nil {
		w.frame = nil
		w.err = fmt.Errorf("ftptool: list local directory %s: %w", dir, err)
		return false
	}

	frame := &WalkFrame{Dir: dir}
	for _, info := range infos {
		switch {
		case info.IsDir():
			frame.Subdirs = append(frame.Subdirs, info.Name())
		case info.Mode()&os.ModeSymlink != 0:
			// Symlinks are neither files nor descent targets.
		default:
			frame.Files = append(frame.Files, info.Name())
		}
	}
	w.frame = frame
	return true
}

func (w *localWalker) Frame() *WalkFrame {
	return w.frame
}

func (w *localWalker) Err() error {
	return w.err
}
