package ftptool

// WalkFrame is one directory's traversal snapshot: the directory's
// absolute path and the partitioned listing taken when the walker visited
// it. Subdirs is the walker's own descent list — the consumer may remove
// names from it (or reassign a filtered slice) before the next call to
// Next, and the walker will not descend into the removed ones. Files is
// informational; the walker never reads it back.
type WalkFrame struct {
	Dir     string
	Subdirs []string
	Files   []string
}

// Walker is a lazy depth-first, pre-order traversal of a remote directory
// tree, driven by the consumer in the manner of bufio.Scanner:
//
//	w := s.Walk("/a_dir")
//	for w.Next() {
//	    f := w.Frame()
//	    fmt.Println(f.Dir, "has", len(f.Files), "file(s)")
//	}
//	if err := w.Err(); err != nil {
//	    return err
//	}
//
// Each directory costs one listing round trip, issued by Next. A listing
// failure stops the traversal; nothing is skipped silently. The walker
// does not detect cycles: a remote tree made circular by symbolic links
// will walk forever (symlink entries themselves are never descended into,
// so only server-side structures that present a cycle as plain
// directories can trigger this).
type Walker struct {
	session *Session
	stack   []string
	frame   *WalkFrame
	err     error
}

// Walk starts a traversal rooted at dir. Each call starts a fresh,
// independent traversal; the returned walker holds no state from previous
// walks. Relative roots resolve against the current directory.
func (s *Session) Walk(dir string) *Walker {
	w := &Walker{session: s}
	root, err := s.resolveRemote(dir)
	if err != nil {
		w.err = err
		return w
	}
	w.stack = append(w.stack, root)
	return w
}

// Next advances to the next directory in pre-order, listing it. It
// returns false when the traversal is exhausted or an error occurred;
// consult Err afterwards to tell the two apart.
//
// Between two Next calls the consumer may prune the current frame's
// Subdirs; descent honors whatever the slice holds when Next is called.
func (w *Walker) Next() bool {
	if w.err != nil {
		return false
	}

	// Descend from the frame the consumer just saw, leftmost subdir
	// first. Pushing in reverse keeps siblings in listing order with
	// each subtree fully visited before the next sibling.
	if w.frame != nil {
		for i := len(w.frame.Subdirs) - 1; i >= 0; i-- {
			w.stack = append(w.stack, Resolve(w.frame.Dir, w.frame.Subdirs[i]))
		}
	}

	if len(w.stack) == 0 {
		w.frame = nil
		return false
	}
	dir := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]

	subdirs, files, err := w.session.ListDir(dir)
	if err != nil {
		w.frame = nil
		w.err = err
		return false
	}
	w.frame = &WalkFrame{Dir: dir, Subdirs: subdirs, Files: files}
	return true
}

// Frame returns the directory yielded by the last successful Next. The
// frame is valid until the next call to Next.
func (w *Walker) Frame() *WalkFrame {
	return w.frame
}

// Err returns the error that stopped the walk, or nil after a complete
// traversal.
func (w *Walker) Err() error {
	return w.err
}
