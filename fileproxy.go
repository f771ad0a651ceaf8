package ftptool

import (
	"bytes"
	"fmt"
	"io"
)

// FileProxy is a handle identifying one remote file: a (session, path)
// pair. It is an identity, not an open descriptor — no server resource is
// held between operations, and several proxies may address the same
// remote path.
//
// The path is fixed at construction. Rename does not update the proxy in
// place; it returns a fresh proxy for the new path and the original keeps
// addressing the old, now nonexistent one (operations on it will fail
// with a *RemoteOperationError).
type FileProxy struct {
	session *Session
	path    string
}

// Path returns the absolute remote path this proxy addresses.
func (f *FileProxy) Path() string {
	return f.path
}

// Download streams the remote file into w. This is the primitive the
// other download forms build on; wrap w in a ProgressWriter to observe
// transfer progress.
func (f *FileProxy) Download(w io.Writer) error {
	dst := f.session.limiter.Writer(w)
	if err := f.session.transport.Retrieve(f.path, dst); err != nil {
		return wrapTransfer("download", "retr", f.path, err)
	}
	return nil
}

// Upload streams r into the remote file, creating or overwriting it.
func (f *FileProxy) Upload(r io.Reader) error {
	src := f.session.limiter.Reader(r)
	if err := f.session.transport.Store(f.path, src); err != nil {
		return wrapTransfer("upload", "stor", f.path, err)
	}
	return nil
}

// DownloadBytes downloads the remote file and returns its contents.
func (f *FileProxy) DownloadBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Download(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UploadBytes uploads data as the remote file's new contents.
func (f *FileProxy) UploadBytes(data []byte) error {
	return f.Upload(bytes.NewReader(data))
}

// DownloadToFile downloads the remote file into localPath on the
// session's local filesystem. The local file is closed on every exit
// path; on a failed transfer any partially written local data is left in
// place for the caller to retry or remove.
func (f *FileProxy) DownloadToFile(localPath string) error {
	file, err := f.session.fs.Create(localPath)
	if err != nil {
		return fmt.Errorf("ftptool: create local file: %w", err)
	}

	downloadErr := f.Download(file)
	closeErr := file.Close()

	if downloadErr != nil {
		return downloadErr
	}
	if closeErr != nil {
		return fmt.Errorf("ftptool: close local file: %w", closeErr)
	}
	return nil
}

// UploadFromFile uploads the local file at localPath as the remote file's
// new contents. The local file is closed on every exit path.
func (f *FileProxy) UploadFromFile(localPath string) error {
	file, err := f.session.fs.Open(localPath)
	if err != nil {
		return fmt.Errorf("ftptool: open local file: %w", err)
	}

	uploadErr := f.Upload(file)
	closeErr := file.Close()

	if uploadErr != nil {
		return uploadErr
	}
	if closeErr != nil {
		return fmt.Errorf("ftptool: close local file: %w", closeErr)
	}
	return nil
}

// Rename renames the remote file and returns a new proxy for the renamed
// file. Relative targets resolve against the file's parent directory, so
// the common case moves the file within its directory:
//
//	f, _ := s.FileProxy("/a_dir/hello_world")
//	f, err = f.Rename("foobar") // now addresses /a_dir/foobar
//
// The receiver is left unchanged and keeps addressing the old path;
// treat it as logically dead after a successful rename.
func (f *FileProxy) Rename(newName string) (*FileProxy, error) {
	if err := checkPath(newName); err != nil {
		return nil, err
	}

	target := Resolve(parentDir(f.path), newName)
	if err := f.session.transport.Rename(f.path, target); err != nil {
		return nil, &RemoteOperationError{Op: "rename", Path: f.path, Err: err}
	}
	return &FileProxy{session: f.session, path: target}, nil
}

// Delete removes the remote file. Deleting a directory or a missing path
// fails with a *RemoteOperationError.
func (f *FileProxy) Delete() error {
	if err := f.session.transport.Delete(f.path); err != nil {
		return &RemoteOperationError{Op: "dele", Path: f.path, Err: err}
	}
	return nil
}
