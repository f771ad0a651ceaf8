package ftptool

import "io"

// EntryType classifies a directory listing entry.
type EntryType int

const (
	// EntryTypeFile is a regular file.
	EntryTypeFile EntryType = iota

	// EntryTypeDir is a directory.
	EntryTypeDir

	// EntryTypeLink is a symbolic link. Links appear in neither half of a
	// ListDir partition and are never descended into.
	EntryTypeLink
)

// Entry is a single name from a directory listing, typed by the server.
// Entries are snapshots; they hold no live link back to the server.
type Entry struct {
	Name string
	Type EntryType
}

// Transport issues raw FTP control-connection commands and returns parsed
// replies. It is the seam between this package and the wire protocol: the
// session layer never builds protocol commands itself.
//
// Every method blocks the calling goroutine until the server replies.
// Implementations should surface server rejections as errors unwrapping to
// *textproto.Error carrying the reply code, which lets the session layer
// distinguish a rejected command from a broken data stream. The production
// implementation returned by Connect does this; so must test fakes that
// want faithful error classification.
//
// A Transport is not safe for concurrent use. One session owns one
// transport; multiple sessions need independent connections.
type Transport interface {
	// Login authenticates the control connection.
	Login(user, password string) error

	// ChangeDir changes the server's working directory (CWD).
	ChangeDir(path string) error

	// CurrentDir reports the server's working directory (PWD).
	CurrentDir() (string, error)

	// MakeDir creates a single directory (MKD). It fails if the parent is
	// missing or the name already exists.
	MakeDir(path string) error

	// RemoveDir removes an empty directory (RMD).
	RemoveDir(path string) error

	// Delete removes a file (DELE).
	Delete(path string) error

	// Rename renames a file or directory (RNFR/RNTO).
	Rename(from, to string) error

	// ListDir lists one directory, preserving the server's ordering.
	// "." and ".." entries are not included.
	ListDir(path string) ([]Entry, error)

	// Retrieve streams the remote file at path into w (RETR).
	Retrieve(path string, w io.Writer) error

	// Store streams r into the remote file at path, creating or
	// overwriting it (STOR).
	Store(path string, r io.Reader) error

	// Quit ends the session gracefully (QUIT) and closes the connection.
	Quit() error

	// Close drops the connection without a QUIT.
	Close() error
}
