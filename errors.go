package ftptool

import (
	"errors"
	"fmt"
	"net/textproto"
)

// RemoteStateError indicates that the server's reported state could not be
// obtained: a PWD after a directory change failed, or a directory listing
// could not be read. After a RemoteStateError from SetCurrentDirectory the
// session's working-directory cache is left unset, so the next read asks
// the server again instead of trusting a stale value.
type RemoteStateError struct {
	// Op is the operation that needed the state ("pwd", "cwd", "list").
	Op string

	// Err is the underlying transport error.
	Err error
}

func (e *RemoteStateError) Error() string {
	return fmt.Sprintf("ftptool: %s: cannot determine remote state: %v", e.Op, e.Err)
}

func (e *RemoteStateError) Unwrap() error { return e.Err }

// RemoteOperationError indicates that a single remote mutation (MKD, RMD,
// DELE, RNFR/RNTO, or a transfer the server rejected with a reply code)
// failed. The server's reply is available by unwrapping to
// *textproto.Error when the transport surfaces reply codes that way.
type RemoteOperationError struct {
	// Op is the rejected command ("mkd", "rmd", "dele", "rename",
	// "retr", "stor", "login").
	Op string

	// Path is the remote path the operation addressed.
	Path string

	// Err is the underlying transport error.
	Err error
}

func (e *RemoteOperationError) Error() string {
	return fmt.Sprintf("ftptool: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *RemoteOperationError) Unwrap() error { return e.Err }

// TransferError indicates that a data transfer failed mid-stream, on the
// network or on the local side. Partially written destination data is not
// rolled back; the caller decides whether to retry or delete.
type TransferError struct {
	// Direction is "download" or "upload".
	Direction string

	// Path is the remote path being transferred.
	Path string

	// Err is the underlying stream error.
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("ftptool: %s %s: transfer failed: %v", e.Direction, e.Path, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// PathError indicates malformed path input. It is produced locally,
// without any network round trip.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("ftptool: invalid path %q: %s", e.Path, e.Reason)
}

// wrapTransfer classifies a failed transfer. A *textproto.Error means the
// server rejected the command with a reply code before or after the data
// phase; anything else failed mid-stream.
func wrapTransfer(direction, op, path string, err error) error {
	var pe *textproto.Error
	if errors.As(err, &pe) {
		return &RemoteOperationError{Op: op, Path: path, Err: err}
	}
	return &TransferError{Direction: direction, Path: path, Err: err}
}
