// Package ftptool is a higher-level layer over a raw FTP control
// connection: a stateful session that tracks the working directory,
// resolves remote paths, walks remote directory trees lazily, and mirrors
// whole subtrees between a local filesystem and a remote server.
//
// # Overview
//
// The wire protocol lives behind the Transport interface; the production
// transport (used by Connect) is backed by github.com/jlaffaye/ftp, and
// any other implementation can be supplied through NewSession. The local
// side of file conveniences and mirroring goes through a billy.Filesystem,
// so tests and embedders can substitute an in-memory filesystem.
//
// # Connecting
//
//	s, err := ftptool.Connect("ftp.example.com", "user", "secret")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Quit()
//
// FTPS works through the same options as plain connections:
//
//	s, err := ftptool.Connect("ftp.example.com", "user", "secret",
//	    ftptool.WithExplicitTLS(&tls.Config{ServerName: "ftp.example.com"}),
//	)
//
// # The working directory
//
// The session caches the server's working directory lazily: the first
// CurrentDirectory call issues one PWD, later calls are free until the
// directory changes. SetCurrentDirectory always follows its CWD with a
// PWD and caches the literal reply, because the protocol does not define
// what a CWD reply says and servers normalize paths in their own ways.
//
// # Listing and walking
//
// ListDir partitions one directory's listing into subdirectory and file
// names, preserving server order. Walk produces the whole tree lazily,
// depth-first and pre-order, one listing per directory:
//
//	w := s.Walk("/a_dir")
//	for w.Next() {
//	    f := w.Frame()
//	    fmt.Printf("%s has file(s) %s\n", f.Dir, strings.Join(f.Files, ", "))
//	}
//	if err := w.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// Removing names from a frame's Subdirs before the next Next call prunes
// those subtrees from the walk:
//
//	for w.Next() {
//	    f := w.Frame()
//	    f.Subdirs = slices.DeleteFunc(f.Subdirs, func(d string) bool {
//	        return strings.HasPrefix(d, "other_")
//	    })
//	}
//
// # File proxies
//
// Remote files are addressed through FileProxy handles with three
// transfer forms each way: streams (Upload/Download), byte slices
// (UploadBytes/DownloadBytes), and local files
// (UploadFromFile/DownloadToFile).
//
//	f, _ := s.FileProxy("/a_dir/foo")
//	data, err := f.DownloadBytes()
//
// Rename returns a new proxy for the new path; the old proxy keeps
// addressing the old path and is logically dead after a successful
// rename.
//
// # Mirroring
//
// MirrorToLocal and MirrorToRemote synchronize whole subtrees, one-way
// and additively: directories are created as needed, files are created
// or overwritten, nothing is ever deleted on the destination. Both
// process each directory before descending, so an interrupted mirror
// leaves a valid partial tree that the next run completes.
//
//	err := s.MirrorToLocal("/a_dir", "my_copy_of_a_dir")
//	err = s.MirrorToRemote("my_copy_of_a_dir", "/a_dir")
//
// # Errors
//
// Failures carry their role in the taxonomy: *RemoteStateError (server
// state unobtainable, working-directory cache dropped),
// *RemoteOperationError (a mutation the server rejected; unwraps to the
// *textproto.Error reply), *TransferError (a stream died mid-transfer;
// partial data stays put), and *PathError (malformed input, no network
// involved). Nothing is retried automatically.
package ftptool
