package ftptool

import "io"

// ProgressReader wraps an io.Reader and reports progress via a callback.
// Wrap an upload source with it to observe transfer progress:
//
//	proxy.Upload(&ftptool.ProgressReader{
//	    Reader:   file,
//	    Callback: func(n, total int64) { fmt.Printf("\r%d bytes", total) },
//	})
type ProgressReader struct {
	// Reader is the underlying reader.
	Reader io.Reader

	// Callback receives the size of each chunk and the running total.
	Callback func(n, total int64)

	total int64
}

// Read implements io.Reader.
func (pr *ProgressReader) Read(p []byte) (int, error) {
	n, err := pr.Reader.Read(p)
	pr.total += int64(n)
	if pr.Callback != nil && n > 0 {
		pr.Callback(int64(n), pr.total)
	}
	return n, err
}

// ProgressWriter wraps an io.Writer and reports progress via a callback.
// Wrap a download sink with it to observe transfer progress.
type ProgressWriter struct {
	// Writer is the underlying writer.
	Writer io.Writer

	// Callback receives the size of each chunk and the running total.
	Callback func(n, total int64)

	total int64
}

// Write implements io.Writer.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.total += int64(n)
	if pw.Callback != nil && n > 0 {
		pw.Callback(int64(n), pw.total)
	}
	return n, err
}
