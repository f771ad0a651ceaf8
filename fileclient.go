package ftptool

import "strings"

// FileClient layers classic get/put client semantics over a session, for
// callers that think in terms of transferring named files rather than
// proxies and mirrors.
type FileClient struct {
	*Session
}

// NewFileClient wraps an existing session.
func NewFileClient(s *Session) *FileClient {
	return &FileClient{Session: s}
}

// Get downloads the remote file source into the local file destination.
func (c *FileClient) Get(source, destination string) error {
	proxy, err := c.FileProxy(source)
	if err != nil {
		return err
	}
	return proxy.DownloadToFile(destination)
}

// Put uploads the local file source to the remote file destination.
func (c *FileClient) Put(source, destination string) error {
	proxy, err := c.FileProxy(destination)
	if err != nil {
		return err
	}
	return proxy.UploadFromFile(source)
}

// Remove deletes the remote file.
func (c *FileClient) Remove(name string) error {
	proxy, err := c.FileProxy(name)
	if err != nil {
		return err
	}
	return proxy.Delete()
}

// GetAll downloads each named remote file into the current local
// directory under its base name. The first failure aborts the rest.
func (c *FileClient) GetAll(names []string) error {
	for _, name := range names {
		if err := c.Get(name, baseName(name)); err != nil {
			return err
		}
	}
	return nil
}

// PutAll uploads each named local file under its base name, relative to
// the current remote directory. The first failure aborts the rest.
func (c *FileClient) PutAll(names []string) error {
	for _, name := range names {
		if err := c.Put(name, baseName(name)); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAll deletes each named remote file. The first failure aborts the
// rest.
func (c *FileClient) RemoveAll(names []string) error {
	for _, name := range names {
		if err := c.Remove(name); err != nil {
			return err
		}
	}
	return nil
}

// baseName returns the last segment of a slash-separated path.
func baseName(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
