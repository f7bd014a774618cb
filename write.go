package locgen

import (
	"os"
	"path/filepath"
)

// writeFileAtomic replaces path with data. The bytes go to a temporary file
// in the same directory which is renamed over path only once fully written,
// so readers never observe a partially written artifact.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ioError("creating directory", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return ioError("creating temporary file for", path, err)
	}
	tmpPath := tmp.Name()

	// Use a flag so the deferred cleanup removes the temp file on any error.
	success := false
	defer func() {
		if !success {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return ioError("writing", path, err)
	}
	if err := tmp.Sync(); err != nil {
		return ioError("syncing", path, err)
	}
	if err := tmp.Close(); err != nil {
		return ioError("closing", path, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return ioError("setting permissions on", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return ioError("replacing", path, err)
	}
	success = true
	return nil
}
