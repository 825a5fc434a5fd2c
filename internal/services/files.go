package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2/storage"

	"omal-editor/internal/logger"
)

// DefaultExtension is appended to saved names that have none.
const DefaultExtension = ".py"

// FileType is one entry of the open/save dialog filter list.
type FileType struct {
	Label     string
	Extension string // "*" matches any file
}

// DialogFileTypes lists one entry per source extension, then plain text and
// the wildcard.
func DialogFileTypes(extensions []string) []FileType {
	types := make([]FileType, 0, len(extensions)+2)
	for _, ext := range extensions {
		if ext == ".txt" {
			continue
		}
		types = append(types, FileType{Label: strings.ToUpper(strings.TrimPrefix(ext, ".")) + " files", Extension: ext})
	}
	return append(types,
		FileType{Label: "Text files", Extension: ".txt"},
		FileType{Label: "All files", Extension: "*"},
	)
}

// DialogFilter turns file types into a fyne filter. A wildcard entry means
// any file is acceptable, so no filter is returned.
func DialogFilter(types []FileType) storage.FileFilter {
	extensions := make([]string, 0, len(types))
	for _, ft := range types {
		if ft.Extension == "*" {
			return nil
		}
		extensions = append(extensions, ft.Extension)
	}
	if len(extensions) == 0 {
		return nil
	}
	return storage.NewExtensionFileFilter(extensions)
}

// IOError reports a failed load or save.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// FileService moves whole buffers between disk and memory.
type FileService struct {
	logger logger.Logger
}

func NewFileService(log logger.Logger) *FileService {
	if log == nil {
		log = logger.NewNop()
	}
	return &FileService{logger: log}
}

// Load returns the full contents of path. Nothing is returned on failure.
func (fs *FileService) Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		ioErr := &IOError{Op: "load", Path: path, Err: err}
		fs.logger.Error("Files", ioErr, nil)
		return "", ioErr
	}

	fs.logger.Info("Files", "file loaded", map[string]interface{}{
		"path":  path,
		"bytes": len(data),
	})
	return string(data), nil
}

// Save creates or truncates path and writes text. A failed write may leave
// a truncated file behind.
func (fs *FileService) Save(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		ioErr := &IOError{Op: "save", Path: path, Err: err}
		fs.logger.Error("Files", ioErr, nil)
		return ioErr
	}

	fs.logger.Info("Files", "file saved", map[string]interface{}{
		"path":  path,
		"bytes": len(text),
	})
	return nil
}

// ReadFrom returns everything r yields. name identifies the source in
// errors and logs.
func (fs *FileService) ReadFrom(r io.Reader, name string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		ioErr := &IOError{Op: "load", Path: name, Err: err}
		fs.logger.Error("Files", ioErr, nil)
		return "", ioErr
	}

	fs.logger.Info("Files", "file loaded", map[string]interface{}{
		"path":  name,
		"bytes": len(data),
	})
	return string(data), nil
}

// WriteTo writes text to w, which the caller has already opened for name.
func (fs *FileService) WriteTo(w io.Writer, name, text string) error {
	if _, err := io.WriteString(w, text); err != nil {
		ioErr := &IOError{Op: "save", Path: name, Err: err}
		fs.logger.Error("Files", ioErr, nil)
		return ioErr
	}

	fs.logger.Info("Files", "file saved", map[string]interface{}{
		"path":  name,
		"bytes": len(text),
	})
	return nil
}

// WithDefaultExtension appends ext when path has no extension.
func WithDefaultExtension(path, ext string) string {
	if ext == "" || filepath.Ext(path) != "" {
		return path
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return path + ext
}
