package archive

import "fmt"

// Common packaging errors.
var (
	// ErrEmptyPack is returned when a pack has no eligible files to archive.
	ErrEmptyPack = fmt.Errorf("pack contains no files to package")
)

// FileOperationError is returned for read/write failures during packaging,
// surfacing the offending path.
type FileOperationError struct {
	Path string
	Op   string
	Err  error
}

// Error implements the error interface for FileOperationError.
func (e *FileOperationError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error for FileOperationError.
func (e *FileOperationError) Unwrap() error {
	return e.Err
}

// NewFileOperationError creates a new FileOperationError.
func NewFileOperationError(op, path string, err error) error {
	return &FileOperationError{Path: path, Op: op, Err: err}
}
