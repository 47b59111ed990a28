package filestorage

// FileRemover deletes files left behind by deleted rows. Implementations must
// treat a missing file as already removed.
type FileRemover interface {
	// DeleteFile removes a file by the path stored in the database
	DeleteFile(filePath string) error
}

// NopRemover ignores every request
type NopRemover struct{}

// DeleteFile does nothing
func (NopRemover) DeleteFile(string) error { return nil }
