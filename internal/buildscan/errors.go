package buildscan

import (
	"errors"
	"fmt"
)

// ScanIOError indicates a filesystem failure while traversing or reading
// the build tree.
type ScanIOError struct {
	Path string
	Err  error
}

func (e *ScanIOError) Error() string {
	return fmt.Sprintf("scanning %s: %v", e.Path, e.Err)
}

func (e *ScanIOError) Unwrap() error {
	return e.Err
}

// IsScanIO checks if an error is a scan I/O error
func IsScanIO(err error) bool {
	var target *ScanIOError
	return errors.As(err, &target)
}

// NoBuildProjectError indicates the scan found no Gradle or manifest
// files anywhere in the tree.
type NoBuildProjectError struct {
	Dir string
}

func (e *NoBuildProjectError) Error() string {
	return fmt.Sprintf("no gradle project could be found under %s", e.Dir)
}

// IsNoBuildProject checks if an error is a no-build-project error
func IsNoBuildProject(err error) bool {
	var target *NoBuildProjectError
	return errors.As(err, &target)
}
