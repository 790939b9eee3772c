// Package buildscan walks a checked-out source tree for Android build
// definitions and resolves which subdirectory holds the application
// module when a repository declares several Gradle subprojects.
package buildscan

import (
	"os"
	"path/filepath"
	"strings"
)

// FileKind tags a scanned build-description file.
type FileKind string

const (
	KindManifest       FileKind = "manifest"
	KindGradleBuild    FileKind = "gradle"
	KindGradleSettings FileKind = "gradle-settings"
)

// BuildFile is one build-description file found under the scanned root.
type BuildFile struct {
	Path string // joined with the scanned root
	Kind FileKind
}

func classify(name string) (FileKind, bool) {
	switch {
	case name == "AndroidManifest.xml":
		return KindManifest, true
	case settingsFilePattern.MatchString(name):
		return KindGradleSettings, true
	case strings.HasSuffix(name, ".gradle") || strings.HasSuffix(name, ".gradle.kts"):
		return KindGradleBuild, true
	}
	return "", false
}

// Scan walks rootDir and returns every Android manifest and Gradle file
// in a deterministic order: within each directory, matching files sorted
// lexically first, then subdirectories in lexical order. Symlinked files
// are scanned like regular files; symlinked directories are not followed.
// Traversal failures abort with ScanIOError.
func Scan(rootDir string) ([]BuildFile, error) {
	var files []BuildFile
	if err := scanDir(rootDir, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func scanDir(dir string, files *[]BuildFile) error {
	// os.ReadDir returns entries sorted by name, which keeps the
	// sequence deterministic across runs
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &ScanIOError{Path: dir, Err: err}
	}

	var subdirs []string
	for _, entry := range entries {
		if entry.Type()&os.ModeSymlink != 0 {
			// A symlinked directory could loop the traversal back on
			// itself, so links count only when they resolve to a file
			info, err := os.Stat(filepath.Join(dir, entry.Name()))
			if err != nil || info.IsDir() {
				continue
			}
		} else if entry.IsDir() {
			subdirs = append(subdirs, entry.Name())
			continue
		}
		if kind, ok := classify(entry.Name()); ok {
			*files = append(*files, BuildFile{
				Path: filepath.Join(dir, entry.Name()),
				Kind: kind,
			})
		}
	}

	for _, sub := range subdirs {
		if err := scanDir(filepath.Join(dir, sub), files); err != nil {
			return err
		}
	}
	return nil
}

// HasJNI reports whether the resolved build directory carries native code
// (a jni/ directory), which flags the build for an NDK step.
func HasJNI(rootDir, subdir string) bool {
	info, err := os.Stat(filepath.Join(rootDir, subdir, "jni"))
	return err == nil && info.IsDir()
}

// HasGradleBuild reports whether the resolved build directory has a
// build.gradle at its top level.
func HasGradleBuild(rootDir, subdir string) bool {
	_, err := os.Stat(filepath.Join(rootDir, subdir, "build.gradle"))
	return err == nil
}
