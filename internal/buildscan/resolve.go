package buildscan

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	settingsFilePattern = regexp.MustCompile(`^settings\.gradle(?:\.kts)?$`)
	subprojectToken     = regexp.MustCompile(`['"]:([^'"]+)['"]`)
	androidPlugin       = regexp.MustCompile(`^\s*(?:apply plugin:|id)\(?\s*['"](?:android|com\.android\.application)['"]\s*\)?`)
)

// ResolveSubdir determines which subdirectory of rootDir holds the
// Android application module, given the scanned build files in order.
//
// Every settings.gradle(.kts) in the sequence has its subproject
// declarations expanded; the first declared subproject whose
// build.gradle* applies the Android application plugin wins. Only that
// plugin marks a module as an installable app, which is what makes it
// the right disambiguator in trees full of library and sample modules.
// Without such a match the directory of the first scanned file is used,
// unless that is the root itself, in which case "" (build at root) is
// returned.
func ResolveSubdir(rootDir string, files []BuildFile) (string, error) {
	firstGradleDir := ""
	haveFirst := false

	for _, f := range files {
		if !haveFirst {
			rel, err := filepath.Rel(rootDir, filepath.Dir(f.Path))
			if err == nil {
				firstGradleDir = rel
				haveFirst = true
			}
		}
		if f.Kind != KindGradleSettings {
			continue
		}

		content, err := os.ReadFile(f.Path)
		if err != nil {
			return "", &ScanIOError{Path: f.Path, Err: err}
		}

		settingsDir := filepath.Dir(f.Path)
		for _, m := range subprojectToken.FindAllSubmatch(content, -1) {
			subproject := string(m[1])
			matches, err := doublestar.FilepathGlob(filepath.Join(settingsDir, subproject, "build.gradle*"))
			if err != nil {
				continue
			}
			for _, buildFile := range matches {
				found, err := appliesAndroidPlugin(buildFile)
				if err != nil {
					return "", err
				}
				if found {
					return filepath.Rel(rootDir, filepath.Dir(buildFile))
				}
			}
		}
	}

	if haveFirst && firstGradleDir != "." {
		return firstGradleDir, nil
	}
	return "", nil
}

// appliesAndroidPlugin scans a build file line by line for an
// Android-application-plugin declaration, legacy apply-plugin form or
// the modern plugins-block id form.
func appliesAndroidPlugin(path string) (bool, error) {
	fp, err := os.Open(path)
	if err != nil {
		return false, &ScanIOError{Path: path, Err: err}
	}
	defer func() { _ = fp.Close() }()

	scanner := bufio.NewScanner(fp)
	for scanner.Scan() {
		if androidPlugin.MatchString(scanner.Text()) {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, &ScanIOError{Path: path, Err: err}
	}
	return false, nil
}
