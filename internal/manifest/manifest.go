// Package manifest extracts the package identifier and version facts
// from a scanned set of build-description files. AndroidManifest.xml is
// parsed as XML; Gradle build files are scanned line by line for the
// same facts expressed in the DSL.
package manifest

import (
	"bufio"
	"errors"
	"os"
	"regexp"
	"strconv"

	"github.com/beevik/etree"

	"github.com/droidport/droidport/internal/buildscan"
)

// ErrNoPackageID indicates no scanned file yielded a package identifier.
var ErrNoPackageID = errors.New("couldn't find package ID")

// Info holds the facts extracted from a project's build files. Version
// fields stay strings: version codes are opaque to this tool and version
// names are free-form. Empty fields mean "not found".
type Info struct {
	Package     string
	VersionName string
	VersionCode string
}

var (
	gradleApplicationID = regexp.MustCompile(`^\s*applicationId\s*=?\s*["']([^"']+)["']`)
	gradleVersionName   = regexp.MustCompile(`^\s*versionName\s*=?\s*["']([^"']+)["']`)
	gradleVersionCode   = regexp.MustCompile(`^\s*versionCode\s*=?\s*(\d+)`)
)

// Extract walks the scanned files in order and returns the package id
// and the highest version found. The first package identifier
// encountered wins; version name and code come from the file declaring
// the highest numeric version code. Returns ErrNoPackageID when no file
// names a package.
func Extract(files []buildscan.BuildFile) (*Info, error) {
	info := &Info{}
	maxCode := -1

	for _, f := range files {
		var candidate Info
		var err error
		switch f.Kind {
		case buildscan.KindManifest:
			candidate, err = fromManifest(f.Path)
		case buildscan.KindGradleBuild:
			candidate, err = fromGradle(f.Path)
		default:
			continue
		}
		if err != nil {
			// Unparseable files carry no facts; keep looking
			continue
		}

		if info.Package == "" {
			info.Package = candidate.Package
		}
		if candidate.VersionCode != "" {
			if code, err := strconv.Atoi(candidate.VersionCode); err == nil && code > maxCode {
				maxCode = code
				info.VersionCode = candidate.VersionCode
				if candidate.VersionName != "" {
					info.VersionName = candidate.VersionName
				}
			}
		} else if info.VersionName == "" && candidate.VersionName != "" {
			info.VersionName = candidate.VersionName
		}
	}

	if info.Package == "" {
		return nil, ErrNoPackageID
	}
	return info, nil
}

func fromManifest(path string) (Info, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return Info{}, err
	}
	root := doc.Root()
	if root == nil || root.Tag != "manifest" {
		return Info{}, errors.New("not a manifest document")
	}
	return Info{
		Package:     root.SelectAttrValue("package", ""),
		VersionName: root.SelectAttrValue("android:versionName", ""),
		VersionCode: root.SelectAttrValue("android:versionCode", ""),
	}, nil
}

func fromGradle(path string) (Info, error) {
	fp, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer func() { _ = fp.Close() }()

	var info Info
	scanner := bufio.NewScanner(fp)
	for scanner.Scan() {
		line := scanner.Text()
		if info.Package == "" {
			if m := gradleApplicationID.FindStringSubmatch(line); m != nil {
				info.Package = m[1]
			}
		}
		if info.VersionName == "" {
			if m := gradleVersionName.FindStringSubmatch(line); m != nil {
				info.VersionName = m[1]
			}
		}
		if info.VersionCode == "" {
			if m := gradleVersionCode.FindStringSubmatch(line); m != nil {
				info.VersionCode = m[1]
			}
		}
	}
	return info, scanner.Err()
}
