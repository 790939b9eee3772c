// Package appmeta assembles and persists the metadata record an import
// run produces: the app-level facts from URL classification and one
// build entry from version extraction.
package appmeta

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/droidport/droidport/internal/repohost"
)

// App is the per-application metadata record.
type App struct {
	AutoName        string   `yaml:"AutoName,omitempty" json:"AutoName,omitempty"`
	Categories      []string `yaml:"Categories,omitempty" json:"Categories,omitempty"`
	License         string   `yaml:"License,omitempty" json:"License,omitempty"`
	WebSite         string   `yaml:"WebSite,omitempty" json:"WebSite,omitempty"`
	SourceCode      string   `yaml:"SourceCode,omitempty" json:"SourceCode,omitempty"`
	IssueTracker    string   `yaml:"IssueTracker,omitempty" json:"IssueTracker,omitempty"`
	RepoType        string   `yaml:"RepoType" json:"RepoType"`
	Repo            string   `yaml:"Repo" json:"Repo"`
	UpdateCheckMode string   `yaml:"UpdateCheckMode,omitempty" json:"UpdateCheckMode,omitempty"`
	Builds          []Build  `yaml:"Builds,omitempty" json:"Builds,omitempty"`
}

// Build is one build entry of an app record.
type Build struct {
	VersionName string `yaml:"versionName" json:"versionName"`
	VersionCode string `yaml:"versionCode" json:"versionCode"`
	Commit      string `yaml:"commit,omitempty" json:"commit,omitempty"`
	Subdir      string `yaml:"subdir,omitempty" json:"subdir,omitempty"`
	Gradle      bool   `yaml:"gradle,omitempty" json:"gradle,omitempty"`
	BuildJNI    bool   `yaml:"buildjni,omitempty" json:"buildjni,omitempty"`
	Disable     string `yaml:"disable,omitempty" json:"disable,omitempty"`
}

// NewAppFromLocation seeds an app record from a classified project URL.
func NewAppFromLocation(loc *repohost.ProjectLocation) *App {
	return &App{
		WebSite:      loc.WebSite,
		SourceCode:   loc.SourceCode,
		IssueTracker: loc.IssueTracker,
		RepoType:     string(loc.VCS),
		Repo:         loc.RepoAddress,
	}
}

// MetadataPath returns where the record for pkg lives under metadataDir.
func MetadataPath(metadataDir, pkg string) string {
	return filepath.Join(metadataDir, pkg+".yml")
}

// Exists reports whether a record for pkg is already present.
func Exists(metadataDir, pkg string) bool {
	_, err := os.Stat(MetadataPath(metadataDir, pkg))
	return err == nil
}

// Write validates the record and writes it as YAML to path, creating
// parent directories as needed.
func Write(path string, app *App) error {
	if err := app.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(app)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating metadata directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	return nil
}

// WriteVCSMarker records which vcs and address a kept source tree came
// from, next to the tree itself.
func WriteVCSMarker(buildDir, pkg, repoType, repo string) error {
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return fmt.Errorf("creating build directory: %w", err)
	}
	marker := filepath.Join(buildDir, ".droidportvcs-"+pkg)
	return os.WriteFile(marker, []byte(repoType+" "+repo), 0o644)
}
