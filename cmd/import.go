package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/droidport/droidport/internal/appmeta"
	"github.com/droidport/droidport/internal/buildscan"
	"github.com/droidport/droidport/internal/fetch"
	"github.com/droidport/droidport/internal/manifest"
	"github.com/droidport/droidport/internal/repohost"
	"github.com/droidport/droidport/internal/vcs"
	"github.com/droidport/droidport/pkg/config"
	"github.com/droidport/droidport/pkg/logger"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a project and write its metadata record",
	Long: `Import classifies the project URL, checks out the source, locates the
Android application module, extracts package and version facts, and
writes the metadata record. Without a URL it imports the git working
copy in the current directory.`,
	RunE: runImport,
}

// localMetadataFile is the per-repo record written by a local import.
const localMetadataFile = ".droidport.yml"

func init() {
	importCmd.Flags().StringP("url", "u", "", "Project URL to import from")
	importCmd.Flags().StringP("subdir", "s", "", "Path to main Android project subdirectory, if not in root")
	importCmd.Flags().StringP("categories", "c", "", "Comma separated list of categories")
	importCmd.Flags().StringP("license", "l", "", "Overall license of the project")
	importCmd.Flags().String("rev", "", "Revision or branch to check out for the initial import")
}

func runImport(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	url, _ := cmd.Flags().GetString("url")
	subdirFlag, _ := cmd.Flags().GetString("subdir")
	categories, _ := cmd.Flags().GetString("categories")
	license, _ := cmd.Flags().GetString("license")
	rev, _ := cmd.Flags().GetString("rev")

	var app *appmeta.App
	var build appmeta.Build
	buildDir := ""
	localImport := false

	switch {
	case url == "" && vcs.IsWorkTree("."):
		if _, err := os.Stat(localMetadataFile); err == nil {
			return fmt.Errorf("this repo already has local metadata: %s", localMetadataFile)
		}
		localImport = true
		info, err := vcs.InspectWorkTree(".")
		if err != nil {
			return err
		}
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		app = &appmeta.App{
			AutoName:        filepath.Base(cwd),
			RepoType:        string(repohost.VCSGit),
			Repo:            info.OriginURL,
			UpdateCheckMode: "Tags",
		}
		// github, gitlab
		if strings.HasPrefix(info.OriginURL, "https://git") {
			app.SourceCode = strings.TrimSuffix(info.OriginURL, ".git")
		}
		build.Commit = info.HeadCommit
		buildDir = "."
	case url != "":
		classifier := repohost.NewClassifier(fetch.NewRealFetcher(cfg.Network.Timeout))
		loc, err := classifier.Classify(url)
		if err != nil {
			return err
		}
		logger.Info("Classified project location",
			logger.String("hosting", string(loc.Hosting)),
			logger.String("vcs", string(loc.VCS)),
			logger.String("repo", loc.RepoAddress))

		app = appmeta.NewAppFromLocation(loc)
		buildDir, err = vcs.CloneToTemp(loc, rev, cfg.Import.TmpDir)
		if err != nil {
			return err
		}
		build.Commit = "?"
		build.Disable = "Generated by droidport - check/set version fields and commit id"
	default:
		return fmt.Errorf("specify a project url, or run from inside a git working copy")
	}

	files, err := buildscan.Scan(buildDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return &buildscan.NoBuildProjectError{Dir: buildDir}
	}

	subdir, err := buildscan.ResolveSubdir(buildDir, files)
	if err != nil {
		return err
	}

	info, err := manifest.Extract(files)
	if err != nil {
		return err
	}
	if info.VersionName == "" {
		logger.Warn("Couldn't find latest version name")
	}
	if info.VersionCode == "" {
		logger.Warn("Couldn't find latest version code")
	}

	if appmeta.Exists(cfg.Import.MetadataDir, info.Package) {
		return fmt.Errorf("package %s already exists", info.Package)
	}

	build.VersionName = info.VersionName
	if build.VersionName == "" {
		build.VersionName = "Unknown"
	}
	build.VersionCode = info.VersionCode
	if build.VersionCode == "" {
		build.VersionCode = "0"
	}
	if subdirFlag != "" {
		build.Subdir = subdirFlag
	} else if subdir != "" {
		build.Subdir = subdir
	}
	build.BuildJNI = buildscan.HasJNI(buildDir, build.Subdir)
	build.Gradle = buildscan.HasGradleBuild(buildDir, build.Subdir)

	if license != "" {
		app.License = license
	}
	if categories != "" {
		app.Categories = strings.Split(categories, ",")
	} else if len(cfg.Import.Categories) > 0 {
		app.Categories = cfg.Import.Categories
	}
	app.Builds = append(app.Builds, build)

	if localImport {
		if err := appmeta.Write(localMetadataFile, app); err != nil {
			return err
		}
		logger.Info("Wrote " + localMetadataFile)
		return nil
	}

	// Keep the source tree to save bandwidth on the first real build
	kept := filepath.Join(cfg.Import.BuildDir, info.Package)
	if err := os.MkdirAll(cfg.Import.BuildDir, 0o755); err != nil {
		return err
	}
	if err := os.RemoveAll(kept); err != nil {
		return err
	}
	if err := os.Rename(buildDir, kept); err != nil {
		logger.Warn("Could not keep source tree", logger.Err(err))
	} else if err := appmeta.WriteVCSMarker(cfg.Import.BuildDir, info.Package, app.RepoType, app.Repo); err != nil {
		return err
	}

	metadataPath := appmeta.MetadataPath(cfg.Import.MetadataDir, info.Package)
	if err := appmeta.Write(metadataPath, app); err != nil {
		return err
	}
	logger.Info("Wrote " + metadataPath)
	fmt.Fprintln(cmd.OutOrStdout(), metadataPath)
	return nil
}
