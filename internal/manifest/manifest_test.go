package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/droidport/droidport/internal/buildscan"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const sampleManifest = `<?xml version="1.0" encoding="utf-8"?>
<manifest xmlns:android="http://schemas.android.com/apk/res/android"
    package="org.example.app"
    android:versionCode="42"
    android:versionName="1.4.2">
    <application android:label="Example"/>
</manifest>
`

func TestExtractFromManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "AndroidManifest.xml", sampleManifest)

	files, err := buildscan.Scan(root)
	require.NoError(t, err)

	info, err := Extract(files)
	require.NoError(t, err)
	assert.Equal(t, "org.example.app", info.Package)
	assert.Equal(t, "1.4.2", info.VersionName)
	assert.Equal(t, "42", info.VersionCode)
}

func TestExtractFromGradle(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app/build.gradle", `
android {
    defaultConfig {
        applicationId "org.example.gradleapp"
        versionCode 7
        versionName "0.7"
    }
}
`)

	files, err := buildscan.Scan(root)
	require.NoError(t, err)

	info, err := Extract(files)
	require.NoError(t, err)
	assert.Equal(t, "org.example.gradleapp", info.Package)
	assert.Equal(t, "0.7", info.VersionName)
	assert.Equal(t, "7", info.VersionCode)
}

func TestExtractKotlinDSLAssignments(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app/build.gradle.kts", `
android {
    defaultConfig {
        applicationId = "org.example.kts"
        versionCode = 3
        versionName = "0.3"
    }
}
`)

	files, err := buildscan.Scan(root)
	require.NoError(t, err)

	info, err := Extract(files)
	require.NoError(t, err)
	assert.Equal(t, "org.example.kts", info.Package)
	assert.Equal(t, "0.3", info.VersionName)
	assert.Equal(t, "3", info.VersionCode)
}

func TestExtractHighestVersionCodeWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a/AndroidManifest.xml", `<manifest package="org.example.app"
		android:versionCode="5" android:versionName="0.5"/>`)
	writeFile(t, root, "b/AndroidManifest.xml", `<manifest package="org.example.app"
		android:versionCode="12" android:versionName="1.2"/>`)

	files, err := buildscan.Scan(root)
	require.NoError(t, err)

	info, err := Extract(files)
	require.NoError(t, err)
	assert.Equal(t, "12", info.VersionCode)
	assert.Equal(t, "1.2", info.VersionName)
}

func TestExtractMissingVersionsIsNotFatal(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "AndroidManifest.xml", `<manifest package="org.example.noversion"/>`)

	files, err := buildscan.Scan(root)
	require.NoError(t, err)

	info, err := Extract(files)
	require.NoError(t, err)
	assert.Equal(t, "org.example.noversion", info.Package)
	assert.Empty(t, info.VersionName)
	assert.Empty(t, info.VersionCode)
}

func TestExtractNoPackageID(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "build.gradle", "apply plugin: 'java'\n")

	files, err := buildscan.Scan(root)
	require.NoError(t, err)

	_, err = Extract(files)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoPackageID))
}

func TestExtractSkipsMalformedXML(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a/AndroidManifest.xml", "<manifest package='org.broken'")
	writeFile(t, root, "b/AndroidManifest.xml", `<manifest package="org.example.ok"/>`)

	files, err := buildscan.Scan(root)
	require.NoError(t, err)

	info, err := Extract(files)
	require.NoError(t, err)
	assert.Equal(t, "org.example.ok", info.Package)
}
