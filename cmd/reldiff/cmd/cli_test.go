// Copyright © 2018 One Concern

package cmd

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/oneconcern/reldiff/pkg/errors"
)

func zipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func compareTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	oldArchive := zipBytes(t, map[string]string{
		"site.txt":   "v1\n",
		"legacy.cfg": "obsolete\n",
	})
	newArchive := zipBytes(t, map[string]string{
		"site.txt":  "v2\n",
		"notes.txt": "hello\n",
	})

	mux := http.NewServeMux()
	handle := func(path, body string) {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		})
	}
	handleRaw := func(path string, body []byte) {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(body)
		})
	}

	handle("/api/Spaces", `{"Items": [{"Id": "Spaces-1", "Name": "Default"}]}`)
	handle("/api/Spaces-1/Projects", `{"Items": [{"Id": "Projects-1", "Name": "Web App"}]}`)
	handle("/api/Spaces-1/Projects/Projects-1/Releases", `{"Items": [
		{"Id": "Releases-2", "Version": "0.0.2",
		 "ProjectDeploymentProcessSnapshotId": "dp-2", "ProjectVariableSetSnapshotId": "vs-2",
		 "SelectedPackages": [
			{"StepName": "Deploy", "ActionName": "Deploy", "PackageReferenceName": "web", "Version": "1.0.1"}
		 ]},
		{"Id": "Releases-1", "Version": "0.0.1",
		 "ProjectDeploymentProcessSnapshotId": "dp-1", "ProjectVariableSetSnapshotId": "vs-1",
		 "SelectedPackages": [
			{"StepName": "Deploy", "ActionName": "Deploy", "PackageReferenceName": "web", "Version": "1.0.0"}
		 ]}
	]}`)
	handle("/api/Spaces-1/Feeds", `{"Items": [{"Id": "Feeds-builtin", "FeedType": "BuiltIn"}]}`)

	process := `{"Id": "%s", "Steps": [
		{"Name": "Deploy", "Actions": [
			{"Name": "Deploy", "Packages": [{"Name": "web", "FeedId": "Feeds-builtin"}],
			 "Properties": {"RunContent": "%s"}}
		]}
	]}`
	handle("/api/Spaces-1/DeploymentProcesses/dp-1", fmt.Sprintf(process, "dp-1", "deploy.sh"))
	handle("/api/Spaces-1/DeploymentProcesses/dp-2", fmt.Sprintf(process, "dp-2", "deploy-v2.sh"))

	handle("/api/Spaces-1/Variables/vs-1", `{"Variables": [
		{"Id": "var-1", "Name": "Timeout", "Value": "30", "IsSensitive": false, "Scope": {}}
	]}`)
	handle("/api/Spaces-1/Variables/vs-2", `{"Variables": [
		{"Id": "var-1", "Name": "Timeout", "Value": "60", "IsSensitive": false, "Scope": {}}
	]}`)

	handle("/api/Spaces-1/Packages/packages-web.1.0.0", `{"FileExtension": ".zip"}`)
	handleRaw("/api/Spaces-1/Packages/packages-web.1.0.0/raw", oldArchive)
	handle("/api/Spaces-1/Packages/packages-web.1.0.1", `{"FileExtension": ".zip"}`)
	handleRaw("/api/Spaces-1/Packages/packages-web.1.0.1/raw", newArchive)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func compareFlags(serverURL string) *flagsT {
	var flags flagsT
	flags.octopus.URL = serverURL
	flags.octopus.APIKey = "API-TEST"
	flags.octopus.Space = "Default"
	flags.octopus.Project = "Web App"
	return &flags
}

func TestRunCompare(t *testing.T) {
	server := compareTestServer(t)
	flags := compareFlags(server.URL)
	flags.output.Variables = true

	var buf bytes.Buffer
	require.NoError(t, runCompare(context.Background(), &buf, flags, zap.NewNop()))
	out := buf.String()

	assert.Contains(t, out, "Inventory of changes in release 0.0.2 compared to release 0.0.1.")
	assert.Contains(t, out, "added the following files in web.1.0.1")
	assert.Contains(t, out, "\tnotes.txt")
	assert.Contains(t, out, "\tlegacy.cfg")
	assert.Contains(t, out, "Diff of site.txt:")
	assert.Contains(t, out, "-v1")
	assert.Contains(t, out, "+v2")
	assert.Contains(t, out, `changed the value of the variable "Timeout" from "30" to "60"`)
	assert.Contains(t, out, "-          \"RunContent\": \"deploy.sh\"")
	assert.Contains(t, out, "+          \"RunContent\": \"deploy-v2.sh\"")
	assert.Contains(t, out, "##octopus[setVariable")
}

func TestRunCompareExplicitReleases(t *testing.T) {
	server := compareTestServer(t)
	flags := compareFlags(server.URL)
	flags.octopus.OldRelease = "0.0.1"
	flags.octopus.NewRelease = "0.0.2"

	var buf bytes.Buffer
	require.NoError(t, runCompare(context.Background(), &buf, flags, zap.NewNop()))
	assert.Contains(t, buf.String(), "Inventory of changes in release 0.0.2 compared to release 0.0.1.")
}

func TestConfigCreate(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	saved := reldiffFlags
	defer func() { reldiffFlags = saved }()
	reldiffFlags.octopus.URL = "https://octopus.example.com"
	reldiffFlags.octopus.APIKey = "API-TEST"
	reldiffFlags.octopus.Space = "Default"
	reldiffFlags.octopus.Project = "Web App"

	configGen.Run(configGen, nil)

	raw, err := os.ReadFile(filepath.Join(home, ".reldiff", "reldiff.yaml"))
	require.NoError(t, err)
	var written CLIConfig
	require.NoError(t, yaml.Unmarshal(raw, &written))
	assert.Equal(t, "https://octopus.example.com", written.URL)
	assert.Equal(t, "API-TEST", written.APIKey)
	assert.Equal(t, "Default", written.Space)
	assert.Equal(t, "Web App", written.Project)
}

func TestRunCompareUnknownSpace(t *testing.T) {
	server := compareTestServer(t)
	flags := compareFlags(server.URL)
	flags.octopus.Space = "Nope"

	var buf bytes.Buffer
	err := runCompare(context.Background(), &buf, flags, zap.NewNop())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSpaceNotFound))
	assert.Empty(t, buf.String())
}

func TestRunCompareUnknownRelease(t *testing.T) {
	server := compareTestServer(t)
	flags := compareFlags(server.URL)
	flags.octopus.OldRelease = "9.9.9"
	flags.octopus.NewRelease = "0.0.2"

	var buf bytes.Buffer
	err := runCompare(context.Background(), &buf, flags, zap.NewNop())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrReleaseNotFound))
}
