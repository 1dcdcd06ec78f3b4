package role_test

import (
	"archive/zip"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/iwebbo/AnsibleRoleDoc/internal/role"
)

// sampleRoleName defines the role name used by the fixtures.
const sampleRoleName = "webserver"

// sampleTasksContent defines the tasks/main.yml fixture content.
const sampleTasksContent = "- name: Install nginx\n  ansible.builtin.package:\n    name: nginx\n"

// writeZipFixture creates a zip archive containing a minimal role layout and
// returns its path.
func writeZipFixture(testingInstance *testing.T) string {
	testingInstance.Helper()
	zipPath := filepath.Join(testingInstance.TempDir(), "role.zip")
	zipFile, createError := os.Create(zipPath)
	if createError != nil {
		testingInstance.Fatalf("create zip: %v", createError)
	}
	zipWriter := zip.NewWriter(zipFile)
	members := map[string]string{
		sampleRoleName + "/tasks/main.yml":    sampleTasksContent,
		sampleRoleName + "/defaults/main.yml": "nginx_port: 8080\n",
	}
	for _, memberName := range []string{sampleRoleName + "/tasks/main.yml", sampleRoleName + "/defaults/main.yml"} {
		memberWriter, memberError := zipWriter.Create(memberName)
		if memberError != nil {
			testingInstance.Fatalf("create member %s: %v", memberName, memberError)
		}
		if _, writeError := memberWriter.Write([]byte(members[memberName])); writeError != nil {
			testingInstance.Fatalf("write member %s: %v", memberName, writeError)
		}
	}
	if closeError := zipWriter.Close(); closeError != nil {
		testingInstance.Fatalf("close zip writer: %v", closeError)
	}
	if closeError := zipFile.Close(); closeError != nil {
		testingInstance.Fatalf("close zip file: %v", closeError)
	}
	return zipPath
}

// TestOpenZipSource verifies role-name derivation, member enumeration, and
// role-relative reads for archive-backed sources.
func TestOpenZipSource(testingInstance *testing.T) {
	source, openError := role.OpenZipSource(writeZipFixture(testingInstance))
	if openError != nil {
		testingInstance.Fatalf("open zip source: %v", openError)
	}
	defer source.Close()

	if source.RoleName() != sampleRoleName {
		testingInstance.Errorf("unexpected role name %q", source.RoleName())
	}
	expectedPaths := []string{
		sampleRoleName + "/tasks/main.yml",
		sampleRoleName + "/defaults/main.yml",
	}
	if !reflect.DeepEqual(source.Paths(), expectedPaths) {
		testingInstance.Errorf("unexpected paths %v", source.Paths())
	}

	content, readError := source.ReadFile("tasks/main.yml")
	if readError != nil {
		testingInstance.Fatalf("read tasks/main.yml: %v", readError)
	}
	if string(content) != sampleTasksContent {
		testingInstance.Errorf("unexpected content %q", string(content))
	}

	if _, missingError := source.ReadFile("handlers/main.yml"); !errors.Is(missingError, fs.ErrNotExist) {
		testingInstance.Errorf("expected fs.ErrNotExist, got %v", missingError)
	}
}

// TestOpenZipSourceRejectsInvalidArchive verifies the error for non-zip input.
func TestOpenZipSourceRejectsInvalidArchive(testingInstance *testing.T) {
	notAZipPath := filepath.Join(testingInstance.TempDir(), "notazip.zip")
	if writeError := os.WriteFile(notAZipPath, []byte("plain text"), 0o644); writeError != nil {
		testingInstance.Fatalf("write fixture: %v", writeError)
	}
	if _, openError := role.OpenZipSource(notAZipPath); openError == nil {
		testingInstance.Fatal("expected error for invalid archive")
	}
}

// writeDirFixture creates a role directory tree and returns the role path.
func writeDirFixture(testingInstance *testing.T) string {
	testingInstance.Helper()
	rolePath := filepath.Join(testingInstance.TempDir(), sampleRoleName)
	for relativePath, content := range map[string]string{
		"tasks/main.yml":    sampleTasksContent,
		"defaults/main.yml": "nginx_port: 8080\n",
	} {
		fullPath := filepath.Join(rolePath, filepath.FromSlash(relativePath))
		if mkdirError := os.MkdirAll(filepath.Dir(fullPath), 0o755); mkdirError != nil {
			testingInstance.Fatalf("mkdir: %v", mkdirError)
		}
		if writeError := os.WriteFile(fullPath, []byte(content), 0o644); writeError != nil {
			testingInstance.Fatalf("write %s: %v", relativePath, writeError)
		}
	}
	return rolePath
}

// TestOpenDirSource verifies enumeration relative to the role's parent
// directory and role-relative reads for directory-backed sources.
func TestOpenDirSource(testingInstance *testing.T) {
	source, openError := role.OpenDirSource(writeDirFixture(testingInstance))
	if openError != nil {
		testingInstance.Fatalf("open dir source: %v", openError)
	}
	defer source.Close()

	if source.RoleName() != sampleRoleName {
		testingInstance.Errorf("unexpected role name %q", source.RoleName())
	}
	expectedPaths := []string{
		sampleRoleName + "/defaults/main.yml",
		sampleRoleName + "/tasks/main.yml",
	}
	if !reflect.DeepEqual(source.Paths(), expectedPaths) {
		testingInstance.Errorf("unexpected paths %v", source.Paths())
	}

	content, readError := source.ReadFile("tasks/main.yml")
	if readError != nil {
		testingInstance.Fatalf("read tasks/main.yml: %v", readError)
	}
	if string(content) != sampleTasksContent {
		testingInstance.Errorf("unexpected content %q", string(content))
	}
}

// TestOpenDirSourceValidation verifies the missing and non-directory errors.
func TestOpenDirSourceValidation(testingInstance *testing.T) {
	missingPath := filepath.Join(testingInstance.TempDir(), "absent")
	if _, openError := role.OpenDirSource(missingPath); openError == nil {
		testingInstance.Error("expected error for missing role path")
	}

	filePath := filepath.Join(testingInstance.TempDir(), "plainfile")
	if writeError := os.WriteFile(filePath, []byte("content"), 0o644); writeError != nil {
		testingInstance.Fatalf("write fixture: %v", writeError)
	}
	if _, openError := role.OpenDirSource(filePath); openError == nil {
		testingInstance.Error("expected error for non-directory role path")
	}
}
