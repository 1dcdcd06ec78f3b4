// Package role reads Ansible role content from zip archives or directory
// trees and extracts the information rendered into documentation.
package role

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	// errorInvalidZipFormat reports a path that is not a readable zip archive.
	errorInvalidZipFormat = "%s is not a valid zip file: %w"
	// errorRolePathMissingFormat reports a nonexistent role directory.
	errorRolePathMissingFormat = "role path %s does not exist"
	// errorRolePathNotDirectoryFormat reports a role path that is not a directory.
	errorRolePathNotDirectoryFormat = "role path %s is not a directory"
	// errorStatRolePathFormat reports a failed stat on the role path.
	errorStatRolePathFormat = "stat failed for %s: %w"

	// warningSkipEntryFormat is used when a directory entry cannot be visited.
	warningSkipEntryFormat = "Warning: skipping %s: %v\n"
	// warningWalkFormat is used when the role directory walk fails.
	warningWalkFormat = "Warning: unable to walk %s: %v\n"

	currentDirectoryName = "."
	pathSeparator        = "/"
)

// Source supplies a role's flat file listing and file content. Paths returned
// by Paths may carry the role name as their first segment; ReadFile accepts
// role-relative paths.
type Source interface {
	RoleName() string
	Paths() []string
	ReadFile(roleRelativePath string) ([]byte, error)
	Close() error
}

// ZipSource reads a role from a zip archive, enumerating member names the
// way the archive stores them.
type ZipSource struct {
	readCloser    *zip.ReadCloser
	roleName      string
	memberNames   []string
	membersByName map[string]*zip.File
}

// OpenZipSource opens the archive at zipPath and derives the role name from
// the first member's leading path segment.
func OpenZipSource(zipPath string) (*ZipSource, error) {
	readCloser, openError := zip.OpenReader(zipPath)
	if openError != nil {
		return nil, fmt.Errorf(errorInvalidZipFormat, zipPath, openError)
	}

	source := &ZipSource{
		readCloser:    readCloser,
		membersByName: make(map[string]*zip.File, len(readCloser.File)),
	}
	for _, memberFile := range readCloser.File {
		source.memberNames = append(source.memberNames, memberFile.Name)
		source.membersByName[memberFile.Name] = memberFile
	}
	if len(source.memberNames) > 0 {
		firstSegment, _, _ := strings.Cut(source.memberNames[0], pathSeparator)
		if firstSegment != "" && firstSegment != currentDirectoryName {
			source.roleName = firstSegment
		}
	}
	return source, nil
}

// RoleName returns the role name derived from the archive layout.
func (source *ZipSource) RoleName() string {
	return source.roleName
}

// Paths returns every member name in archive order.
func (source *ZipSource) Paths() []string {
	return source.memberNames
}

// ReadFile returns the content of the member addressed by a role-relative
// path. Members stored without the role-name prefix are found as well.
func (source *ZipSource) ReadFile(roleRelativePath string) ([]byte, error) {
	candidateNames := []string{roleRelativePath}
	if source.roleName != "" {
		candidateNames = []string{source.roleName + pathSeparator + roleRelativePath, roleRelativePath}
	}
	for _, candidateName := range candidateNames {
		memberFile, exists := source.membersByName[candidateName]
		if !exists {
			continue
		}
		memberReader, openError := memberFile.Open()
		if openError != nil {
			return nil, openError
		}
		content, readError := io.ReadAll(memberReader)
		closeError := memberReader.Close()
		if readError != nil {
			return nil, readError
		}
		if closeError != nil {
			return nil, closeError
		}
		return content, nil
	}
	return nil, fs.ErrNotExist
}

// Close releases the underlying archive reader.
func (source *ZipSource) Close() error {
	return source.readCloser.Close()
}

// DirSource reads a role from a directory tree. Enumerated paths are
// relative to the role's parent directory, so they begin with the role name.
type DirSource struct {
	rolePath string
	roleName string
}

// OpenDirSource validates rolePath and returns a directory-backed source.
func OpenDirSource(rolePath string) (*DirSource, error) {
	absoluteRolePath, absolutePathError := filepath.Abs(rolePath)
	if absolutePathError != nil {
		return nil, absolutePathError
	}
	pathInfo, statError := os.Stat(absoluteRolePath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return nil, fmt.Errorf(errorRolePathMissingFormat, rolePath)
		}
		return nil, fmt.Errorf(errorStatRolePathFormat, rolePath, statError)
	}
	if !pathInfo.IsDir() {
		return nil, fmt.Errorf(errorRolePathNotDirectoryFormat, rolePath)
	}
	return &DirSource{
		rolePath: absoluteRolePath,
		roleName: filepath.Base(absoluteRolePath),
	}, nil
}

// RoleName returns the base name of the role directory.
func (source *DirSource) RoleName() string {
	return source.roleName
}

// Paths walks the role directory and returns every file path relative to the
// role's parent directory. Walk failures on individual entries are skipped.
func (source *DirSource) Paths() []string {
	var filePaths []string
	walkError := filepath.WalkDir(source.rolePath, func(currentPath string, entry fs.DirEntry, entryError error) error {
		if entryError != nil {
			fmt.Fprintf(os.Stderr, warningSkipEntryFormat, currentPath, entryError)
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		relativePath, relativeError := filepath.Rel(source.rolePath, currentPath)
		if relativeError != nil {
			return nil
		}
		filePaths = append(filePaths, source.roleName+pathSeparator+filepath.ToSlash(relativePath))
		return nil
	})
	if walkError != nil {
		fmt.Fprintf(os.Stderr, warningWalkFormat, source.rolePath, walkError)
	}
	return filePaths
}

// ReadFile returns the content of the file addressed by a role-relative path.
func (source *DirSource) ReadFile(roleRelativePath string) ([]byte, error) {
	return os.ReadFile(filepath.Join(source.rolePath, filepath.FromSlash(roleRelativePath)))
}

// Close is a no-op for directory sources.
func (source *DirSource) Close() error {
	return nil
}
