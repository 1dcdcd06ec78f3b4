package role

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iwebbo/AnsibleRoleDoc/internal/structure"
	"github.com/iwebbo/AnsibleRoleDoc/internal/types"
)

const (
	metaMainPath     = "meta/main.yml"
	defaultsMainPath = "defaults/main.yml"
	tasksMainPath    = "tasks/main.yml"
	handlersMainPath = "handlers/main.yml"
	varsMainPath     = "vars/main.yml"

	tasksDirectoryPrefix     = "tasks/"
	varsDirectoryPrefix      = "vars/"
	templatesDirectoryPrefix = "templates/"

	yamlFileExtension = ".yml"

	// warningUnreadableYAMLFormat is used when a role YAML file cannot be
	// read or parsed; the section is omitted and extraction continues.
	warningUnreadableYAMLFormat = "Warning: unable to read %s: %v\n"
)

// Extract reads the role supplied by source and aggregates every section of
// the documentation. Extraction is best effort: unreadable or invalid YAML
// files produce a warning on stderr and an absent section, never a failure.
func Extract(source Source) *types.RoleInfo {
	roleName := source.RoleName()
	memberPaths := source.Paths()

	info := &types.RoleInfo{
		Name:      roleName,
		Structure: structure.BuildTree(memberPaths, roleName),
		Metadata:  readMetadata(source),
		Defaults:  readYAMLDocument(source, defaultsMainPath),
		Handlers:  readYAMLDocument(source, handlersMainPath),
		Templates: findTemplates(memberPaths, roleName),
	}
	info.Tasks = readSectionFiles(source, memberPaths, roleName, tasksDirectoryPrefix, tasksMainPath)
	info.Vars = varsFromTaskFiles(readSectionFiles(source, memberPaths, roleName, varsDirectoryPrefix, varsMainPath))
	return info
}

// readMetadata parses meta/main.yml into the typed metadata structure.
func readMetadata(source Source) *types.RoleMetadata {
	document := readYAMLDocument(source, metaMainPath)
	if document == nil {
		return nil
	}
	var metadata types.RoleMetadata
	if decodeError := document.Decode(&metadata); decodeError != nil {
		fmt.Fprintf(os.Stderr, warningUnreadableYAMLFormat, metaMainPath, decodeError)
		return nil
	}
	return &metadata
}

// readSectionFiles reads the main file of a section plus every other
// top-level YAML file under the section directory, in member order. The main
// entry is always present, with nil content when the file is absent.
func readSectionFiles(source Source, memberPaths []string, roleName string, directoryPrefix string, mainPath string) []types.TaskFile {
	sectionFiles := []types.TaskFile{{
		Name:    types.MainFileLabel,
		Content: readYAMLDocument(source, mainPath),
	}}
	for _, memberPath := range memberPaths {
		relativePath := roleRelativePath(memberPath, roleName)
		if relativePath == mainPath || !strings.HasPrefix(relativePath, directoryPrefix) {
			continue
		}
		remainder := strings.TrimPrefix(relativePath, directoryPrefix)
		if remainder == "" || strings.Contains(remainder, pathSeparator) {
			continue
		}
		if !strings.HasSuffix(remainder, yamlFileExtension) {
			continue
		}
		sectionFiles = append(sectionFiles, types.TaskFile{
			Name:    remainder,
			Content: readYAMLDocument(source, relativePath),
		})
	}
	return sectionFiles
}

// varsFromTaskFiles converts section entries into vars entries.
func varsFromTaskFiles(sectionFiles []types.TaskFile) []types.VarsFile {
	varsFiles := make([]types.VarsFile, 0, len(sectionFiles))
	for _, sectionFile := range sectionFiles {
		varsFiles = append(varsFiles, types.VarsFile{Name: sectionFile.Name, Content: sectionFile.Content})
	}
	return varsFiles
}

// findTemplates returns template paths relative to the templates directory.
func findTemplates(memberPaths []string, roleName string) []string {
	var templatePaths []string
	for _, memberPath := range memberPaths {
		relativePath := roleRelativePath(memberPath, roleName)
		if !strings.HasPrefix(relativePath, templatesDirectoryPrefix) {
			continue
		}
		templatePath := strings.TrimPrefix(relativePath, templatesDirectoryPrefix)
		if templatePath == "" || strings.HasSuffix(templatePath, pathSeparator) {
			continue
		}
		templatePaths = append(templatePaths, templatePath)
	}
	return templatePaths
}

// readYAMLDocument reads and parses one role YAML file. Missing files yield
// nil quietly; read and parse failures yield nil with a warning.
func readYAMLDocument(source Source, roleRelativePath string) *yaml.Node {
	content, readError := source.ReadFile(roleRelativePath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return nil
		}
		fmt.Fprintf(os.Stderr, warningUnreadableYAMLFormat, roleRelativePath, readError)
		return nil
	}
	var document yaml.Node
	if unmarshalError := yaml.Unmarshal(content, &document); unmarshalError != nil {
		fmt.Fprintf(os.Stderr, warningUnreadableYAMLFormat, roleRelativePath, unmarshalError)
		return nil
	}
	if document.Kind == 0 {
		return nil
	}
	return &document
}

// roleRelativePath strips a leading role-name segment from a member path.
func roleRelativePath(memberPath string, roleName string) string {
	if roleName == "" {
		return memberPath
	}
	return strings.TrimPrefix(memberPath, roleName+pathSeparator)
}
