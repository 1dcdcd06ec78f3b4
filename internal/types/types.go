// Package types defines the cross-package data structures of the
// AnsibleRoleDoc CLI.
package types

import (
	"gopkg.in/yaml.v3"

	"github.com/iwebbo/AnsibleRoleDoc/internal/structure"
)

const (
	FormatMarkdown = "markdown"
	FormatText     = "text"

	CommandArchive = "archive"
	CommandDir     = "dir"

	// MainFileLabel is the label under which tasks/main.yml and
	// vars/main.yml are stored in their respective slices.
	MainFileLabel = "main"
)

// Platform describes one supported platform entry from galaxy_info.
type Platform struct {
	Name     string        `yaml:"name"`
	Versions []interface{} `yaml:"versions"`
}

// GalaxyInfo carries the galaxy_info block of meta/main.yml.
type GalaxyInfo struct {
	Author            string     `yaml:"author"`
	Description       string     `yaml:"description"`
	License           string     `yaml:"license"`
	MinAnsibleVersion string     `yaml:"min_ansible_version"`
	Platforms         []Platform `yaml:"platforms"`
}

// RoleMetadata is the parsed meta/main.yml document. Dependencies keeps the
// raw decoded entries because Ansible accepts both bare role names and
// mappings with a role key plus arbitrary parameters.
type RoleMetadata struct {
	GalaxyInfo   *GalaxyInfo   `yaml:"galaxy_info"`
	Dependencies []interface{} `yaml:"dependencies"`
}

// TaskFile is one YAML file from the tasks directory. Content preserves the
// document as parsed so re-serialization keeps the author's key order.
type TaskFile struct {
	Name    string
	Content *yaml.Node
}

// VarsFile is one YAML file from the vars directory.
type VarsFile struct {
	Name    string
	Content *yaml.Node
}

// RoleInfo aggregates everything extracted from a role for rendering.
type RoleInfo struct {
	Name      string
	Structure *structure.Node
	Metadata  *RoleMetadata
	Defaults  *yaml.Node
	Tasks     []TaskFile
	Handlers  *yaml.Node
	Vars      []VarsFile
	Templates []string
}

// MainTaskNames returns the name field of every entry in the main task file,
// in document order. Entries without a name are skipped.
func (info *RoleInfo) MainTaskNames() []string {
	for _, taskFile := range info.Tasks {
		if taskFile.Name != MainFileLabel {
			continue
		}
		return taskNamesFromDocument(taskFile.Content)
	}
	return nil
}

// MainTasks returns the parsed main task document, or nil when absent.
func (info *RoleInfo) MainTasks() *yaml.Node {
	for _, taskFile := range info.Tasks {
		if taskFile.Name == MainFileLabel {
			return taskFile.Content
		}
	}
	return nil
}

// OtherTasks returns every task file except main that parsed successfully.
func (info *RoleInfo) OtherTasks() []TaskFile {
	var otherTaskFiles []TaskFile
	for _, taskFile := range info.Tasks {
		if taskFile.Name == MainFileLabel || taskFile.Content == nil {
			continue
		}
		otherTaskFiles = append(otherTaskFiles, taskFile)
	}
	return otherTaskFiles
}

// NonEmptyVars returns every vars file that parsed successfully.
func (info *RoleInfo) NonEmptyVars() []VarsFile {
	var nonEmptyVarsFiles []VarsFile
	for _, varsFile := range info.Vars {
		if varsFile.Content == nil {
			continue
		}
		nonEmptyVarsFiles = append(nonEmptyVarsFiles, varsFile)
	}
	return nonEmptyVarsFiles
}

// taskNamesFromDocument extracts task names from a parsed task list.
func taskNamesFromDocument(document *yaml.Node) []string {
	if document == nil {
		return nil
	}
	var taskEntries []map[string]interface{}
	if decodeError := document.Decode(&taskEntries); decodeError != nil {
		return nil
	}
	var taskNames []string
	for _, taskEntry := range taskEntries {
		name, hasName := taskEntry["name"].(string)
		if hasName {
			taskNames = append(taskNames, name)
		}
	}
	return taskNames
}
