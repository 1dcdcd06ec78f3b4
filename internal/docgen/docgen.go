// Package docgen renders extracted role information into Markdown or plain
// text documents.
package docgen

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iwebbo/AnsibleRoleDoc/internal/types"
)

const (
	// errorUnsupportedFormat reports a format outside markdown and text.
	errorUnsupportedFormat = "output format must be '%s' or '%s'"

	yamlEncoderIndent = 2

	dependencyRoleKey = "role"
)

// Render produces the documentation document for info in the requested
// format.
func Render(info *types.RoleInfo, format string) (string, error) {
	switch strings.ToLower(format) {
	case types.FormatMarkdown:
		return RenderMarkdown(info), nil
	case types.FormatText:
		return RenderText(info), nil
	default:
		return "", fmt.Errorf(errorUnsupportedFormat, types.FormatMarkdown, types.FormatText)
	}
}

// marshalYAMLDocument serializes a parsed YAML document preserving its key
// order. A nil or unserializable document yields an empty string.
func marshalYAMLDocument(document *yaml.Node) string {
	if document == nil {
		return ""
	}
	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(yamlEncoderIndent)
	if encodeError := encoder.Encode(document); encodeError != nil {
		return ""
	}
	if closeError := encoder.Close(); closeError != nil {
		return ""
	}
	return strings.TrimRight(buffer.String(), "\n")
}

// dependencyLines formats one dependency entry. String entries render as a
// single bullet; mapping entries render the role name first and the
// remaining keys as indented sub-bullets in sorted order.
func dependencyLines(dependency interface{}) []string {
	switch dependencyValue := dependency.(type) {
	case string:
		return []string{"- " + dependencyValue}
	case map[string]interface{}:
		roleName, hasRoleName := dependencyValue[dependencyRoleKey].(string)
		if !hasRoleName {
			return nil
		}
		lines := []string{"- " + roleName}
		extraKeys := make([]string, 0, len(dependencyValue))
		for key := range dependencyValue {
			if key != dependencyRoleKey {
				extraKeys = append(extraKeys, key)
			}
		}
		sort.Strings(extraKeys)
		for _, key := range extraKeys {
			lines = append(lines, fmt.Sprintf("  - %s: %v", key, dependencyValue[key]))
		}
		return lines
	default:
		return nil
	}
}

// formatVersions joins platform version values with commas.
func formatVersions(versions []interface{}) string {
	versionStrings := make([]string, 0, len(versions))
	for _, version := range versions {
		versionStrings = append(versionStrings, fmt.Sprintf("%v", version))
	}
	return strings.Join(versionStrings, ", ")
}

// platformName returns the platform name or a placeholder when absent.
func platformName(platform types.Platform) string {
	if platform.Name == "" {
		return "N/A"
	}
	return platform.Name
}
