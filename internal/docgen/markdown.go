package docgen

import (
	"fmt"
	"strings"

	"github.com/iwebbo/AnsibleRoleDoc/internal/structure"
	"github.com/iwebbo/AnsibleRoleDoc/internal/types"
)

const (
	markdownTitleFormat        = "# Ansible Role: %s"
	markdownGeneralInformation = "## General Information"
	markdownDefaultVariables   = "## Default Variables"
	markdownVariables          = "## Variables"
	markdownMainTasks          = "## Main Tasks"
	markdownOtherTasks         = "## Other Tasks"
	markdownHandlers           = "## Handlers"
	markdownTemplates          = "## Templates"
	markdownRoleStructure      = "## Role Structure"
	markdownDependencies       = "## Dependencies"

	markdownYAMLFenceOpen = "```yaml"
	markdownFenceOpen     = "```"
	markdownFenceClose    = "```"
)

// RenderMarkdown produces the Markdown documentation document for info.
func RenderMarkdown(info *types.RoleInfo) string {
	var lines []string
	appendLine := func(line string) { lines = append(lines, line) }

	appendLine(fmt.Sprintf(markdownTitleFormat, info.Name))
	appendLine("")

	galaxyInfo := galaxyInfoOrNil(info)
	if galaxyInfo != nil && galaxyInfo.Description != "" {
		appendLine(galaxyInfo.Description)
		appendLine("")
	}

	appendLine(markdownGeneralInformation)
	appendLine("")
	if galaxyInfo != nil {
		if galaxyInfo.Author != "" {
			appendLine("**Author:** " + galaxyInfo.Author)
		}
		if galaxyInfo.License != "" {
			appendLine("**License:** " + galaxyInfo.License)
		}
		if galaxyInfo.MinAnsibleVersion != "" {
			appendLine("**Minimum Ansible Version:** " + galaxyInfo.MinAnsibleVersion)
		}
		if len(galaxyInfo.Platforms) > 0 {
			appendLine("")
			appendLine("**Supported Platforms:**")
			for _, platform := range galaxyInfo.Platforms {
				appendLine("- " + platformName(platform))
				if len(platform.Versions) > 0 {
					appendLine("  - Versions: " + formatVersions(platform.Versions))
				}
			}
		}
		appendLine("")
	}

	if info.Defaults != nil {
		appendLine(markdownDefaultVariables)
		appendLine("")
		appendLine(markdownYAMLFenceOpen)
		appendLine(marshalYAMLDocument(info.Defaults))
		appendLine(markdownFenceClose)
		appendLine("")
	}

	nonEmptyVars := info.NonEmptyVars()
	if len(nonEmptyVars) > 0 {
		appendLine(markdownVariables)
		appendLine("")
		for _, varsFile := range nonEmptyVars {
			appendLine("### " + varsFile.Name)
			appendLine("")
			appendLine(markdownYAMLFenceOpen)
			appendLine(marshalYAMLDocument(varsFile.Content))
			appendLine(markdownFenceClose)
			appendLine("")
		}
	}

	if info.MainTasks() != nil {
		appendLine(markdownMainTasks)
		appendLine("")
		for _, taskName := range info.MainTaskNames() {
			appendLine("- " + taskName)
		}
		appendLine("")
	}

	otherTasks := info.OtherTasks()
	if len(otherTasks) > 0 {
		appendLine(markdownOtherTasks)
		appendLine("")
		for _, taskFile := range otherTasks {
			appendLine("### " + taskFile.Name)
			appendLine("")
			appendLine(markdownYAMLFenceOpen)
			appendLine(marshalYAMLDocument(taskFile.Content))
			appendLine(markdownFenceClose)
			appendLine("")
		}
	}

	if info.Handlers != nil {
		appendLine(markdownHandlers)
		appendLine("")
		appendLine(markdownYAMLFenceOpen)
		appendLine(marshalYAMLDocument(info.Handlers))
		appendLine(markdownFenceClose)
		appendLine("")
	}

	if len(info.Templates) > 0 {
		appendLine(markdownTemplates)
		appendLine("")
		for _, templatePath := range info.Templates {
			appendLine("- `" + templatePath + "`")
		}
		appendLine("")
	}

	appendLine(markdownRoleStructure)
	appendLine("")
	appendLine(markdownFenceOpen)
	appendLine(strings.Join(structure.RenderTree(info.Structure), "\n"))
	appendLine(markdownFenceClose)

	dependencyBlock := renderDependencies(info)
	if len(dependencyBlock) > 0 {
		appendLine("")
		appendLine(markdownDependencies)
		appendLine("")
		lines = append(lines, dependencyBlock...)
	}

	return strings.Join(lines, "\n")
}

// galaxyInfoOrNil returns the galaxy_info block when metadata carries one.
func galaxyInfoOrNil(info *types.RoleInfo) *types.GalaxyInfo {
	if info.Metadata == nil {
		return nil
	}
	return info.Metadata.GalaxyInfo
}

// renderDependencies formats the dependency bullet list shared by both
// output formats.
func renderDependencies(info *types.RoleInfo) []string {
	if info.Metadata == nil {
		return nil
	}
	var lines []string
	for _, dependency := range info.Metadata.Dependencies {
		lines = append(lines, dependencyLines(dependency)...)
	}
	return lines
}
