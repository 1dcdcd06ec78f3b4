package docgen

import (
	"strings"

	"github.com/iwebbo/AnsibleRoleDoc/internal/structure"
	"github.com/iwebbo/AnsibleRoleDoc/internal/types"
)

const (
	textTitlePrefix        = "ANSIBLE ROLE: "
	textGeneralInformation = "GENERAL INFORMATION"
	textDefaultVariables   = "DEFAULT VARIABLES"
	textVariables          = "VARIABLES"
	textMainTasks          = "MAIN TASKS"
	textOtherTasks         = "OTHER TASKS"
	textHandlers           = "HANDLERS"
	textTemplates          = "TEMPLATES"
	textRoleStructure      = "ROLE STRUCTURE"
	textDependencies       = "DEPENDENCIES"

	titleUnderlineRune  = "="
	headerUnderlineRune = "-"
)

// RenderText produces the plain text documentation document for info.
func RenderText(info *types.RoleInfo) string {
	var lines []string
	appendLine := func(line string) { lines = append(lines, line) }
	appendHeader := func(header string) {
		appendLine(header)
		appendLine(strings.Repeat(headerUnderlineRune, len(header)))
		appendLine("")
	}

	title := textTitlePrefix + strings.ToUpper(info.Name)
	appendLine(title)
	appendLine(strings.Repeat(titleUnderlineRune, len(title)))
	appendLine("")

	galaxyInfo := galaxyInfoOrNil(info)
	if galaxyInfo != nil && galaxyInfo.Description != "" {
		appendLine(galaxyInfo.Description)
		appendLine("")
	}

	appendHeader(textGeneralInformation)
	if galaxyInfo != nil {
		if galaxyInfo.Author != "" {
			appendLine("Author: " + galaxyInfo.Author)
		}
		if galaxyInfo.License != "" {
			appendLine("License: " + galaxyInfo.License)
		}
		if galaxyInfo.MinAnsibleVersion != "" {
			appendLine("Minimum Ansible Version: " + galaxyInfo.MinAnsibleVersion)
		}
		if len(galaxyInfo.Platforms) > 0 {
			appendLine("")
			appendLine("Supported Platforms:")
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
		appendHeader(textDefaultVariables)
		appendLine(marshalYAMLDocument(info.Defaults))
		appendLine("")
	}

	nonEmptyVars := info.NonEmptyVars()
	if len(nonEmptyVars) > 0 {
		appendHeader(textVariables)
		for _, varsFile := range nonEmptyVars {
			appendHeader(varsFile.Name + ":")
			appendLine(marshalYAMLDocument(varsFile.Content))
			appendLine("")
		}
	}

	if mainTasks := info.MainTasks(); mainTasks != nil {
		appendHeader(textMainTasks)
		for _, taskName := range info.MainTaskNames() {
			appendLine("- " + taskName)
		}
		appendLine("")
		appendLine(marshalYAMLDocument(mainTasks))
		appendLine("")
	}

	otherTasks := info.OtherTasks()
	if len(otherTasks) > 0 {
		appendHeader(textOtherTasks)
		for _, taskFile := range otherTasks {
			appendHeader(taskFile.Name + ":")
			appendLine(marshalYAMLDocument(taskFile.Content))
			appendLine("")
		}
	}

	if info.Handlers != nil {
		appendHeader(textHandlers)
		appendLine(marshalYAMLDocument(info.Handlers))
		appendLine("")
	}

	if len(info.Templates) > 0 {
		appendHeader(textTemplates)
		for _, templatePath := range info.Templates {
			appendLine("- " + templatePath)
		}
		appendLine("")
	}

	appendHeader(textRoleStructure)
	appendLine(strings.Join(structure.RenderTree(info.Structure), "\n"))

	dependencyBlock := renderDependencies(info)
	if len(dependencyBlock) > 0 {
		appendLine("")
		appendHeader(textDependencies)
		lines = append(lines, dependencyBlock...)
	}

	return strings.Join(lines, "\n")
}
