// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iwebbo/AnsibleRoleDoc/internal/config"
	"github.com/iwebbo/AnsibleRoleDoc/internal/docgen"
	"github.com/iwebbo/AnsibleRoleDoc/internal/role"
	"github.com/iwebbo/AnsibleRoleDoc/internal/services/clipboard"
	"github.com/iwebbo/AnsibleRoleDoc/internal/services/watch"
	"github.com/iwebbo/AnsibleRoleDoc/internal/tokenizer"
	"github.com/iwebbo/AnsibleRoleDoc/internal/types"
	"github.com/iwebbo/AnsibleRoleDoc/internal/utils"
)

const (
	formatFlagName    = "format"
	outputFlagName    = "output"
	clipboardFlagName = "clipboard"
	tokensFlagName    = "tokens"
	modelFlagName     = "model"
	watchFlagName     = "watch"
	versionFlagName   = "version"
	configFlagName    = "config"

	versionTemplate = "ansibleroledoc version: %s\n"

	rootUse              = "ansibleroledoc"
	rootShortDescription = "ansibleroledoc command line interface"
	rootLongDescription  = `ansibleroledoc generates human-readable documentation for Ansible roles.
It reads a role from a zip archive or a directory tree and renders metadata,
variables, tasks, handlers, templates, dependencies, and the role's directory
structure. Use --format to select markdown or text output.`

	archiveUse              = types.CommandArchive + " <role.zip>"
	dirUse                  = types.CommandDir + " <role-directory>..."
	archiveAlias            = "a"
	dirAlias                = "d"
	archiveShortDescription = "generate documentation from a role zip archive (" + archiveAlias + ")"
	dirShortDescription     = "generate documentation from a role directory (" + dirAlias + ")"

	// archiveLongDescription provides detailed help for the archive command.
	archiveLongDescription = `Generate documentation from a zip archive containing an Ansible role.
The role name is derived from the archive's top-level directory.`
	// archiveUsageExample demonstrates archive command usage.
	archiveUsageExample = `  # Render markdown documentation to stdout
  ansibleroledoc archive myrole.zip

  # Write plain text documentation to a file
  ansibleroledoc archive myrole.zip --format text --output myrole.txt`

	// dirLongDescription provides detailed help for the dir command.
	dirLongDescription = `Generate documentation from one or more Ansible role directories.
Use --watch to keep regenerating the document as the role changes on disk.`
	// dirUsageExample demonstrates dir command usage.
	dirUsageExample = `  # Render markdown documentation to stdout
  ansibleroledoc dir roles/myrole

  # Regenerate a file on every change
  ansibleroledoc dir roles/myrole --output docs/myrole.md --watch`

	formatFlagDescription    = "output format (markdown or text)"
	outputFlagDescription    = "output file (default: stdout)"
	clipboardFlagDescription = "copy the generated document to the clipboard"
	tokensFlagDescription    = "report the generated document's token count"
	modelFlagDescription     = "tokenizer model used for token counting"
	watchFlagDescription     = "regenerate when the role directory changes"
	versionFlagDescription   = "display application version"
	configFlagDescription    = "configuration file path"

	defaultTokenizerModelName = "gpt-4o"

	invalidFormatMessage = "invalid format value '%s'"
	// documentWrittenFormat confirms a document written to disk.
	documentWrittenFormat = "Documentation generated in %s\n"
	// tokenCountFormat reports the document token count on stderr.
	tokenCountFormat = "Tokens: %d (model: %s)\n"
	// errorOutputWithMultipleRoles rejects --output with several roles.
	errorOutputWithMultipleRoles = "--output supports a single role directory"
	// errorWatchWithMultipleRoles rejects --watch with several roles.
	errorWatchWithMultipleRoles = "--watch supports a single role directory"
	// errorWriteOutputFormat reports a failed document write.
	errorWriteOutputFormat = "writing %s: %w"

	outputFilePermissions = 0o644
)

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	switch format {
	case types.FormatMarkdown, types.FormatText:
		return true
	default:
		return false
	}
}

// Execute runs the ansibleroledoc application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	var configFilePath string

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&configFilePath, configFlagName, "", configFlagDescription)
	rootCommand.AddCommand(
		createArchiveCommand(&configFilePath),
		createDirCommand(&configFilePath),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// generateOptions stores the resolved configuration for one generation run.
type generateOptions struct {
	format           string
	outputPath       string
	clipboardEnabled bool
	tokensEnabled    bool
	tokenModel       string
	watchEnabled     bool
}

// addGenerateFlags registers the flags shared by archive and dir.
func addGenerateFlags(command *cobra.Command, options *generateOptions) {
	command.Flags().StringVarP(&options.format, formatFlagName, "f", types.FormatMarkdown, formatFlagDescription)
	command.Flags().StringVarP(&options.outputPath, outputFlagName, "o", "", outputFlagDescription)
	command.Flags().BoolVar(&options.clipboardEnabled, clipboardFlagName, false, clipboardFlagDescription)
	command.Flags().BoolVar(&options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	command.Flags().StringVar(&options.tokenModel, modelFlagName, defaultTokenizerModelName, modelFlagDescription)
}

// applyConfiguredDefaults overlays application configuration onto flags the
// user did not set explicitly.
func applyConfiguredDefaults(command *cobra.Command, options *generateOptions, configured config.GenerateCommandConfiguration) {
	flags := command.Flags()
	if !flags.Changed(formatFlagName) && configured.Format != "" {
		options.format = configured.Format
	}
	if !flags.Changed(outputFlagName) && configured.Output != "" {
		options.outputPath = configured.Output
	}
	if !flags.Changed(clipboardFlagName) && configured.Clipboard != nil {
		options.clipboardEnabled = *configured.Clipboard
	}
	if !flags.Changed(tokensFlagName) && configured.Tokens.Enabled != nil {
		options.tokensEnabled = *configured.Tokens.Enabled
	}
	if !flags.Changed(modelFlagName) && configured.Tokens.Model != "" {
		options.tokenModel = configured.Tokens.Model
	}
	if flags.Lookup(watchFlagName) != nil && !flags.Changed(watchFlagName) && configured.Watch != nil {
		options.watchEnabled = *configured.Watch
	}
}

// resolveOptions merges configuration defaults into options and validates the
// requested format.
func resolveOptions(command *cobra.Command, options *generateOptions, configFilePath string, selectConfiguration func(config.ApplicationConfiguration) config.GenerateCommandConfiguration) error {
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: configFilePath,
	})
	if configurationError != nil {
		return configurationError
	}
	applyConfiguredDefaults(command, options, selectConfiguration(applicationConfiguration))

	options.format = strings.ToLower(options.format)
	if !isSupportedFormat(options.format) {
		return fmt.Errorf(invalidFormatMessage, options.format)
	}
	return nil
}

// createArchiveCommand returns the archive subcommand.
func createArchiveCommand(configFilePath *string) *cobra.Command {
	var options generateOptions

	archiveCommand := &cobra.Command{
		Use:     archiveUse,
		Aliases: []string{archiveAlias},
		Short:   archiveShortDescription,
		Long:    archiveLongDescription,
		Example: archiveUsageExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			if resolveError := resolveOptions(command, &options, *configFilePath, func(configuration config.ApplicationConfiguration) config.GenerateCommandConfiguration {
				return configuration.Archive
			}); resolveError != nil {
				return resolveError
			}
			return runArchive(arguments[0], options)
		},
	}

	addGenerateFlags(archiveCommand, &options)
	return archiveCommand
}

// createDirCommand returns the dir subcommand.
func createDirCommand(configFilePath *string) *cobra.Command {
	var options generateOptions

	dirCommand := &cobra.Command{
		Use:     dirUse,
		Aliases: []string{dirAlias},
		Short:   dirShortDescription,
		Long:    dirLongDescription,
		Example: dirUsageExample,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			if resolveError := resolveOptions(command, &options, *configFilePath, func(configuration config.ApplicationConfiguration) config.GenerateCommandConfiguration {
				return configuration.Dir
			}); resolveError != nil {
				return resolveError
			}
			return runDir(arguments, options)
		},
	}

	addGenerateFlags(dirCommand, &options)
	dirCommand.Flags().BoolVarP(&options.watchEnabled, watchFlagName, "w", false, watchFlagDescription)
	return dirCommand
}

// runArchive generates documentation for a role stored in a zip archive.
func runArchive(zipPath string, options generateOptions) error {
	source, openError := role.OpenZipSource(zipPath)
	if openError != nil {
		return openError
	}
	defer source.Close()
	return generateAndDeliver(source, options)
}

// runDir generates documentation for one or more role directories.
func runDir(rolePaths []string, options generateOptions) error {
	if len(rolePaths) > 1 && options.outputPath != "" {
		return fmt.Errorf(errorOutputWithMultipleRoles)
	}
	if options.watchEnabled {
		if len(rolePaths) > 1 {
			return fmt.Errorf(errorWatchWithMultipleRoles)
		}
		return runDirWatch(rolePaths[0], options)
	}

	for _, rolePath := range rolePaths {
		source, openError := role.OpenDirSource(rolePath)
		if openError != nil {
			return openError
		}
		if generateError := generateAndDeliver(source, options); generateError != nil {
			return generateError
		}
	}
	return nil
}

// runDirWatch generates once and then regenerates on every change until the
// process is interrupted.
func runDirWatch(rolePath string, options generateOptions) error {
	loggerInstance, loggerError := utils.NewApplicationLogger()
	if loggerError != nil {
		return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
	}
	defer loggerInstance.Sync()

	regenerate := func() error {
		source, openError := role.OpenDirSource(rolePath)
		if openError != nil {
			return openError
		}
		return generateAndDeliver(source, options)
	}

	if firstRunError := regenerate(); firstRunError != nil {
		return firstRunError
	}

	watchCtx, cancelWatch := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancelWatch()

	return watch.Run(watchCtx, watch.Options{RolePath: rolePath}, regenerate, loggerInstance)
}

// generateAndDeliver extracts the role, renders the document, and routes it
// to the configured destinations.
func generateAndDeliver(source role.Source, options generateOptions) error {
	roleInformation := role.Extract(source)
	document, renderError := docgen.Render(roleInformation, options.format)
	if renderError != nil {
		return renderError
	}
	return deliverDocument(document, options)
}

// deliverDocument writes the document to the output file or stdout, then
// applies clipboard copy and token reporting.
func deliverDocument(document string, options generateOptions) error {
	if options.outputPath != "" {
		if writeError := os.WriteFile(options.outputPath, []byte(document), outputFilePermissions); writeError != nil {
			return fmt.Errorf(errorWriteOutputFormat, options.outputPath, writeError)
		}
		fmt.Printf(documentWrittenFormat, options.outputPath)
	} else {
		fmt.Println(document)
	}

	if options.clipboardEnabled {
		if copyError := clipboard.NewService().Copy(document); copyError != nil {
			return copyError
		}
	}

	if options.tokensEnabled {
		counter, resolvedModel, counterError := tokenizer.NewCounter(options.tokenModel)
		if counterError != nil {
			return counterError
		}
		countResult, countError := tokenizer.CountDocument(counter, document)
		if countError != nil {
			return countError
		}
		if countResult.Counted {
			fmt.Fprintf(os.Stderr, tokenCountFormat, countResult.Tokens, resolvedModel)
		}
	}

	return nil
}
