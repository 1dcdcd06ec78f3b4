package main

import (
	"fmt"

	"github.com/iwebbo/AnsibleRoleDoc/internal/cli"
	"github.com/iwebbo/AnsibleRoleDoc/internal/utils"
)

// main is the entry point for the ansibleroledoc command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger()
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer loggerInstance.Sync()
	if applicationExecutionError := cli.Execute(); applicationExecutionError != nil {
		loggerInstance.Fatal(utils.ApplicationExecutionFailedMessage + ": " + applicationExecutionError.Error())
	}
}
