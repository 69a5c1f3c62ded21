package ui

import (
	"strings"

	"github.com/microsoft/deployr-cli/internal/errors"
	"github.com/microsoft/deployr-cli/internal/logger"
)

// ShowError reports a failed command. API failures show the call and
// code, shallow errors only their message, anything else the full cause
// chain.
func ShowError(log logger.Logger, command string, err error) {
	if err == nil {
		return
	}

	log.Error("Error running command %s", command)

	var apiErr *errors.APIError
	switch {
	case errors.As(err, &apiErr):
		log.Error("DeployR API error on call %q", apiErr.Call)
		log.Error("Error Code: %d", apiErr.Code)
		log.Error("Error: %s", apiErr.Message)
	case errors.IsShallow(err):
		log.Error("%s", shortMessage(err))
	default:
		log.Error("%s", strings.TrimRight(err.Error(), "\n"))
	}
}

func shortMessage(err error) string {
	var structured *errors.Error
	if errors.As(err, &structured) {
		return structured.Message
	}
	return err.Error()
}
