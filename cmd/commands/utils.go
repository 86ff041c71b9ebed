package commands

import (
	"fmt"
	"os"

	"clipvault/pkg/logger"
)

func ExitOnError(err error) {
	logger.Error("clipvault error", "err", err.Error())
	os.Exit(1)
}

func HandleHelp(_ []string) {
	fmt.Println(`usage: clipvault <command>

commands:
  run <config.yml>   start the server and trim worker
  version            print the version
  help               print this help`) //nolint
}
