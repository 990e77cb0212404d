package main

import (
	"fmt"
	"io"

	"github.com/alexisbeaulieu97/qdxstudio/internal/config"
	"github.com/alexisbeaulieu97/qdxstudio/internal/logger"
)

// appContext bundles the process configuration and logger shared by commands.
type appContext struct {
	Env config.Env
	Log *logger.Logger
}

func newAppContext(flags *rootFlags, logOut io.Writer) (*appContext, error) {
	var files []string
	if flags.envFile != "" {
		files = append(files, flags.envFile)
	}
	env := config.LoadEnv(files...)

	level := env.LogLevel
	if flags.verbose {
		level = "debug"
	}

	log, err := logger.New(logger.Options{Level: level, HumanReadable: true, Writer: logOut})
	if err != nil {
		return nil, newCommandError(
			"configure logging",
			fmt.Sprintf("log level %q", level),
			err,
			"Set QDX_LOG_LEVEL to one of debug, info, warn or error",
		)
	}
	return &appContext{Env: env, Log: log}, nil
}
