package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/hvacgrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("hvacgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
hvacgrid - Edit the parameters of HVAC building components.

Usage:
  hvacgrid [options] [BUILDING_PATH]

Arguments:
  BUILDING_PATH
    Path to a .hcl or .yaml building file, or a directory containing them.

Examples:
  hvacgrid -component Envelope.zone_a -set 'R_env[1]=0.20' building.hcl
  hvacgrid -new RTU -interactive

Options:
`)
		flagSet.PrintDefaults()
	}

	var edits []app.Edit
	buildingFlag := flagSet.String("building", "", "Path to the building file or directory.")
	bFlag := flagSet.String("b", "", "Path to the building file or directory (shorthand).")
	componentFlag := flagSet.String("component", "", "Component to edit, as Type.name. Defaults to the first one.")
	newFlag := flagSet.String("new", "", "Drop a new component of this type and edit it.")
	flagSet.Func("set", "Scripted edit: field=value, field[i]=value or field[r][c]=value. Repeatable.", func(s string) error {
		e, err := app.ParseEdit(s)
		if err != nil {
			return err
		}
		edits = append(edits, e)
		return nil
	})
	cancelFlag := flagSet.Bool("cancel", false, "Discard the scripted edits instead of saving them.")
	interactiveFlag := flagSet.Bool("interactive", false, "Edit the component in an interactive terminal form.")
	listFlag := flagSet.Bool("list", false, "Print the editable fields of every component type and exit.")
	outputFlag := flagSet.String("output", "text", "Result format. Options: 'text' or 'hcl'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *buildingFlag != "" {
		path = *buildingFlag
	} else if *bFlag != "" {
		path = *bFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Building path determined.", "path", path)

	if path == "" && *newFlag == "" && !*listFlag {
		slog.Debug("No building path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		BuildingPath: path,
		Component:    *componentFlag,
		NewType:      *newFlag,
		Edits:        edits,
		Cancel:       *cancelFlag,
		Interactive:  *interactiveFlag,
		List:         *listFlag,
		Output:       strings.ToLower(*outputFlag),
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
