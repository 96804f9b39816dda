// FILE: idevlog/src/cmd/idevlog/commands.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"idevlog/src/internal/config"
	"idevlog/src/internal/deviceinfo"
	"idevlog/src/internal/version"
)

var errUnknownCommand = errors.New("unknown command")

// CommandHandler is a subcommand
type CommandHandler interface {
	Execute(args []string) error
	Description() string
}

// CommandRouter dispatches the first argument to a subcommand. Arguments
// starting with a flag select the default command.
type CommandRouter struct {
	commands map[string]CommandHandler
	order    []string
	fallback string
}

func NewCommandRouter() *CommandRouter {
	r := &CommandRouter{
		commands: make(map[string]CommandHandler),
		fallback: "syslog",
	}

	r.register("syslog", &syslogCommand{})
	r.register("info", &infoCommand{})
	r.register("config", &configCommand{})
	r.register("version", &versionCommand{})
	r.register("help", &helpCommand{})

	return r
}

func (r *CommandRouter) register(name string, h CommandHandler) {
	r.commands[name] = h
	r.order = append(r.order, name)
}

// Route executes the command selected by args (program name excluded)
func (r *CommandRouter) Route(args []string) error {
	name, rest := r.fallback, args
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		if _, ok := r.commands[args[0]]; !ok {
			Error("Unknown command: %s\n\nAvailable commands:\n", args[0])
			r.ShowCommands()
			return fmt.Errorf("%w: %s", errUnknownCommand, args[0])
		}
		name, rest = args[0], args[1:]
	}

	return r.commands[name].Execute(rest)
}

func (r *CommandRouter) ShowCommands() {
	for _, name := range r.order {
		Error("  %-10s %s\n", name, r.commands[name].Description())
	}
	Error("\nUse 'idevlog help' for options\n")
}

type syslogCommand struct{}

func (c *syslogCommand) Execute(args []string) error {
	flags, err := ParseFlags("syslog", args, os.Stderr)
	if err != nil {
		return err
	}
	cfg, err := setup(flags)
	if err != nil {
		return err
	}
	defer shutdownLogger()

	return runSyslog(cfg, flags)
}

func (c *syslogCommand) Description() string {
	return "Stream the device syslog (default)"
}

type infoCommand struct{}

func (c *infoCommand) Execute(args []string) error {
	flags, err := ParseFlags("info", args, os.Stderr)
	if err != nil {
		return err
	}
	cfg, err := setup(flags)
	if err != nil {
		return err
	}
	defer shutdownLogger()

	conn, err := buildConnection(cfg)
	if err != nil {
		return err
	}
	src := deviceinfo.NewExecSource(conn.UDID(), cfg.Info.Command, logger)
	info, err := deviceinfo.New(deviceTarget(conn), src, logger)
	if err != nil {
		return err
	}

	domain, err := deviceinfo.ParseDomain(cfg.Info.Domain)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if flags.Key != "" {
		value, err := info.GetValue(ctx, flags.Key, domain)
		if err != nil {
			return err
		}
		Print("%s\n", value)
		return nil
	}

	values, err := info.GetValues(ctx, domain)
	if err != nil {
		return err
	}
	return deviceinfo.Render(output.Stdout(), values, cfg.Info.Format)
}

func (c *infoCommand) Description() string {
	return "Print device properties"
}

type configCommand struct{}

func (c *configCommand) Execute(args []string) error {
	path := config.GetConfigPath()
	force := false
	for _, arg := range args {
		switch {
		case arg == "-force" || arg == "--force":
			force = true
		case strings.HasPrefix(arg, "-"):
			return fmt.Errorf("unknown option: %s", arg)
		default:
			path = arg
		}
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s exists, use -force to overwrite", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := config.Default().SaveToFile(path); err != nil {
		return err
	}

	Print("Wrote %s\n", path)
	return nil
}

func (c *configCommand) Description() string {
	return "Write the default configuration file"
}

type versionCommand struct{}

func (c *versionCommand) Execute(args []string) error {
	Print("%s\n", version.String())
	return nil
}

func (c *versionCommand) Description() string {
	return "Show version information"
}

type helpCommand struct{}

func (c *helpCommand) Execute(args []string) error {
	Print("%s", helpText)
	return nil
}

func (c *helpCommand) Description() string {
	return "Display help information"
}
