package cli

import (
	"context"
	"fmt"
)

// Run dispatches one command. Argument validation happens in the individual
// command handlers.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "create":
		return c.runCreate(ctx, args)
	case "list":
		return c.runList(ctx)
	case "get":
		return c.runGet(ctx, args)
	case "save":
		return c.runSave(ctx, args)
	case "watch":
		return c.runWatch(ctx, args)
	case "sync":
		return c.runSync(ctx, args)
	case "forget":
		return c.runForget(ctx, args)
	default:
		c.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}
