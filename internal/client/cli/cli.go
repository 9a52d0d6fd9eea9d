// Package cli implements the interactive command surface of the client.
package cli

import (
	"context"
	"fmt"

	"github.com/loreforge/loreforge/internal/client/auth"
	"github.com/loreforge/loreforge/internal/client/data"
	"github.com/loreforge/loreforge/internal/client/iocli"
	"github.com/loreforge/loreforge/internal/client/sync"
)

type Cli struct {
	io          iocli.IO
	authService auth.Service
	dataService data.Service
	syncService sync.Service
	projectID   string
}

func New(io iocli.IO, authService auth.Service, dataService data.Service, syncService sync.Service, projectID string) *Cli {
	return &Cli{
		io:          io,
		authService: authService,
		dataService: dataService,
		syncService: syncService,
		projectID:   projectID,
	}
}

// Run dispatches a command. Unknown commands return an error after printing
// usage.
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
	case "add":
		return c.runAdd(ctx, args)
	case "list":
		return c.runList(ctx)
	case "get":
		return c.runGet(ctx, args)
	case "edit":
		return c.runEdit(ctx, args)
	case "delete":
		return c.runDelete(ctx, args)
	case "sync":
		return c.runSync(ctx)
	case "conflicts":
		return c.runConflicts(ctx, args)
	default:
		c.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func (c *Cli) PrintUsage() {
	c.io.Println("Usage: loreforge [flags] <command> [args]")
	c.io.Println()
	c.io.Println("Account:")
	c.io.Println("  register                  Create a new account")
	c.io.Println("  login                     Log in and store the session")
	c.io.Println("  logout                    Remove the stored session")
	c.io.Println("  status                    Show session and sync status")
	c.io.Println()
	c.io.Println("Elements:")
	c.io.Println("  add <category>            Add an element (character, location, faction, custom)")
	c.io.Println("  list                      List elements in the project")
	c.io.Println("  get <id>                  Show one element")
	c.io.Println("  edit <id>                 Edit an element")
	c.io.Println("  delete <id>               Delete an element")
	c.io.Println()
	c.io.Println("Synchronization:")
	c.io.Println("  sync                      Synchronize the project with the server")
	c.io.Println("  conflicts                 List recorded conflicts")
	c.io.Println("  conflicts dismiss <id>    Remove a reviewed conflict record")
	c.io.Println()
	c.io.Println("Flags:")
	c.io.Println("  -project <id>             Project to operate on (default \"default\")")
	c.io.Println("  -server <url>             Server base URL")
	c.io.Println("  -db <path>                Local database path")
}
