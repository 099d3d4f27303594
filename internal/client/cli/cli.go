// Package cli implements the writersroom client commands: account
// management, document operations and the save/sync workflows.
package cli

import (
	"github.com/cjliu2003/writersroom-sub009/internal/client/auth"
	"github.com/cjliu2003/writersroom-sub009/internal/client/connectivity"
	"github.com/cjliu2003/writersroom-sub009/internal/client/data"
	"github.com/cjliu2003/writersroom-sub009/internal/client/iocli"
	"github.com/cjliu2003/writersroom-sub009/internal/client/storage"
	"github.com/cjliu2003/writersroom-sub009/internal/client/sync"
)

type Cli struct {
	io      iocli.IO
	auth    auth.Service
	docs    data.Service
	queue   storage.QueueStorage
	manager *sync.Manager
	prober  *connectivity.Prober
}

// New assembles the command handlers. prober may be nil; only the watch
// command uses it.
func New(io iocli.IO, authService auth.Service, docService data.Service, queue storage.QueueStorage, manager *sync.Manager, prober *connectivity.Prober) *Cli {
	return &Cli{
		io:      io,
		auth:    authService,
		docs:    docService,
		queue:   queue,
		manager: manager,
		prober:  prober,
	}
}

func (c *Cli) PrintUsage() {
	c.io.Println("Writersroom Client")
	c.io.Println("")
	c.io.Println("Usage:")
	c.io.Println("  writersroom [OPTIONS] COMMAND")
	c.io.Println("")
	c.io.Println("Options:")
	c.io.Println("  --config PATH   Path to config file (default: ~/.config/writersroom/config.toml)")
	c.io.Println("  --server URL    Server URL (overrides config)")
	c.io.Println("  --db PATH       Path to local database (overrides config)")
	c.io.Println("  --version       Show version information")
	c.io.Println("")
	c.io.Println("Commands:")
	c.io.Println("  register              Register a new account")
	c.io.Println("  login                 Log in to the server")
	c.io.Println("  logout                Log out and delete the local session")
	c.io.Println("  status                Show session and pending-save status")
	c.io.Println("  init-config           Write a sample config file")
	c.io.Println("  create <title>        Create a new document")
	c.io.Println("  list                  List locally known documents")
	c.io.Println("  get <id>              Show a document")
	c.io.Println("  save <id> <file>      Save file content to a document (- reads stdin)")
	c.io.Println("  watch <id> <file>     Watch a file and autosave edits until interrupted")
	c.io.Println("  sync [id]             Replay queued offline saves")
	c.io.Println("  forget <id>           Drop a document from the local cache")
	c.io.Println("")
	c.io.Println("Examples:")
	c.io.Println("  writersroom register")
	c.io.Println("  writersroom create \"Untitled Pilot\"")
	c.io.Println("  writersroom save b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5 draft.fountain")
	c.io.Println("  writersroom watch b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5 draft.fountain")
	c.io.Println("  writersroom --server https://example.com login")
}
