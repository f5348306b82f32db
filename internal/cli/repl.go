package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isUnlocked() bool
	Setup(ctx context.Context) error
	Unlock(ctx context.Context) error
	Biometric(ctx context.Context) error
	Lock(ctx context.Context) error
	ResetPIN(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Sign(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
	Attach(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Search(ctx context.Context) error
	Stats(ctx context.Context) error
	Delete(ctx context.Context, args []string) error
}

const (
	helpLocked   = "Available commands: setup, unlock, bio, exit"
	helpUnlocked = "Available commands: (l)ist [date|status|type], show <id>, add, sign <id>, status <id> <status>, " +
		"attach <id> <path>, export <id> <path> [full|preview|thumbnail], search, stats, delete <id>, resetpin, lock, exit"
)

var unlockedCommands = map[string]bool{
	"l": true, "list": true, "show": true, "add": true, "sign": true, "status": true,
	"attach": true, "export": true, "search": true, "stats": true, "delete": true,
	"resetpin": true, "lock": true,
}

// runREPL starts a read–eval–print loop for the PaperRoost CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user
// types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Locked:
//	  - help             show available commands
//	  - setup            create a PIN (first launch only)
//	  - unlock           enter the PIN
//	  - bio              unlock with biometrics
//	  - exit | quit      leave the program
//
//	Unlocked:
//	  - list [key]       list contracts sorted by date, status or type
//	  - show <id>        contract details
//	  - add              new contract, including its signature
//	  - sign <id>        replace a signature
//	  - status <id> <status>
//	  - attach <id> <path>
//	  - export <id> <path> [size]
//	  - search, stats
//	  - delete <id>
//	  - resetpin, lock
//	  - exit | quit
//
// Contract commands typed while locked are refused. Errors returned by
// handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("paperroost %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if !a.isUnlocked() {
			dispatchLocked(ctx, a, cmd)
			continue
		}
		dispatchUnlocked(ctx, a, cmd, args)
	}
}

func dispatchLocked(ctx context.Context, a execIface, cmd string) {
	var err error
	switch cmd {
	case "help":
		printlnFn(helpLocked)
	case "setup":
		err = a.Setup(ctx)
	case "unlock":
		err = a.Unlock(ctx)
	case "bio":
		err = a.Biometric(ctx)
	default:
		if unlockedCommands[cmd] {
			printlnFn("The vault is locked. Use 'unlock' first.")
			return
		}
		printlnFn("Unknown command:", cmd)
	}
	if err != nil {
		printlnFn("Error:", err)
	}
}

func dispatchUnlocked(ctx context.Context, a execIface, cmd string, args []string) {
	var err error
	switch cmd {
	case "help":
		printlnFn(helpUnlocked)
	case "l", "list":
		err = a.List(ctx, args)
	case "show":
		err = a.Show(ctx, args)
	case "add":
		err = a.Add(ctx)
	case "sign":
		err = a.Sign(ctx, args)
	case "status":
		err = a.Status(ctx, args)
	case "attach":
		err = a.Attach(ctx, args)
	case "export":
		err = a.Export(ctx, args)
	case "search":
		err = a.Search(ctx)
	case "stats":
		err = a.Stats(ctx)
	case "delete":
		err = a.Delete(ctx, args)
	case "resetpin":
		err = a.ResetPIN(ctx)
	case "lock":
		err = a.Lock(ctx)
	case "setup", "unlock", "bio":
		printlnFn("The vault is already unlocked.")
	default:
		printlnFn("Unknown command:", cmd)
	}
	if err != nil {
		printlnFn("Error:", err)
	}
}
