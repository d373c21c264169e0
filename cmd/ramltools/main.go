package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/ramltools"
	"github.com/erraggy/ramltools/cmd/ramltools/commands"
	"github.com/erraggy/ramltools/internal/mcpserver"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("ramltools %s\n", ramltools.Version())
		fmt.Println(ramltools.BuildInfo())
	case "help", "-h", "--help":
		printUsage()
	case "validate":
		if err := commands.HandleValidate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "parse":
		if err := commands.HandleParse(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err := mcpserver.Run(ctx)
		stop()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

var knownCommands = []string{"validate", "parse", "mcp", "version", "help"}

// suggestCommand returns the known command closest to input, or "" when
// none is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, cmd := range knownCommands {
		if d := editDistance(input, cmd); d < bestDist {
			best, bestDist = cmd, d
		}
	}
	return best
}

func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Print(`ramltools - RAML 0.8 API specification tools

Usage:
  ramltools <command> [flags] [arguments]

Commands:
  validate    Validate a RAML file against the semantic rules and whitelists
  parse       Parse a RAML file and summarise its structure
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  ramltools validate api.raml
  ramltools validate --config whitelist.yaml api.raml
  cat api.raml | ramltools validate -q -
  ramltools parse --format json api.raml

Run 'ramltools <command> --help' for more information on a command.
`)
}
