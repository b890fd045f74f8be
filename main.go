package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/grovemead/leasecraft/internal/api"
	"github.com/grovemead/leasecraft/internal/cli"
	"github.com/grovemead/leasecraft/internal/service"
	"github.com/grovemead/leasecraft/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`leasecraft - Terminal-based document template filling

USAGE:
    leasecraft [OPTIONS] [COMMAND]

OPTIONS:
    --help          Show this help information
    --version       Print version information
    --init          Initialize a new document library
    --api-server    Start the HTTP API server
    --port          Port for API server (default: 8080)

COMMANDS:
    (no command)       Start interactive TUI mode
    templates          List templates
    template           Template management (show, delete)
    list, ls           List working documents
    new, create <id>   Create a document from a template
    get, show <id>     Show a document
    detect <id>        Detect and list blank spaces
    fill <id> <b> <v>  Fill one blank space
    autofill <id>      Fill blanks from instruction record flags
    placeholders <id>  List blanks with labels and categories
    completion <id>    Show fill progress
    render <id>        Render a template with variables
    preview <id>       Print a document's current text
    copy <id>          Copy document text to clipboard
    generate <id>      Generate DOCX or plain-text output
    archive <id>       Move a document to the archive
    delete, rm <id>    Delete a document
    import <path>      Import .txt/.md files as templates
    doctypes           List document types
    help               Show CLI command help

EXAMPLES:
    leasecraft                                       # Start interactive mode
    leasecraft --init                                # Initialize new library
    leasecraft --api-server --port 9000              # Start API on port 9000
    leasecraft templates --format table              # List templates as a table
    leasecraft new lease-standard --name "Unit 4B"   # Create a working document
    leasecraft autofill unit-4b --tenant "J Smith"   # Fill blanks in order
    leasecraft generate unit-4b --output docx        # Produce the final file
    leasecraft help <command>                        # Get detailed help

STORAGE:
    Default directory: ~/.leasecraft
    Override with: LEASECRAFT_DIR=<path>
`)
}

func main() {
	var showVersion bool
	var initLib bool
	var showHelp bool
	var apiServer bool
	var port int

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&initLib, "init", false, "Initialize a new document library")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.BoolVar(&apiServer, "api-server", false, "Start the HTTP API server")
	flag.IntVar(&port, "port", 8080, "Port for API server")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("leasecraft version %s\n", version)
		os.Exit(0)
	}

	svc, err := service.NewService()
	if err != nil {
		fmt.Println(err)
		return
	}

	if initLib {
		if err := svc.InitLibrary(); err != nil {
			fmt.Println("Error initializing library:", err)
			return
		}
		fmt.Println("Initialized Leasecraft library")
		return
	}

	if apiServer {
		fmt.Printf("Starting API server on port %d...\n", port)
		srv := api.NewAPIServer(svc, port)
		if err := srv.Start(); err != nil {
			fmt.Printf("Error starting API server: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// CLI mode when arguments are present
	args := flag.Args()
	if len(args) > 0 {
		cliHandler := cli.NewCLI(svc)
		if err := cliHandler.ExecuteCommand(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// No arguments provided - start TUI mode
	model, err := ui.NewModel(svc)
	if err != nil {
		fmt.Println(err)
		return
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println(err)
		return
	}
}
