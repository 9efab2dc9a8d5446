package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "demo":
		if err := demo(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "replay":
		if err := replay(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "prove":
		if err := prove(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("tokenledger version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tokenledger - token ledger with journaled events and transition proofs

Usage:
  tokenledger <command> [options]

Commands:
  demo       Run a scripted ledger scenario and journal its events
  replay     Replay a journal stream from a SQLite file
  prove      Generate and verify a transfer transition proof
  help       Show this help message
  version    Show version information

Examples:
  # Run the demo against an in-memory journal
  tokenledger demo

  # Run the demo and persist the journal
  tokenledger demo --journal ledger.db

  # Replay the persisted journal
  tokenledger replay --journal ledger.db

  # Prove a transfer of 40 from a balance of 100
  tokenledger prove --balance 100 --amount 40

For command-specific help, run:
  tokenledger <command> --help`)
}
