package main

import (
	"fmt"
	"os"
)

func main() {
	// Thread hints are read exactly once and passed down explicitly;
	// nothing below consults the environment again.
	hints := readThreadHints()

	if len(os.Args) > 1 {
		cmd := os.Args[1]
		switch cmd {
		case "bench":
			if err := RunBenchCommand(hints, os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "micro":
			if err := RunMicroCommand(hints, os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "help", "-h", "--help":
			printUsage()
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
			printUsage()
			os.Exit(1)
		}
	}

	printUsage()
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run . [command] [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  bench   Run the full instance suite (both path strategies)")
	fmt.Println("  micro   Run the fixed single-contraction cost decomposition")
	fmt.Println("  help    Show this help message")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  go run . bench -data=data/instances -runs=5")
	fmt.Println("  go run . micro -runs=15")
	fmt.Println("  GOMAXPROCS=4 go run . micro")
	fmt.Println()
}
