// cmd/benchmark/main.go
package main

import (
	cmd "github.com/LiquidAI-project/rust-ml-benchmark/internal/commands"
)

// main starts the benchmark harness CLI by delegating to the cobra root
// command. Exit status is 0 on a completed campaign and 1 on any fatal
// startup error.
func main() {
	cmd.Execute()
}
