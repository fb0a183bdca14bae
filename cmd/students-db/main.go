// main is the entry point of the students-db tool.
//
// Everything interesting lives in internal/cli — keeping main this thin
// means the whole command tree can be constructed and exercised from
// tests without spawning a process.
//
// RUNNING IT:
//
//	go run ./cmd/students-db                  # interactive menu
//	go run ./cmd/students-db list             # one-shot subcommand
//	go run ./cmd/students-db --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/students-db
package main

import "github.com/greghah/students-db/internal/cli"

func main() {
	cli.Execute()
}
