// Command surql compiles typed query files to SurrealQL and SQL.
package main

import (
	"fmt"
	"os"

	"github.com/zoobzio/surql/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
