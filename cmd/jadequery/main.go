// Command jadequery runs a SQL query against the JADE database and prints the
// result as a table.
//
// Credentials come from DB_READER_PASSWORD in the environment, ./.env,
// ~/.JADE.env or ~/.env.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
