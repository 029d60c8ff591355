// Package main boots the calcgate server.
package main

import (
	"fmt"
	"os"

	_ "github.com/ncobase/calcgate/data/postgres"
	_ "github.com/ncobase/calcgate/data/redis"
	_ "github.com/ncobase/calcgate/data/sqlite"
	_ "github.com/ncobase/calcgate/results/remote"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
