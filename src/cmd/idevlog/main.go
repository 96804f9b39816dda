// FILE: idevlog/src/cmd/idevlog/main.go
package main

import (
	"errors"
	"flag"
	"os"
)

func main() {
	router := NewCommandRouter()

	if err := router.Route(os.Args[1:]); err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			os.Exit(0)
		case errors.Is(err, errUnknownCommand):
			os.Exit(2)
		default:
			FatalError(1, "Error: %v\n", err)
		}
	}
}
