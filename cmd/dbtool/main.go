package main

import (
	"os"

	"github.com/FitWiseApp/projeto-monorepo/internal/tools/dbtool"
)

func main() {
	if err := dbtool.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
