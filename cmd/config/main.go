package main

import (
	"fmt"
	"os"

	"tunkrank/util"
)

func main() {
	if len(os.Args) != 2 || os.Args[1] != "sync" {
		fmt.Println("usage: ./bin/config sync")
		return
	}

	if err := util.SynchronizeConfigs(); err != nil {
		fmt.Println("Failed to synchronize config files", err)
	}
}
