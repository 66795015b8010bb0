package main

import "github.com/chyehsia/npp-updater/cmd/npp-updater/cmd"

func main() {
	cmd.Execute()
}
