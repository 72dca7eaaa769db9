package main

import "library-sync/cmd"

func main() {
	cmd.Execute()
}
