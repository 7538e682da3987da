package main

import "shelfkeeper/cmd/client/cmd"

func main() {
	cmd.Execute()
}
