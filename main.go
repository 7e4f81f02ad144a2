package main

import "gravelmatch-backend/cmd"

func main() {
	cmd.Run()
}
