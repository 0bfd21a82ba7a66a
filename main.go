package main

import "github.com/pocketvibe/pocketvibe-backend/cmd"

func main() {
	cmd.Init()
}
