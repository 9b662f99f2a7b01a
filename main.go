package main

import "event-finder/cmd"

func main() {
	cmd.Execute()
}
