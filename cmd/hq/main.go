package main

import "homequest/cmd/hq/root"

func main() {
	root.Execute()
}
