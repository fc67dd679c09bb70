package main

import "github.com/Beastly713/hashira/cmd"

func main() {
	cmd.Execute()
}
