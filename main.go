package main

import "github.com/theirongolddev/chatrecap/cmd"

func main() {
	cmd.Execute()
}
