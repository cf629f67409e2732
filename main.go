package main

import "github.com/gogotex/usergroups/cmd"

func main() {
	cmd.Execute()
}
