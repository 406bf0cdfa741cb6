package main

import (
	"github.com/cumenu/yemekhane/cmd"
)

func main() {
	cmd.Execute()
}
