package main

import (
	"github.com/metwallusion/BankStatement/cmd/root"
	"github.com/metwallusion/BankStatement/cmd/serve"
)

func main() {
	root.Cmd.AddCommand(serve.Cmd)
	root.Execute()
}
