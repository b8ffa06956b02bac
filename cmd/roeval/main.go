package main

import (
	"roeval/cmd/roeval/commands"
	"roeval/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
