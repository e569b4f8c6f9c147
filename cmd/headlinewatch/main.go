package main

import (
	"headlinewatch/cmd/headlinewatch/commands"
	"headlinewatch/lib/serviceutil"

	"github.com/joho/godotenv"
)

func main() {
	// local dev keeps api keys in a .env file, missing is fine
	_ = godotenv.Load()
	commands.ExecuteContext(serviceutil.SignalContext())
}
