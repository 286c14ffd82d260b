package main

import (
	"newsdigest/cmd/cmd"
	"newsdigest/internal/logger"
)

func main() {
	logger.Init() // Initialize the logger
	cmd.Execute()
}
