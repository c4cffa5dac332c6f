package main

import "github.com/99minutos/marketplace-system/cmd/marketplace/commands"

func main() {
	commands.Execute()
}
