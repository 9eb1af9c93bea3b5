package main

import (
	"os"

	"github.com/KartikeAnuj/Disaster-Management/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
