package main

import (
	"os"

	"github.com/Yimmi-urbano/dencia-app-front/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
