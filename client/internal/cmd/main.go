package main

import (
	"log"

	"bastion/client/pkg/cmd"
)

func main() {
	bastionCmd, err := cmd.New()
	if err != nil {
		log.Fatal(err)
	}

	if err := bastionCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
