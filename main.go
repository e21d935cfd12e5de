package main

import (
	"log"

	"github.com/meetwise/meetwise/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
