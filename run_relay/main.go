package main

import (
	"log"
	"os"

	"arenagame/relay"
)

func main() {
	address := "localhost:4242"
	if len(os.Args) > 1 {
		address = os.Args[1]
	}
	if err := relay.Run(address); err != nil {
		log.Fatal(err)
	}
}
