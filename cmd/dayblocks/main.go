package main

import (
	"log"

	"github.com/sandeepkv93/dayblocks/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatalf("dayblocks: %v", err)
	}
}
