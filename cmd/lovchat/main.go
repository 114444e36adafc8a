package main

import (
	"log"

	"github.com/kvernberg/lovchat/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
