package main

import (
	"fmt"
	"os"
)

func helper() {
	os.Exit(2)
}

func main() {
	defer fmt.Println("never printed")
	go func() {
		os.Exit(3)
	}()
	if len(os.Args) > 1 {
		helper()
	}
	os.Exit(1) // want "direct os.Exit call in main function"
}
