package main

import "github.com/alexiusacademia/rcfiber/cmd"

func main() {
	cmd.Execute()
}
