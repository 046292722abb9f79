package main

import "github.com/frahmantamala/inventory-tracker/cmd"

func main() {
	cmd.Execute()
}
