package main

import "github.com/frahmantamala/capacity-tracker/cmd"

func main() {
	cmd.Execute()
}
