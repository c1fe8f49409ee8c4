package main

import "catalog-insights/cmd"

func main() {
	cmd.Execute()
}
