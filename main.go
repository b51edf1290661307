// main.go - Application entrypoint
package main

import "mvtserve/cmd"

func main() {
	cmd.Execute()
}
