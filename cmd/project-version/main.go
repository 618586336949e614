package main

import "github.com/oshokin/project-version/cmd/project-version/cmd"

func main() {
	cmd.Execute()
}
