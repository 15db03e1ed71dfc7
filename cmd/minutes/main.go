package main

import (
	"audio-minutes/cmd/minutes/cmd"
)

func main() {
	cmd.Execute()
}
