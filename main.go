package main

import (
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-sm808/cmd"
)

func main() {
	cmd.Execute()
}
