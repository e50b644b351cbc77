package main

import (
	"os"

	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

var (
	partitions_command = app.Command(
		"partitions", "Display the MBR partition table.")

	partitions_command_file_arg = partitions_command.Arg(
		"file", "The image file to inspect",
	).Required().String()
)

func doPartitions() {
	err := writePartitions(os.Stdout,
		getInspector(*partitions_command_file_arg), *json_flag)
	kingpin.FatalIfError(err, "Partitions")
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case "partitions":
			doPartitions()
		default:
			return false
		}
		return true
	})
}
