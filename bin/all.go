package main

import (
	"os"

	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

var (
	all_command = app.Command(
		"all", "Emit every report on the image as JSON.")

	all_command_file_arg = all_command.Arg(
		"file", "The image file to inspect",
	).Required().String()
)

func doAll() {
	report, err := getInspector(*all_command_file_arg).All()
	kingpin.FatalIfError(err, "Can not open image")

	err = writeJSON(os.Stdout, report)
	kingpin.FatalIfError(err, "Marshal")
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case "all":
			doAll()
		default:
			return false
		}
		return true
	})
}
