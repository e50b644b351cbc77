package main

import (
	"os"

	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

var (
	fat_command = app.Command(
		"fat", "Display the FAT-16 layout and the first deleted root directory entry. "+
			"Fields are decoded at their full on-disk width, so values may differ "+
			"from tools which read only the low byte of wide fields.")

	fat_command_file_arg = fat_command.Arg(
		"file", "The image file to inspect",
	).Required().String()
)

func doFat() {
	err := writeFat(os.Stdout, getInspector(*fat_command_file_arg), *json_flag)
	kingpin.FatalIfError(err, "FAT")
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case "fat":
			doFat()
		default:
			return false
		}
		return true
	})
}
