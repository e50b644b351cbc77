package main

import (
	"os"

	kingpin "gopkg.in/alecthomas/kingpin.v2"
	"www.velocidex.com/golang/go-diskscan/parser"
)

var (
	ntfs_command = app.Command(
		"ntfs", "Display the NTFS boot sector and the attributes of the first $MFT record. "+
			"Fields are decoded at their full on-disk width, so values may differ "+
			"from tools which read only the low byte of wide fields.")

	ntfs_command_file_arg = ntfs_command.Arg(
		"file", "The image file to inspect",
	).Required().String()

	ntfs_command_attributes = ntfs_command.Flag(
		"attributes", "How many attributes to walk.",
	).Default("2").Int()
)

func doNtfs() {
	inspector := getInspector(*ntfs_command_file_arg)
	inspector.AttributeCount = *ntfs_command_attributes
	if inspector.AttributeCount <= 0 {
		inspector.AttributeCount = parser.DefaultAttributeCount
	}

	err := writeNtfs(os.Stdout, inspector, *json_flag)
	kingpin.FatalIfError(err, "NTFS")
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case "ntfs":
			doNtfs()
		default:
			return false
		}
		return true
	})
}
