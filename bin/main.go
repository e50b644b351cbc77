package main

import (
	"encoding/json"
	"fmt"
	"os"

	kingpin "gopkg.in/alecthomas/kingpin.v2"
	"www.velocidex.com/golang/go-diskscan/parser"
)

type CommandHandler func(command string) bool

var (
	app = kingpin.New("diskscan",
		"A tool for inspecting the partitions, FAT-16 and NTFS volumes of raw disk images.")

	debug_flag = app.Flag(
		"debug", "Print debug information and decoder statistics.",
	).Bool()

	record_flag = app.Flag(
		"record", "Record every read from the image into this directory.",
	).String()

	image_offset_flag = app.Flag(
		"image_offset", "Bytes preceding the MBR in the image.",
	).Default("0").Int64()

	json_flag = app.Flag(
		"json", "Emit reports as JSON instead of tables.",
	).Bool()

	command_handlers []CommandHandler
)

func main() {
	app.HelpFlag.Short('h')
	app.UsageTemplate(kingpin.CompactUsageTemplate)
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if *debug_flag {
		parser.SetDebug(true)
	}

	for _, command_handler := range command_handlers {
		if command_handler(command) {
			break
		}
	}

	if *debug_flag {
		serialized, err := json.MarshalIndent(parser.STATS.Dict(), "", " ")
		kingpin.FatalIfError(err, "Marshal")
		fmt.Fprintln(os.Stderr, string(serialized))
	}
}
