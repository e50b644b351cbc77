package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
	"www.velocidex.com/golang/go-diskscan/parser"
)

const (
	IMAGE_PROMPT  = "Image path: "
	OPTION_PROMPT = "Option: "

	menu_text = `
1. Partition table
2. FAT-16 layout and deleted file
3. NTFS $MFT attributes
4. Exit
`
)

var (
	menu_command = app.Command(
		"menu", "Inspect an image interactively.")

	menu_command_file_arg = menu_command.Arg(
		"file", "The image file to inspect. Prompted for when missing.",
	).String()
)

// Satisfied by *readline.Instance.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

func doMenu() {
	rl, err := readline.New(IMAGE_PROMPT)
	kingpin.FatalIfError(err, "Readline")
	defer rl.Close()

	err = runMenu(rl, os.Stdout, getInspector, *menu_command_file_arg)
	kingpin.FatalIfError(err, "Menu")
}

func isQuit(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt)
}

// runMenu prompts until an image opens and then runs the selected
// reports against it until the user exits. Report errors are shown
// and the menu carries on.
func runMenu(rl lineReader, out io.Writer,
	open func(path string) *parser.Inspector, path string) error {
	inspector, err := promptImage(rl, out, open, path)
	if err != nil {
		if isQuit(err) {
			return nil
		}
		return err
	}

	rl.SetPrompt(OPTION_PROMPT)
	for {
		fmt.Fprint(out, menu_text)

		line, err := rl.Readline()
		if err != nil {
			if isQuit(err) {
				return nil
			}
			return err
		}

		option := strings.TrimSpace(line)
		switch option {
		case "1":
			err = writePartitions(out, inspector, false)
		case "2":
			err = writeFat(out, inspector, false)
		case "3":
			err = writeNtfs(out, inspector, false)
		case "4":
			return nil
		default:
			fmt.Fprintf(out, "Invalid option %q\n", option)
			continue
		}

		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

func promptImage(rl lineReader, out io.Writer,
	open func(path string) *parser.Inspector, path string) (*parser.Inspector, error) {
	rl.SetPrompt(IMAGE_PROMPT)
	for {
		if path == "" {
			line, err := rl.Readline()
			if err != nil {
				return nil, err
			}
			path = strings.TrimSpace(line)
			continue
		}

		inspector := open(path)
		err := inspector.Check()
		if err == nil {
			return inspector, nil
		}

		fmt.Fprintf(out, "Can not open %v: %v\n", path, err)
		path = ""
	}
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case "menu":
			doMenu()
		default:
			return false
		}
		return true
	})
}
