package main

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"www.velocidex.com/golang/go-diskscan/parser"
)

var (
	printer = message.NewPrinter(language.English)
)

// getInspector applies the global flags to an inspector for path.
func getInspector(path string) *parser.Inspector {
	inspector := parser.NewInspector(path)
	inspector.Offset = *image_offset_flag
	inspector.RecordDir = *record_flag
	return inspector
}

func writeJSON(out io.Writer, item interface{}) error {
	serialized, err := json.MarshalIndent(item, "", " ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(serialized))
	return err
}

// number renders n with thousands separators.
func number(n interface{}) string {
	return printer.Sprintf("%d", n)
}
