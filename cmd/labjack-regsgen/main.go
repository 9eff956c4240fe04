// Command labjack-regsgen materializes a LabJack vendor register JSON
// description into Go source for the registers package: one access-control
// wrapped Go value per catalog entry, named after the vendor name with only
// invalid identifier characters removed (PRODUCT_ID stays PRODUCT_ID, not
// PascalCase), plus a byName map keyed by "Name" followed by that same
// identifier. It does not emit the Name type or its constants; those live in
// registers/catalog.go, whose constants are spelled differently for names
// containing underscores (NameProductID, not NamePRODUCT_ID), so the output
// does not compile against catalog.go unedited. The package ships a
// hand-curated generated.go already.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"text/template"
)

var catalogTemplate = template.Must(template.New("catalog").Parse(`// Code generated by labjack-regsgen. DO NOT EDIT.

package registers

import "github.com/bennjii/labjack/internal/modbus"

{{range .}}
var {{.GoIdent}} = modbus.{{.Constructor}}(modbus.Register{Address: {{.Address}}, DataType: modbus.{{.DataType}}})
{{end}}

var byName = map[Name]modbus.Register{
{{range .}}	Name{{.GoIdent}}: {{.GoIdent}}.Register(),
{{end}}}
`))

// constructor maps the vendor readwrite string onto the matching
// access-control wrapper constructor in package modbus.
func constructor(readWrite string) string {
	switch readWrite {
	case "R":
		return "NewReadOnlyRegister"
	case "W":
		return "NewWriteOnlyRegister"
	default:
		return "NewReadWriteRegister"
	}
}

type templateEntry struct {
	entry
	Constructor string
}

func main() {
	in := flag.String("in", "", "path to vendor register JSON")
	out := flag.String("out", "", "path to write generated Go source")
	flag.Parse()

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "labjack-regsgen: -in and -out are required")
		os.Exit(2)
	}

	if err := run(*in, *out); err != nil {
		fmt.Fprintln(os.Stderr, "labjack-regsgen:", err)
		os.Exit(1)
	}
}

func run(inPath, outPath string) error {
	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open vendor json: %w", err)
	}
	defer f.Close()

	entries, err := loadRegistry(f)
	if err != nil {
		return err
	}

	templated := make([]templateEntry, len(entries))
	for i, e := range entries {
		templated[i] = templateEntry{entry: e, Constructor: constructor(e.ReadWrite)}
	}

	var buf bytes.Buffer
	if err := catalogTemplate.Execute(&buf, templated); err != nil {
		return fmt.Errorf("render template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("gofmt generated source: %w", err)
	}

	if err := os.WriteFile(outPath, formatted, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
