package main

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// vendorEntry is one row of LabJack's vendor register JSON, per spec §4.2's
// output contract: {name, address, type, readwrite, devices, tags,
// description}.
type vendorEntry struct {
	Name        string   `json:"name"`
	Address     int      `json:"address"`
	Type        string   `json:"type"`
	ReadWrite   string   `json:"readwrite"`
	Devices     []string `json:"devices"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
}

// entry is a resolved catalog row after range-expansion, ready for
// templating into Go source.
type entry struct {
	Name      string
	GoIdent   string
	Address   int
	DataType  string
	ReadWrite string
}

var rangePattern = regexp.MustCompile(`^([A-Za-z0-9]+)#\((\d+):(\d+)\)(?:_(\w+))?$`)

// sizeWords mirrors modbus.DataType.SizeWords for the vendor type strings.
func sizeWords(dataType string) (int, error) {
	switch strings.ToUpper(dataType) {
	case "U16", "BYTE":
		return 1, nil
	case "U32", "I32", "F32":
		return 2, nil
	case "U64":
		return 4, nil
	}
	return 0, fmt.Errorf("labjack-regsgen: unknown data type %q", dataType)
}

// expand resolves a single vendor entry into one or more catalog entries,
// applying the BASE#(a:b)[_SUFFIX] range-expansion rule from spec §4.2: each
// index i in [a,b] becomes its own register at address = base + i*size_words.
func expand(v vendorEntry) ([]entry, error) {
	words, err := sizeWords(v.Type)
	if err != nil {
		return nil, err
	}

	m := rangePattern.FindStringSubmatch(v.Name)
	if m == nil {
		return []entry{{
			Name:      v.Name,
			GoIdent:   goIdent(v.Name),
			Address:   v.Address,
			DataType:  strings.ToUpper(v.Type),
			ReadWrite: strings.ToUpper(v.ReadWrite),
		}}, nil
	}

	base, suffix := m[1], m[4]
	lo, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, err
	}
	hi, err := strconv.Atoi(m[3])
	if err != nil {
		return nil, err
	}

	var out []entry
	for i := lo; i <= hi; i++ {
		name := fmt.Sprintf("%s%d", base, i)
		if suffix != "" {
			name = fmt.Sprintf("%s%d_%s", base, i, suffix)
		}
		out = append(out, entry{
			Name:      name,
			GoIdent:   goIdent(name),
			Address:   v.Address + i*words,
			DataType:  strings.ToUpper(v.Type),
			ReadWrite: strings.ToUpper(v.ReadWrite),
		})
	}
	return out, nil
}

// goIdent keeps vendor names (already catalog-style, e.g. "AIN0", "DAC1") as
// valid, exported Go identifiers; it only strips characters Go identifiers
// can't contain.
func goIdent(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// loadRegistry parses vendor register JSON into its expanded catalog
// entries.
func loadRegistry(r io.Reader) ([]entry, error) {
	var vendor []vendorEntry
	if err := json.NewDecoder(r).Decode(&vendor); err != nil {
		return nil, fmt.Errorf("labjack-regsgen: decode vendor json: %w", err)
	}

	var out []entry
	for _, v := range vendor {
		expanded, err := expand(v)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}
