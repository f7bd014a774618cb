package locgen

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"strings"
	"text/template"

	"github.com/andreiashu/locgen/lookup"
)

// TableFormat selects the source language of the emitted lookup table.
type TableFormat string

const (
	FormatGo  TableFormat = "go"
	FormatCpp TableFormat = "cpp"
)

// ParseTableFormat validates a format name.
func ParseTableFormat(s string) (TableFormat, error) {
	switch f := TableFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatGo, FormatCpp:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (want %q or %q)", ErrUnknownFormat, s, FormatGo, FormatCpp)
}

// Ext returns the file extension conventionally used for the format.
func (f TableFormat) Ext() string {
	if f == FormatCpp {
		return ".cpp"
	}
	return ".go"
}

// lookupImportPath is the package generated Go tables compile against.
const lookupImportPath = "github.com/andreiashu/locgen/lookup"

// TableOptions controls lookup table rendering.
type TableOptions struct {
	Format  TableFormat
	Package string // Go package name, or C++ namespace for FormatCpp
}

// BuildLookupTable pairs every global block ID with the resource ID of its
// location string. The result is strictly ascending by block ID.
func BuildLookupTable(m *BlockMapping, st *StringTable) []lookup.Entry {
	entries := make([]lookup.Entry, 0, m.Len())
	m.Each(func(id int32, location string) {
		sid, ok := st.ID(location)
		if !ok {
			// Every mapped location is interned by construction.
			panic(fmt.Sprintf("location %q for block %d not interned", location, id))
		}
		entries = append(entries, lookup.Entry{Block: id, StringID: sid})
	})
	return entries
}

var goTableTemplate = template.Must(template.New("go").Parse(`// Code generated by generate-locations. DO NOT EDIT.

package {{.Package}}

import "{{.Import}}"

// blockIDToLocationStringID maps global block IDs to location string
// resource IDs. MustTable checks the ordering at startup.
var blockIDToLocationStringID = lookup.MustTable([]lookup.Entry{
{{- range .Entries}}
	{Block: {{.Block}}, StringID: {{.StringID}}},
{{- end}}
})

// Init loads the location name strings.
func Init(loader lookup.StringLoader) error {
	return blockIDToLocationStringID.Init(loader)
}

// FindLocationName returns the name of a block's location, if known.
func FindLocationName(block int32) (string, bool) {
	return blockIDToLocationStringID.FindLocationName(block)
}
`))

var cppTableTemplate = template.Must(template.New("cpp").Delims("[[", "]]").Parse(`#include "pch.h"
#include "location.h"
#include "util.h"
#include <algorithm>
#include <array>
#include <memory>
#include <utility>

namespace [[.Package]] {
namespace {
constexpr size_t count = [[len .Entries]];

constexpr std::array<std::pair<int32_t, unsigned int>, count> blockIDToLocationStringID{{
[[- range .Entries]]
	{[[.Block]], [[.StringID]]},
[[- end]]
}};

static_assert(std::is_sorted(blockIDToLocationStringID.cbegin(), blockIDToLocationStringID.cend()));

// The loaded string resources, in the same order as blockIDToLocationStringID.
constinit std::array<std::unique_ptr<std::wstring>, count> strings;
}
}

// Loads the location name strings.
void [[.Package]]::init(HINSTANCE instance) {
	for(size_t i = 0; i != blockIDToLocationStringID.size(); ++i) {
		strings[i].reset(new std::wstring(util::loadString(instance, blockIDToLocationStringID[i].second)));
	}
}

// Finds the name of a location, if known, or nullptr if not.
const std::wstring *[[.Package]]::findLocationName(int32_t block) {
	auto i = std::lower_bound(blockIDToLocationStringID.cbegin(), blockIDToLocationStringID.cend(), block,
		[](const std::pair<int32_t, unsigned int> &candidate, int32_t target) -> bool {
			return candidate.first < target;
		});
	if(i != blockIDToLocationStringID.cend() && i->first == block) {
		return strings[i - blockIDToLocationStringID.cbegin()].get();
	} else {
		return nullptr;
	}
}
`))

// EmitLookupTable renders entries as source code in opts.Format.
func EmitLookupTable(w io.Writer, entries []lookup.Entry, opts TableOptions) error {
	data := struct {
		Package string
		Import  string
		Entries []lookup.Entry
	}{opts.Package, lookupImportPath, entries}

	var b bytes.Buffer
	switch opts.Format {
	case FormatGo, "":
		if err := goTableTemplate.Execute(&b, data); err != nil {
			return fmt.Errorf("rendering lookup table: %w", err)
		}
		src, err := format.Source(b.Bytes())
		if err != nil {
			return fmt.Errorf("formatting lookup table: %w", err)
		}
		b.Reset()
		b.Write(src)
	case FormatCpp:
		if err := cppTableTemplate.Execute(&b, data); err != nil {
			return fmt.Errorf("rendering lookup table: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
	_, err := w.Write(b.Bytes())
	return err
}
