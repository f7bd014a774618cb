package locgen

import (
	"bytes"
	"fmt"
)

// Artifacts holds both rendered outputs of a run.
type Artifacts struct {
	Table    []byte // Lookup table source
	Resource []byte // String table resource script
}

// Result summarises a generator run.
type Result struct {
	Records        int    // Raw records read (one per block number)
	Blocks         int    // Entries in the lookup table
	Strings        int    // Distinct location strings
	TableOutput    string // Where the lookup table was (or would be) written
	ResourceOutput string // Where the resource script was (or would be) written
	Artifacts      Artifacts
}

// Generate regenerates the lookup table and string table from the CSV
// sources. Nothing is written unless every stage succeeds.
//
// Example:
//
//	res, err := locgen.Generate(locgen.WithInputDir("location-csvs"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d blocks, %d strings\n", res.Blocks, res.Strings)
func Generate(opts ...Option) (*Result, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg.Run()
}

// Run renders both artifacts and writes them unless DryRun is set.
func (c *Config) Run() (*Result, error) {
	res, err := c.Render()
	if err != nil {
		return nil, err
	}
	log := c.Logger
	if c.DryRun {
		log.Info().
			Int("table_bytes", len(res.Artifacts.Table)).
			Int("resource_bytes", len(res.Artifacts.Resource)).
			Msg("dry run, not writing outputs")
		return res, nil
	}

	if err := writeFileAtomic(res.TableOutput, res.Artifacts.Table); err != nil {
		return nil, err
	}
	if err := writeFileAtomic(res.ResourceOutput, res.Artifacts.Resource); err != nil {
		return nil, err
	}
	log.Info().
		Str("table", res.TableOutput).
		Str("resource", res.ResourceOutput).
		Int("blocks", res.Blocks).
		Int("strings", res.Strings).
		Msg("generated location tables")
	return res, nil
}

// Render runs the whole pipeline in memory: load, reduce, intern, emit.
func (c *Config) Render() (*Result, error) {
	format := FormatGo
	if c.Format != "" {
		var err error
		if format, err = ParseTableFormat(string(c.Format)); err != nil {
			return nil, err
		}
	}
	territories, err := NewTerritories(c.Territories)
	if err != nil {
		return nil, err
	}

	records, err := NewLoader(territories, c.IgnorePatterns, c.Logger).LoadDir(c.InputDir)
	if err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}

	mapping, err := Reduce(records, territories)
	if err != nil {
		return nil, fmt.Errorf("building block mapping: %w", err)
	}

	// IDs are only assigned once the full mapping is known, so they depend
	// on the set of strings and not on the order rows were read.
	strs := NewStringTable(c.FirstStringID, mapping.Locations())
	entries := BuildLookupTable(mapping, strs)

	var table, rc bytes.Buffer
	opts := TableOptions{Format: format, Package: c.tablePackage(format)}
	if err := EmitLookupTable(&table, entries, opts); err != nil {
		return nil, err
	}
	if err := EmitStringTable(&rc, strs.Entries(), RCOptions{Language: c.Language}); err != nil {
		return nil, err
	}

	tableOut, rcOut := c.TableOutput, c.ResourceOutput
	if tableOut == "" {
		tableOut = "location" + format.Ext()
	}
	if rcOut == "" {
		rcOut = "location.rc"
	}
	c.Logger.Debug().
		Int("records", len(records)).
		Int("blocks", mapping.Len()).
		Int("strings", strs.Len()).
		Msg("rendered location tables")

	return &Result{
		Records:        len(records),
		Blocks:         mapping.Len(),
		Strings:        strs.Len(),
		TableOutput:    tableOut,
		ResourceOutput: rcOut,
		Artifacts:      Artifacts{Table: table.Bytes(), Resource: rc.Bytes()},
	}, nil
}
