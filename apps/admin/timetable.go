package main

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/eldad2003/pharmverse-edu-hub/core/user"
	"github.com/eldad2003/pharmverse-edu-hub/storage/database/kvrepos"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// printTimetable writes a year group's timetable to the CLI output.
func (cli *commandLine) printTimetable(yearGroup, format string) error {
	if !user.IsYearGroup(yearGroup) {
		return errors.Errorf("unknown year group %q", yearGroup)
	}
	ctx := context.Background()
	store, closeStore, err := cli.openStore(ctx)
	if err != nil {
		return errors.Wrap(err, "opening store")
	}
	defer func() { _ = closeStore() }()

	entries, err := kvrepos.NewTimetableRepository(store).QueryEntries(ctx, yearGroup)
	if err != nil {
		return errors.Wrap(err, "querying timetable")
	}

	switch format {
	case formatJSON:
		enc := json.NewEncoder(cli.out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case formatYAML:
		enc := yaml.NewEncoder(cli.out)
		enc.SetIndent(2)
		if err = enc.Encode(entries); err != nil {
			return errors.Wrap(err, "encoding timetable")
		}
		return enc.Close()
	default:
		return errors.Errorf("unknown format %q", format)
	}
}
