package main

import (
	"context"
	"os"

	"github.com/pkg/errors"

	exportsvc "github.com/jamespares/chinaprof/services/export"
)

// importStudents creates every student listed in file, or none of them.
func (cli *commandLine) importStudents(file string) error {
	format, err := exportsvc.FormatOf(file)
	if err != nil {
		return err
	}

	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	students, err := exportsvc.ReadStudents(f, format, cli.validate)
	if err != nil {
		return err
	}

	created, err := cli.studentSvc.Import(context.Background(), students)
	if err != nil {
		return errors.Wrap(err, "importing students")
	}
	cli.printf("imported %d students\n", len(created))
	return nil
}
