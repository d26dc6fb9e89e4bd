package main

import (
	"context"
	"io"
	"os"

	exportsvc "github.com/jamespares/chinaprof/services/export"
)

// exportTest writes the ranked results of a weekly test to out, or to stdout when out is empty.
func (cli *commandLine) exportTest(testID int, format, out string) error {
	f, err := exportsvc.ParseFormat(format)
	if err != nil {
		return err
	}

	res, err := cli.testSvc.Results(context.Background(), testID)
	if err != nil {
		return err
	}

	table := exportsvc.TestResultsTable(res)
	if out == "" {
		return exportsvc.Write(cli.out, f, table)
	}
	return writeFile(out, func(w io.Writer) error {
		return exportsvc.Write(w, f, table)
	})
}

// writeFile creates path, writes it with fn and reports the error of closing it.
func writeFile(path string, fn func(w io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(file)
}

func (cli *commandLine) wipeHomework() error {
	n, err := cli.homeworkSvc.Wipe(context.Background())
	if err != nil {
		return err
	}
	cli.printf("deleted %d homework entries\n", n)
	return nil
}
