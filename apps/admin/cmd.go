package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/jamespares/chinaprof/core/homework"
	"github.com/jamespares/chinaprof/core/student"
	"github.com/jamespares/chinaprof/core/weeklytest"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db          *sqlx.DB
	out         io.Writer
	validate    *validator.Validate
	studentSvc  *student.Service
	homeworkSvc *homework.Service
	testSvc     *weeklytest.Service
}

func (cli *commandLine) println(a ...interface{}) {
	_, _ = fmt.Fprintln(cli.out, a...)
}

func (cli *commandLine) printf(format string, a ...interface{}) {
	_, _ = fmt.Fprintf(cli.out, format, a...)
}

func (cli *commandLine) printUsage() {
	cli.println("Usage:")
	cli.println("  migrate COMMAND [ARGS] - run a migration command (up, down, status...)")
	cli.println("  importstudents -file FILE - import students from a .csv or .xlsx file")
	cli.println("  exporttest -test ID [-format csv|xlsx] [-out FILE] - export the results of a weekly test")
	cli.println("  wipehomework -yes - delete every homework entry")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	importCmd := flag.NewFlagSet("importstudents", flag.ContinueOnError)
	importCmd.SetOutput(cli.out)
	importFile := importCmd.String("file", "", "The .csv or .xlsx file to read students from.")

	exportCmd := flag.NewFlagSet("exporttest", flag.ContinueOnError)
	exportCmd.SetOutput(cli.out)
	exportTestID := exportCmd.Int("test", 0, "The weekly test ID.")
	exportFormat := exportCmd.String("format", "csv", "The export format: csv or xlsx.")
	exportOut := exportCmd.String("out", "", "The output file. Defaults to stdout.")

	wipeCmd := flag.NewFlagSet("wipehomework", flag.ContinueOnError)
	wipeCmd.SetOutput(cli.out)
	wipeConfirm := wipeCmd.Bool("yes", false, "Confirm deleting every homework entry.")

	switch args[1] {
	case "migrate":
		return cli.migrate(args[2:])
	case "importstudents":
		if err := importCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *importFile == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importStudents(*importFile)
	case "exporttest":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *exportTestID <= 0 {
			exportCmd.Usage()
			return errHelp
		}
		return cli.exportTest(*exportTestID, *exportFormat, *exportOut)
	case "wipehomework":
		if err := wipeCmd.Parse(args[2:]); err != nil {
			return err
		}
		if !*wipeConfirm {
			wipeCmd.Usage()
			return errHelp
		}
		return cli.wipeHomework()
	default:
		cli.printUsage()
		return errHelp
	}
}
