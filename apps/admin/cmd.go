package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/eldad2003/pharmverse-edu-hub/core"
	"github.com/eldad2003/pharmverse-edu-hub/core/kvstore"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

// storeOpener opens the portal store and returns it with the func releasing it.
type storeOpener func(ctx context.Context) (store *kvstore.Appender, closeStore func() error, err error)

// commandLine opens the store only in the subcommands that use it, and closes it when they return.
// migrate never opens it.
type commandLine struct {
	conf      *core.Config
	out       io.Writer
	validate  *validator.Validate
	openStore storeOpener
	openDB    func(ctx context.Context) (*sqlx.DB, error)
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  register -username USERNAME -yeargroup YEARGROUP - register a student. The password will be prompted next.")
	fmt.Fprintln(cli.out, "  timetable -yeargroup YEARGROUP [-format json|yaml] - print a year group's timetable")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS...] - run database migrations (postgres store only)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	registerCmd := flag.NewFlagSet("register", flag.ContinueOnError)
	registerCmd.SetOutput(cli.out)
	registerUname := registerCmd.String("username", "", "The student's username.")
	registerYearGroup := registerCmd.String("yeargroup", "", "The student's year group, e.g. \"Pharm D1\".")

	timetableCmd := flag.NewFlagSet("timetable", flag.ContinueOnError)
	timetableCmd.SetOutput(cli.out)
	timetableYearGroup := timetableCmd.String("yeargroup", "", "The year group whose timetable to print.")
	timetableFormat := timetableCmd.String("format", formatYAML, "Output format: json or yaml.")

	switch args[1] {
	case "register":
		if err := registerCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *registerUname == "" || *registerYearGroup == "" {
			registerCmd.Usage()
			return errHelp
		}
		pwd, err := cli.prompt("Enter password:")
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			registerCmd.Usage()
			return errHelp
		}
		confirm, err := cli.prompt("Confirm password:")
		if err != nil {
			return err
		}
		return cli.register(*registerUname, pwd, confirm, *registerYearGroup)

	case "timetable":
		if err := timetableCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *timetableYearGroup == "" {
			timetableCmd.Usage()
			return errHelp
		}
		return cli.printTimetable(*timetableYearGroup, *timetableFormat)

	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) prompt(label string) (string, error) {
	fmt.Fprint(cli.out, label)
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
