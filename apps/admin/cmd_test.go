package main

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldad2003/pharmverse-edu-hub/core/kvstore"
	"github.com/eldad2003/pharmverse-edu-hub/core/timetable"
	"github.com/eldad2003/pharmverse-edu-hub/core/user"
	"github.com/eldad2003/pharmverse-edu-hub/storage/database"
	"github.com/eldad2003/pharmverse-edu-hub/storage/database/kvrepos"
	"github.com/eldad2003/pharmverse-edu-hub/tests"
)

var (
	usrRepo user.Repository
	ttRepo  timetable.Repository
)

type storeCalls struct {
	opened, closed int
}

func setup(t *testing.T) (*commandLine, *bytes.Buffer, *storeCalls) {
	conf := testutil.NewConfig()
	store := testutil.NewStore(t)
	usrRepo = kvrepos.NewUserRepository(store)
	ttRepo = kvrepos.NewTimetableRepository(store)

	calls := new(storeCalls)
	out := new(bytes.Buffer)
	return &commandLine{
		conf:     conf,
		out:      out,
		validate: testutil.NewValidator(),
		openStore: func(ctx context.Context) (*kvstore.Appender, func() error, error) {
			calls.opened++
			return store, func() error { calls.closed++; return nil }, nil
		},
		openDB: func(ctx context.Context) (*sqlx.DB, error) { return nil, nil },
	}, out, calls
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func checkErr(t *testing.T, tt cliTest, err error) {
	t.Helper()
	switch {
	case tt.wantErr != nil:
		if err != tt.wantErr {
			t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
		}
	case tt.wantErrStr != "":
		if err == nil || !strings.Contains(err.Error(), tt.wantErrStr) {
			t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
		}
	case err != nil:
		t.Errorf("cli.run() unexpected error = %v", err)
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _, calls := setup(t)

	migrateFunc = func(db *sqlx.DB, command string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}
	defer func() { migrateFunc = database.Migrate }()

	t.Run("memory store", func(t *testing.T) {
		err := cli.run([]string{"admin", "migrate", "up"})
		assert.Equal(t, errNotPostgres, err)
	})

	cli.conf.Store.Engine = database.EnginePostgres
	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "1"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "status", args: []string{"migrate", "status"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			checkErr(t, tt, cli.run(args))
		})
	}
	assert.Equal(t, 0, calls.opened, "migrate never opens the store")
}

func Test_commandLine_register(t *testing.T) {
	cli, out, calls := setup(t)

	type extra struct {
		pwds []string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"register"}, wantErr: errHelp},
		{name: "no year group", args: []string{"register", "-username", "amina"}, wantErr: errHelp},
		{name: "no password", args: []string{"register", "-username", "amina", "-yeargroup", "Pharm D2"}, wantErr: errHelp},
		{
			name:    "passwords do not match",
			args:    []string{"register", "-username", "amina", "-yeargroup", "Pharm D2"},
			extra:   extra{pwds: []string{"pw1", "pw2"}},
			wantErr: user.ErrPasswordMismatch,
		},
		{
			name:       "unknown year group",
			args:       []string{"register", "-username", "amina", "-yeargroup", "Pharm D9"},
			extra:      extra{pwds: []string{"pw1", "pw1"}},
			wantErrStr: "failed on the 'yeargroup' tag",
		},
		{
			name:  "registered",
			args:  []string{"register", "-username", "amina", "-yeargroup", "Pharm D2"},
			extra: extra{pwds: []string{"pw1", "pw1"}},
		},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		var prompts int
		readPasswordFunc = func(fd int) ([]byte, error) {
			defer func() { prompts++ }()
			if extra, ok := tt.extra.(extra); ok && prompts < len(extra.pwds) {
				return []byte(extra.pwds[prompts]), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			checkErr(t, tt, cli.run(args))
		})
	}

	creds, err := usrRepo.QueryAllCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []user.Credential{
		{Username: "amina", Password: "pw1", YearGroup: "Pharm D2", Role: user.RoleStudent},
	}, creds)
	assert.Contains(t, out.String(), "registered amina in Pharm D2")
	assert.Equal(t, 3, calls.opened, "only complete registrations open the store")
	assert.Equal(t, calls.opened, calls.closed)
}

func Test_commandLine_timetable(t *testing.T) {
	cli, out, calls := setup(t)

	entry := timetable.Entry{ID: 1, Day: "Monday", Time: "9:00 AM - 10:30 AM", Subject: "Pharmacology", Instructor: "Dr. Osei", Location: "Hall B"}
	require.NoError(t, ttRepo.AppendEntries(context.Background(), "Pharm D3", entry))

	t.Run("unknown year group", func(t *testing.T) {
		err := cli.run([]string{"admin", "timetable", "-yeargroup", "Pharm D0"})
		assert.EqualError(t, err, `unknown year group "Pharm D0"`)
	})

	t.Run("unknown format", func(t *testing.T) {
		err := cli.run([]string{"admin", "timetable", "-yeargroup", "Pharm D3", "-format", "xml"})
		assert.EqualError(t, err, `unknown format "xml"`)
	})

	t.Run("yaml", func(t *testing.T) {
		out.Reset()
		require.NoError(t, cli.run([]string{"admin", "timetable", "-yeargroup", "Pharm D3"}))
		assert.Contains(t, out.String(), "subject: Pharmacology")
		assert.Contains(t, out.String(), "location: Hall B")
	})

	t.Run("json", func(t *testing.T) {
		out.Reset()
		require.NoError(t, cli.run([]string{"admin", "timetable", "-yeargroup", "Pharm D3", "-format", "json"}))
		assert.True(t, strings.HasPrefix(out.String(), "["))
		assert.Contains(t, out.String(), `"instructor": "Dr. Osei"`)
	})

	t.Run("empty year group", func(t *testing.T) {
		out.Reset()
		require.NoError(t, cli.run([]string{"admin", "timetable", "-yeargroup", "Pharm D1", "-format", "json"}))
		assert.Equal(t, "[]\n", out.String())
	})

	assert.Equal(t, 4, calls.opened, "an unknown year group does not open the store")
	assert.Equal(t, calls.opened, calls.closed)
}
