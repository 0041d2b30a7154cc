package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/eldad2003/pharmverse-edu-hub/core"
	"github.com/eldad2003/pharmverse-edu-hub/core/kvstore"
	"github.com/eldad2003/pharmverse-edu-hub/core/user"
	inmemdb "github.com/eldad2003/pharmverse-edu-hub/storage/database/inmem"
)

const AdminPassword = "admin123"

// NewConfig returns the configuration tests run with: in-memory store, no output.
func NewConfig() *core.Config {
	return &core.Config{
		Env:                "TEST",
		Build:              "test",
		TestMode:           true,
		AppName:            "PharmApp",
		SecretKey:          "test-secret",
		AdminPassword:      AdminPassword,
		JWTExpirationDelta: time.Hour,
		Server:             core.ServerConfig{Address: ":0", ShutdownTimeout: time.Second},
		Store:              core.StoreConfig{Engine: "memory"},
		Log:                core.LogConfig{Level: "disabled"},
	}
}

// NewKV returns an empty volatile store, closed when the test ends.
func NewKV(t *testing.T) kvstore.KV {
	kv := inmemdb.Open()
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

// NewStore returns a lenient Appender over a fresh NewKV.
func NewStore(t *testing.T) *kvstore.Appender {
	return kvstore.NewAppender(NewKV(t), true)
}

// NewValidator returns a validator with every portal validation registered.
func NewValidator() *validator.Validate {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	return validate
}

// RegisterStudent stores a student credential as-is.
func RegisterStudent(t *testing.T, repo user.Repository, uname, pwd, yearGroup string) user.Credential {
	cred := user.Credential{Username: uname, Password: pwd, YearGroup: yearGroup, Role: user.RoleStudent}
	if err := repo.AppendCredential(context.Background(), cred); err != nil {
		t.Fatalf("RegisterStudent() failed: %v", err)
	}
	return cred
}
