package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/student-directory/internal/domain/shared"
	"github.com/alem-hub/student-directory/internal/domain/student"
)

// isolateEnv blanks every variable the configuration reads.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_NAME", "APP_ENV", "APP_VERSION",
		"IMPORT_DELIMITER", "IMPORT_COMMENT", "IMPORT_MAX_REPORTED_FAILURES",
		"LOG_LEVEL", "LOG_FORMAT", "METRICS_ENABLED",
	} {
		t.Setenv(key, "")
	}
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	isolateEnv(t)

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "directory", cmd.Use)
	assert.Contains(t, cmd.Long, "per-department rosters")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"demo", "import", "delete", "list", "show"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err, "command %s should exist", name)
			require.NotNil(t, sub)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestSubcommandFlags(t *testing.T) {
	cmd := NewRootCommand()

	demo, _, err := cmd.Find([]string{"demo"})
	require.NoError(t, err)
	assert.NotNil(t, demo.Flags().Lookup("csv"))

	list, _, err := cmd.Find([]string{"list"})
	require.NoError(t, err)
	for _, name := range []string{"from", "department", "limit"} {
		assert.NotNil(t, list.Flags().Lookup(name), name)
	}
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	_, _, err := execute(t, "demo", "--format", "yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `invalid format "yaml"`)
}

func TestRootCommand_UnknownFlag(t *testing.T) {
	_, _, err := execute(t, "list", "--nope")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRootCommand_InvalidConfigFile(t *testing.T) {
	_, _, err := execute(t, "demo", "--config", "testdata/does-not-exist.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "load configuration")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("boom")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad")))

	wrapped := WrapExitError(ExitFailure, "import students", errors.New("boom"))
	assert.Equal(t, "import students: boom", wrapped.Error())
	assert.False(t, IsReported(wrapped))
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{shared.ErrSourceUnavailable, "source_unavailable"},
		{student.ErrStudentNotFound, "not_found"},
		{student.ErrDuplicateID, "duplicate"},
		{student.ErrInvalidGPA, "invalid_input"},
		{context.Canceled, "cancelled"},
		{NewExitError(ExitCommandError, "bad"), "command_error"},
		{errors.New("boom"), "failure"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorCode(tt.err), "%v", tt.err)
	}
}
