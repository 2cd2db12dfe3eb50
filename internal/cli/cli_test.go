package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/habitly/internal/core/domain"
)

var cliToday = time.Date(2025, 7, 10, 9, 0, 0, 0, time.UTC)

// run executes one habitly invocation against the store in dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	a := &app{now: func() time.Time { return cliToday }}
	root := newRootCommand(a)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{
		"--data-dir", dir,
		"--config", filepath.Join(dir, "missing.toml"),
		"--user", "alice",
	}, args...))

	err := root.ExecuteContext(context.Background())
	require.NoError(t, a.close())
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, args...)
	require.NoError(t, err, "habitly %s", strings.Join(args, " "))
	return out
}

func TestCLI_HabitLifecycle(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "habit", "create", "Reading", "--period", "daily", "-d", "20 pages")
	assert.Contains(t, out, "Habit 'Reading' created")

	mustRun(t, dir, "habit", "create", "Running", "-p", "weekly")

	t.Run("Duplicate name is rejected", func(t *testing.T) {
		_, err := run(t, dir, "habit", "create", "Reading", "-p", "weekly")
		assert.ErrorIs(t, err, domain.ErrHabitAlreadyExists)
	})

	t.Run("Unknown periodicity is rejected", func(t *testing.T) {
		_, err := run(t, dir, "habit", "create", "Swimming", "-p", "monthly")
		assert.ErrorIs(t, err, domain.ErrInvalidPeriodicity)
	})

	for _, d := range []string{"2025-07-06", "2025-07-07", "2025-07-08", "2025-07-09"} {
		mustRun(t, dir, "event", "add", "Reading", "--date", d)
	}
	out = mustRun(t, dir, "event", "add", "Reading", "--before", "neutral", "--after", "😄")
	assert.Contains(t, out, "2025-07-10", "date defaults to today")

	t.Run("Event log shows a dash for missing moods", func(t *testing.T) {
		out := mustRun(t, dir, "event", "list", "Reading")

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 6)
		assert.Contains(t, lines[1], "2025-07-06")
		assert.Contains(t, lines[1], noMood)
		assert.Contains(t, lines[5], "😐")
		assert.Contains(t, lines[5], "😄")
	})

	t.Run("Invalid mood and date are rejected", func(t *testing.T) {
		_, err := run(t, dir, "event", "add", "Reading", "--before", "ecstatic")
		assert.ErrorIs(t, err, domain.ErrInvalidMood)

		_, err = run(t, dir, "event", "add", "Reading", "--date", "10/07/2025")
		assert.ErrorIs(t, err, domain.ErrInvalidDate)
	})

	t.Run("Analytics report", func(t *testing.T) {
		out := mustRun(t, dir, "analytics", "Reading")

		assert.Contains(t, out, "Analytics for 'Reading' (daily habit)")
		assert.Contains(t, out, "20 pages")
		assert.Contains(t, out, "Total completions: 5")
		assert.Contains(t, out, "Current streak:    5 day(s)")
		assert.Contains(t, out, "Longest streak:    5 day(s)")
		assert.Contains(t, out, "1 time(s) alice's mood improved after 'Reading'")
	})

	t.Run("Analytics as of a later day", func(t *testing.T) {
		out := mustRun(t, dir, "analytics", "Reading", "--today", "2025-07-12")
		assert.Contains(t, out, "Current streak:    0 day(s)")
	})

	t.Run("Deleting a day breaks the streak", func(t *testing.T) {
		out := mustRun(t, dir, "event", "delete", "Reading", "--date", "2025-07-08")
		assert.Contains(t, out, "Deleted 1 event(s) on 2025-07-08")

		out = mustRun(t, dir, "analytics", "Reading")
		assert.Contains(t, out, "Current streak:    2 day(s)")
		assert.Contains(t, out, "Longest streak:    2 day(s)")
	})

	t.Run("Habit list shows fresh streaks", func(t *testing.T) {
		out := mustRun(t, dir, "habit", "list")

		assert.Contains(t, out, "NAME")
		assert.Regexp(t, `Reading\s+daily\s+2\s+2`, out)
		assert.Regexp(t, `Running\s+weekly\s+0\s+0`, out)
	})

	t.Run("Summary", func(t *testing.T) {
		out := mustRun(t, dir, "summary")

		assert.Contains(t, out, "alice has 2 habit(s):")
		assert.Contains(t, out, "Reading (daily)")
		assert.Contains(t, out, "Running (weekly)")
	})

	t.Run("Habits are per user", func(t *testing.T) {
		out := mustRun(t, dir, "summary", "--user", "bob")
		assert.Contains(t, out, "bob has no habits yet.")

		_, err := run(t, dir, "event", "list", "Reading", "--user", "bob")
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)

		out = mustRun(t, dir, "user", "list")
		assert.Regexp(t, `alice\s+2`, out)
		assert.Regexp(t, `bob\s+0`, out)
	})

	t.Run("Deleting a habit removes its events", func(t *testing.T) {
		out := mustRun(t, dir, "habit", "delete", "Reading")
		assert.Contains(t, out, "Habit 'Reading' deleted")

		_, err := run(t, dir, "event", "list", "Reading")
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)

		mustRun(t, dir, "habit", "create", "Reading", "-p", "daily")
		out = mustRun(t, dir, "event", "list", "Reading")
		assert.Contains(t, out, "No events tracked yet.")
	})
}

func TestCLI_EventDeleteNeedsDate(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "habit", "create", "Reading")

	_, err := run(t, dir, "event", "delete", "Reading")
	assert.Error(t, err)
}

func TestCLI_ConfigFileSelectsUserAndStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := DefaultConfig()
	cfg.Storage.Dir = filepath.Join(dir, "store")
	cfg.User.Default = "carol"
	require.NoError(t, SaveConfig(path, cfg))

	a := &app{configPath: path, now: func() time.Time { return cliToday }}
	root := newRootCommand(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--config", path, "summary"})

	require.NoError(t, root.ExecuteContext(context.Background()))
	require.NoError(t, a.close())

	assert.Contains(t, out.String(), "carol has no habits yet.")
	assert.FileExists(t, filepath.Join(dir, "store", "habitly.db"))
}
