package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/habitly/internal/adapters/repository"
	"github.com/comitanigiacomo/habitly/internal/core/domain"
	"github.com/comitanigiacomo/habitly/internal/core/services"
	"github.com/comitanigiacomo/habitly/internal/core/workers"
	"github.com/comitanigiacomo/habitly/internal/infra/logger"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	configPath string
	dataDir    string
	userName   string
	logLevel   string
	now        func() time.Time

	db        *sqlx.DB
	user      *domain.User
	auth      *services.AuthService
	habits    *services.HabitService
	events    *services.EventService
	analytics *services.AnalyticsService
	streaks   *workers.StreakWorker
}

// open loads the config, opens the SQLite store and makes sure the acting
// user exists.
func (a *app) open(ctx context.Context) error {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	if a.dataDir == "" {
		a.dataDir = cfg.Storage.Dir
	}
	if a.userName == "" {
		a.userName = cfg.User.Default
	}
	if a.logLevel == "" {
		a.logLevel = cfg.Logging.Level
	}
	if a.now == nil {
		a.now = time.Now
	}

	logger.Init(a.logLevel, "cli")
	logger.SetOutput(os.Stderr)

	db, err := repository.OpenSQLite(a.dataDir)
	if err != nil {
		return err
	}
	if err := repository.Migrate(db); err != nil {
		db.Close()
		return err
	}
	a.db = db

	users := repository.NewSQLUserRepository(db)
	habits := repository.NewSQLHabitRepository(db)
	events := repository.NewSQLEventRepository(db)

	a.auth = services.NewAuthService(users)
	a.habits = services.NewHabitService(habits)
	a.events = services.NewEventService(events, habits, nil).WithClock(a.now)
	a.analytics = services.NewAnalyticsService(habits, events, users).WithClock(a.now)
	a.streaks = workers.NewStreakWorker(habits, events).WithClock(a.now)

	user, err := a.auth.EnsureLocalUser(ctx, a.userName)
	if err != nil {
		return fmt.Errorf("user %q: %w", a.userName, err)
	}
	a.user = user

	logger.Log.WithField("user", user.Name).WithField("dir", a.dataDir).Debug("store opened")
	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// habitByName resolves a habit of the acting user.
func (a *app) habitByName(ctx context.Context, name string) (*domain.Habit, error) {
	h, err := a.habits.GetByName(ctx, a.user.ID, name)
	if err != nil {
		return nil, fmt.Errorf("habit %q: %w", name, err)
	}
	return h, nil
}
