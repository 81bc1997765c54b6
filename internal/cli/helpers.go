package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/yorch/doral-courts/internal/config"
	"github.com/yorch/doral-courts/internal/court"
	"github.com/yorch/doral-courts/internal/export"
	"github.com/yorch/doral-courts/internal/logging"
	"github.com/yorch/doral-courts/internal/scraper"
	"github.com/yorch/doral-courts/internal/store"
)

// app bundles the collaborators a command needs. Each command invocation
// builds its own app from the global flags.
type app struct {
	log *zap.SugaredLogger
	cfg *config.Config
}

func newApp() (*app, error) {
	cfg, err := config.New("")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &app{
		log: logging.New(flagVerbose),
		cfg: cfg,
	}, nil
}

func (a *app) openStore() (*store.Store, error) {
	path := flagDBPath
	if path == "" {
		dir, err := config.Dir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, store.DefaultFilename)
	}
	return store.Open(path, a.log)
}

// fetch runs a full scrape for the date and sport filter, persists the
// results, and honors --save-data.
func (a *app) fetch(ctx context.Context, date, sport string) (*scraper.Result, error) {
	sc := scraper.New(a.log)
	res, err := sc.FetchCourts(ctx, date, sport)
	if err != nil {
		return nil, err
	}

	st, err := a.openStore()
	if err != nil {
		return nil, err
	}
	defer st.Close()
	if _, err := st.Insert(res.Courts); err != nil {
		a.log.Warnw("failed to persist courts", "error", err)
	}

	if flagSaveData {
		a.exportSnapshots(res)
	}
	return res, nil
}

func (a *app) exportSnapshots(res *scraper.Result) {
	exp := export.New(flagDataDir)
	if path, err := exp.SaveHTML(res.CombinedHTML, ""); err != nil {
		a.log.Warnw("failed to save HTML snapshot", "error", err)
	} else {
		a.log.Infow("saved HTML snapshot", "path", path)
	}
	if path, err := exp.SaveJSON(res.Courts, res.LastRequestURL(), ""); err != nil {
		a.log.Warnw("failed to save JSON snapshot", "error", err)
	} else {
		a.log.Infow("saved JSON snapshot", "path", path)
	}
}

// resolveDate turns the --date flag into MM/DD/YYYY, falling back to the
// configured default date offset when no flag was given.
func (a *app) resolveDate(flagDate string) (string, error) {
	if flagDate == "" {
		defaults, err := a.cfg.Defaults()
		if err == nil && defaults.DateOffset != 0 {
			return court.ParseDateInput(fmt.Sprintf("%+d", defaults.DateOffset))
		}
	}
	return court.ParseDateInput(flagDate)
}

// resolveSport normalizes the --sport flag ("tennis"/"pickleball"),
// falling back to the configured default sport when no flag was given.
func (a *app) resolveSport(flagSport string) (string, error) {
	if flagSport == "" {
		if defaults, err := a.cfg.Defaults(); err == nil {
			flagSport = defaults.Sport
		}
	}
	if flagSport == "" {
		return "", nil
	}
	switch strings.ToLower(flagSport) {
	case "tennis":
		return string(court.SportTennis), nil
	case "pickleball":
		return string(court.SportPickleball), nil
	default:
		return "", fmt.Errorf("invalid sport %q (must be tennis or pickleball)", flagSport)
	}
}

// normalizeStatus maps the --status flag onto stored status values.
func normalizeStatus(status string) (string, error) {
	switch strings.ToLower(status) {
	case "":
		return "", nil
	case "available":
		return string(court.StatusAvailable), nil
	case "booked":
		return string(court.StatusFullyBooked), nil
	case "no-schedule":
		return string(court.StatusNoSchedule), nil
	default:
		return "", fmt.Errorf("invalid status %q (must be available, booked, or no-schedule)", status)
	}
}
