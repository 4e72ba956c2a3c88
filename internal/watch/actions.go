package watch

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/smart-reader/internal/common"
	"github.com/dtnitsch/smart-reader/internal/summarize"
	"github.com/dtnitsch/smart-reader/pkg/browser"
	"github.com/dtnitsch/smart-reader/pkg/client"
	"github.com/dtnitsch/smart-reader/pkg/companion"
	"github.com/dtnitsch/smart-reader/pkg/extractor"
	"github.com/dtnitsch/smart-reader/pkg/overlay"
	"github.com/dtnitsch/smart-reader/pkg/preference"
)

// WatchAction opens the page in Chrome, mounts the floating control and
// serves it until interrupted.
func WatchAction(c *cli.Context) error {
	logger := common.NewLogger(c)
	cfg := summarize.ServiceConfig(c)

	target, err := common.ParseTargetURL(c.String("url"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mgr := browser.NewManager(browser.Config{
		RemoteURL:       c.String("remote"),
		Headless:        c.Bool("headless"),
		Stealth:         c.Bool("stealth"),
		NavigateTimeout: c.Duration("navigate-timeout"),
		Logger:          logger,
	})
	defer mgr.Close()

	if _, err := mgr.Start(ctx); err != nil {
		return err
	}
	tab, err := mgr.OpenTab(ctx, target.String())
	if err != nil {
		return err
	}
	defer tab.Close()

	h := &companion.Handler{
		Extractor:  extractor.New(logger, cfg.SettleDelay),
		Summarizer: client.New(cfg.ServiceURL, cfg.Timeout),
		Ratio:      cfg.Ratio,
		Level:      cfg.Level,
		Logger:     logger,
	}
	sess := browser.NewSession(tab, browser.SessionConfig{
		Handler:     h,
		Preferences: preference.NewStore(c.String("preferences"), logger),
		Clipboard:   overlay.NewSystemClipboard(),
		Logger:      logger,
	})

	err = sess.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("Watch stopped")
		return nil
	}
	return err
}
