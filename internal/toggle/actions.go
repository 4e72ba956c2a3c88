package toggle

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/smart-reader/internal/common"
	"github.com/dtnitsch/smart-reader/pkg/preference"
)

// ToggleAction turns the floating control on or off, or prints its state.
// Running watch sessions pick the change up live.
func ToggleAction(c *cli.Context) error {
	logger := common.NewLogger(c)
	store := preference.NewStore(c.String("preferences"), logger)

	arg := strings.ToLower(c.Args().First())
	switch arg {
	case "on", "off":
		if err := store.SetEnabled(arg == "on"); err != nil {
			return err
		}
		logger.Info("Preference saved", "enabled", arg == "on", "path", store.Path())
		fmt.Fprintf(c.App.Writer, "Control %s\n", arg)
		return nil
	case "", "status":
		p, err := store.Load()
		if err != nil {
			return err
		}
		state := "off"
		if p.Enabled {
			state = "on"
		}
		fmt.Fprintf(c.App.Writer, "Control %s (%s)\n", state, store.Path())
		return nil
	default:
		return fmt.Errorf("unknown argument %q (use on, off or status)", arg)
	}
}
