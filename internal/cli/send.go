package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/alttab/pkg/control"
	"github.com/aretw0/alttab/pkg/domain"
)

// RunSend delivers one command to the daemon watching the configured mode.
func RunSend(opts Options, cmd domain.Command) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := control.Send(context.Background(), cfg.Socket, cmd); err != nil {
		return fmt.Errorf("%w (is 'alttab watch --mode %s' running?)", err, cfg.Mode)
	}
	return nil
}
