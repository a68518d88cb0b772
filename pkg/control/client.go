package control

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/aretw0/alttab/pkg/domain"
)

// DefaultDialTimeout bounds how long a one-shot client waits for the daemon.
const DefaultDialTimeout = 2 * time.Second

// Send connects to the daemon at path, writes cmd and closes the connection.
func Send(ctx context.Context, path string, cmd domain.Command) error {
	if _, ok := domain.ParseCommand([]byte(cmd)); !ok {
		return fmt.Errorf("unknown command %q", cmd)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultDialTimeout)
		defer cancel()
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", path)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", path, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
	}
	if _, err := conn.Write([]byte(cmd)); err != nil {
		return fmt.Errorf("send %s: %w", cmd, err)
	}
	return nil
}
