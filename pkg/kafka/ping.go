package kafka

import (
	"context"
	"errors"
	"fmt"
)

// Ping dials the brokers in turn and returns nil as soon as one answers.
func Ping(ctx context.Context, cfg Config) error {
	if len(cfg.Brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}
	dialer, err := cfg.dialer()
	if err != nil {
		return err
	}

	var errs []error
	for _, broker := range cfg.Brokers {
		conn, err := dialer.DialContext(ctx, "tcp", broker)
		if err != nil {
			errs = append(errs, fmt.Errorf("dial %s: %w", broker, err))
			continue
		}
		return conn.Close()
	}
	return errors.Join(errs...)
}
