package show

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Serve ties the runner to the fx lifecycle.
func Serve(r *Runner, lifecycle fx.Lifecycle) {
	var cancel context.CancelFunc

	lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())
			go func() {
				if err := r.Run(ctx); err != nil {
					r.log.With(zap.Error(err)).Error("show failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-r.Done():
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		},
	})
}
