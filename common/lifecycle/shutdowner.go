package lifecycle

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Shutdowner stops gracefully, giving up when ctx ends.
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// ShutdownFunc adapts a function to Shutdowner. A nil ShutdownFunc does
// nothing.
type ShutdownFunc func(ctx context.Context) error

func (f ShutdownFunc) Shutdown(ctx context.Context) error {
	if f == nil {
		return nil
	}
	return f(ctx)
}

// FiberServer stops app from accepting connections and waits for in-flight
// requests until ctx ends.
func FiberServer(app *fiber.App) Shutdowner {
	return ShutdownFunc(func(ctx context.Context) error {
		if app == nil {
			return nil
		}
		return app.ShutdownWithContext(ctx)
	})
}
