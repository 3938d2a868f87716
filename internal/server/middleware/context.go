package middleware

import (
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"

	"github.com/gridmind-ai/gridmind/backend/internal/registry"
	"github.com/gridmind-ai/gridmind/backend/internal/uploads"
	"github.com/gridmind-ai/gridmind/backend/pkg/ai"
)

type App struct {
	Engine  ai.Client
	Queue   *amqp091.Channel
	S3      *s3.Client
	Jobs    *registry.Registry
	Uploads *uploads.Store
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{
				Context: c,
				App:     app,
			}
			return next(cc)
		}
	}
}
