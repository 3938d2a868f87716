package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gridmind-ai/gridmind/backend/internal/queue"
	"github.com/gridmind-ai/gridmind/backend/internal/registry"
	mid "github.com/gridmind-ai/gridmind/backend/internal/server/middleware"
	"github.com/gridmind-ai/gridmind/backend/internal/storage"
	"github.com/gridmind-ai/gridmind/backend/internal/uploads"
	"github.com/gridmind-ai/gridmind/backend/internal/util"
	"github.com/gridmind-ai/gridmind/backend/pkg/ai/mock"
	"github.com/gridmind-ai/gridmind/backend/pkg/common"
	"github.com/gridmind-ai/gridmind/backend/pkg/logger"

	"github.com/go-playground/validator"
	"github.com/rabbitmq/amqp091-go"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := mock.NewMockClient(mock.NewMockClientParams{
		Device: util.GetEnvString("MODEL_DEVICE", "cpu"),
	})

	jobs := registry.New()

	uploadStore, err := uploads.NewStore(util.GetEnvString("UPLOAD_DIR", "uploads"))
	if err != nil {
		logger.Fatal("Failed to prepare upload directory", "err", err)
	}

	var ch *amqp091.Channel
	if url := util.GetEnv("RABBITMQ_URL"); url != "" {
		que, err := queue.Init(url)
		if err != nil {
			logger.Fatal("Failed to connect to queue", "err", err)
		}
		defer que.Close()
		ch, err = que.Channel()
		if err != nil {
			logger.Fatal("Failed to open channel", "err", err)
		}

		queues := []string{common.QueueRender, common.QueueRenderStatus}
		if err := queue.SetupQueues(ch, queues); err != nil {
			logger.Fatal("Failed to set up queues", "err", err)
		}

		go consumeRenderStatus(ctx, que, jobs)
	} else {
		logger.Info("RABBITMQ_URL not set, rendering charts in-process")
	}

	s3 := storage.NewS3Client(ctx)
	if s3 != nil {
		if err := storage.EnsureBucket(ctx, s3); err != nil {
			logger.Fatal("Failed to ensure bucket exists", "err", err)
		}
	} else {
		logger.Info("S3 not configured, chart routes disabled")
	}

	app := &mid.App{
		Engine:  engine,
		Queue:   ch,
		S3:      s3,
		Jobs:    jobs,
		Uploads: uploadStore,
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				logger.Error("Request failed", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "err", v.Error)
			} else {
				logger.Info("Request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1G"))

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}

// consumeRenderStatus drains the status queue and folds worker reports into
// the job registry.
func consumeRenderStatus(ctx context.Context, conn *amqp091.Connection, jobs *registry.Registry) {
	ch, err := conn.Channel()
	if err != nil {
		logger.Error("Failed to open status channel", "err", err)
		return
	}
	defer ch.Close()

	if err := ch.Qos(1, 0, false); err != nil {
		logger.Error("Failed to set QoS on status channel", "err", err)
		return
	}

	msgs, err := ch.Consume(
		common.QueueRenderStatus,
		common.QueueRenderStatus+"_consumer",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("Failed to consume status queue", "err", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			if err := queue.ApplyRenderStatus(jobs, string(msg.Body)); err != nil {
				logger.Error("Failed to apply render status", "err", err)
				queue.HandleProcessingError(ch, msg, common.QueueRenderStatus)
				continue
			}
			if err := msg.Ack(false); err != nil {
				logger.Error("Failed to ack message", "err", err)
			}
		}
	}
}
