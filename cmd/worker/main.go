package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/gridmind-ai/gridmind/backend/internal/queue"
	"github.com/gridmind-ai/gridmind/backend/internal/storage"
	"github.com/gridmind-ai/gridmind/backend/internal/timing"
	"github.com/gridmind-ai/gridmind/backend/internal/util"
	"github.com/gridmind-ai/gridmind/backend/pkg/common"
	"github.com/gridmind-ai/gridmind/backend/pkg/logger"
	"github.com/gridmind-ai/gridmind/backend/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Level: util.GetEnvString("LOG_LEVEL", "info"),
	})
	logger.Init(consoleLogger)

	// Init s3 client
	client := storage.NewS3Client(ctx)
	if client == nil {
		logger.Fatal("S3 is not configured, the worker has nowhere to store artifacts")
	}
	if err := storage.EnsureBucket(ctx, client); err != nil {
		logger.Fatal("Failed to ensure bucket exists", "err", err)
	}

	// Init rabbitmq
	conn, err := queue.Init(util.GetEnv("RABBITMQ_URL"))
	if err != nil {
		logger.Fatal("Failed to connect to queue", "err", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	defer ch.Close()

	queues := []string{common.QueueRender, common.QueueRenderStatus}
	if err := queue.SetupQueues(ch, queues); err != nil {
		logger.Fatal("Failed to set up queues", "err", err)
	}

	logger.Info("Listening for messages")

	maxRenders := int64(runtime.NumCPU())

	// Consumer channel with prefetch matching the render bound so the broker
	// never hands out more work than we are willing to run at once.
	consumerCh, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open consumer channel", "err", err)
	}
	defer consumerCh.Close()

	if err := consumerCh.Qos(int(maxRenders), 0, true); err != nil {
		logger.Fatal("Failed to set QoS", "err", err)
	}

	consumerTag := fmt.Sprintf("%s_consumer", common.QueueRender)
	msgs, err := consumerCh.Consume(
		common.QueueRender,
		consumerTag,
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,   // args
	)
	if err != nil {
		logger.Fatal("Failed to start consuming", "queue", common.QueueRender, "err", err)
	}

	sem := semaphore.NewWeighted(maxRenders)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				logger.Info("Stopping consumer", "queue", common.QueueRender)
				return nil
			case msg, ok := <-msgs:
				if !ok {
					logger.Info("Message channel closed", "queue", common.QueueRender)
					return nil
				}
				if err := sem.Acquire(gctx, 1); err != nil {
					return nil
				}
				g.Go(func() error {
					defer sem.Release(1)
					processMessage(gctx, client, ch, consumerCh, msg)
					return nil
				})
			}
		}
	})

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped", "err", err)
	}
	logger.Info("Shutdown signal received, exiting...")
}

func processMessage(ctx context.Context, client *s3.Client, ch, consumerCh *amqp.Channel, msg amqp.Delivery) {
	startTime := time.Now()
	logger.Info("Received message", "queue", common.QueueRender)

	// If there was an error send to retry or dead-letter, otherwise ack the message
	if err := queue.ProcessRender(ctx, client, ch, string(msg.Body)); err != nil {
		logger.Error("Error processing message", "queue", common.QueueRender, "err", err)
		queue.HandleProcessingError(consumerCh, msg, common.QueueRender)
	} else {
		if err := msg.Ack(false); err != nil {
			logger.Error("Failed to ack message", "err", err)
		}
		logger.Info("Message processed successfully", "queue", common.QueueRender)
	}

	logger.Info("Processing time", "duration", timing.Since(startTime))
	logger.Info("Waiting for next message")
}
