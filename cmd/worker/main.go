package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/Fashion-Store/Aradaa/internal/aws"
	"github.com/Fashion-Store/Aradaa/internal/config"
	"github.com/Fashion-Store/Aradaa/internal/idempotency"
	"github.com/Fashion-Store/Aradaa/internal/logger"
	"github.com/Fashion-Store/Aradaa/internal/notify"
)

const sampleEvent = `{"order_id":"ORD1700123456","customer_name":"Local Tester","customer_email":"local@example.com","item_count":1,"total":12500}`

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "worker",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})
	ctx := context.Background()

	var n notify.Notifier = notify.LogNotifier{Logger: log}
	if cfg.SMTP.Enabled() {
		mailer, err := notify.NewMailer(cfg.SMTP)
		if err != nil {
			log.Error("mailer init failed", slog.Any("err", err))
			os.Exit(1)
		}
		n = mailer
	}

	var dedup Deduper
	if cfg.IdempotencyTable != "" {
		clients, err := aws.NewAWSClients(ctx, cfg.AWSRegion, cfg.AWSEndpoint)
		if err != nil {
			log.Error("failed to init aws clients", slog.Any("err", err))
			os.Exit(1)
		}
		dedup = idempotency.NewStore(clients.DynamoDB, cfg.IdempotencyTable, cfg.IdempotencyTTL)
	}

	p := NewProcessor(n, dedup, log)

	if !cfg.ServeLambda() {
		// simulate one delivery, body from LOCAL_SQS_BODY
		body := os.Getenv("LOCAL_SQS_BODY")
		if body == "" {
			body = sampleEvent
		}
		event := events.SQSEvent{
			Records: []events.SQSMessage{{MessageId: "local-1", Body: body}},
		}
		resp, err := p.Handle(ctx, event)
		if err != nil || len(resp.BatchItemFailures) > 0 {
			log.Error("local run failed", slog.Any("err", err), slog.Int("failures", len(resp.BatchItemFailures)))
			os.Exit(1)
		}
		return
	}

	lambda.Start(p.Handle)
}
