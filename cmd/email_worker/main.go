package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/janata-app/janata-api/config"
	"github.com/janata-app/janata-api/pkg/mailer"
)

// Consumes notification jobs published by the API server and delivers them
// through Mailgun. Render failures are dropped, delivery failures requeued.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if !cfg.MailSendEnabled {
		log.Println("MAIL_SEND_ENABLED=false; notification worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQNotifyQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}
	if _, err := ch.QueueDeclare(cfg.RabbitMQNotifyQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}
	msgs, err := ch.Consume(cfg.RabbitMQNotifyQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var job mailer.EmailJob
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				log.Printf("bad message: %v", err)
				_ = msg.Nack(false, false)
				continue
			}
			if job.To == "" {
				_ = msg.Nack(false, false)
				continue
			}

			subject := job.Subject
			text := job.Text
			html := job.HTML
			if job.Template != "" {
				rendered, rerr := mailer.RenderHTML(job)
				if rerr != nil {
					log.Printf("render %s failed: %v", job.Template, rerr)
					_ = msg.Nack(false, false)
					continue
				}
				html = rendered
				if subject == "" {
					subject = mailer.Subject(job.Template)
				}
			}

			c, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := mg.Send(c, job.To, subject, text, html)
			cancel()
			if err != nil {
				log.Printf("send failed: %v", err)
				_ = msg.Nack(false, true)
				continue
			}
			_ = msg.Ack(false)
		}
		close(done)
	}()

	log.Printf("notification worker listening on queue=%s", cfg.RabbitMQNotifyQueue)
	<-stop
	log.Printf("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
