package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"careconnect/internal/domain/model"
	"careconnect/internal/platform/queue"
)

const (
	// MaxAlertAttempts is how many deliveries an alert gets before it is dropped.
	MaxAlertAttempts = 3

	popTimeout = 5 * time.Second
)

type AlertSource interface {
	Pop(ctx context.Context, timeout time.Duration) (*model.PriorityAlert, error)
	Requeue(ctx context.Context, alert model.PriorityAlert) error
}

// Dispatcher delivers a single alert to coordinators.
type Dispatcher interface {
	Dispatch(ctx context.Context, alert model.PriorityAlert) error
}

type AlertWorker struct {
	source     AlertSource
	dispatcher Dispatcher
	log        *slog.Logger
	errBackoff time.Duration
}

func NewAlertWorker(source AlertSource, dispatcher Dispatcher, log *slog.Logger) *AlertWorker {
	return &AlertWorker{
		source:     source,
		dispatcher: dispatcher,
		log:        log,
		errBackoff: 5 * time.Second,
	}
}

// Start consumes alerts until ctx is cancelled.
func (w *AlertWorker) Start(ctx context.Context) {
	w.log.Info("alert worker started")
	for {
		select {
		case <-ctx.Done():
			w.log.Info("alert worker stopping")
			return
		default:
		}

		alert, err := w.source.Pop(ctx, popTimeout)
		if err != nil {
			switch {
			case errors.Is(err, queue.ErrQueueEmpty):
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			default:
				w.log.Error("failed to pop priority alert", "error", err)
				w.sleep(ctx, w.errBackoff)
			}
			continue
		}

		w.handle(ctx, *alert)
	}
}

func (w *AlertWorker) handle(ctx context.Context, alert model.PriorityAlert) {
	err := w.dispatcher.Dispatch(ctx, alert)
	if err == nil {
		w.log.Info("priority alert delivered", "patient_id", alert.PatientID)
		return
	}

	alert.Attempts++
	if alert.Attempts >= MaxAlertAttempts {
		w.log.Error("dropping priority alert", "patient_id", alert.PatientID, "attempts", alert.Attempts, "error", err)
		return
	}

	w.log.Warn("priority alert delivery failed, requeueing", "patient_id", alert.PatientID, "attempts", alert.Attempts, "error", err)
	if err := w.source.Requeue(ctx, alert); err != nil {
		w.log.Error("failed to requeue priority alert", "patient_id", alert.PatientID, "error", err)
	}
}

func (w *AlertWorker) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// WebhookDispatcher POSTs each alert as JSON to a coordinator endpoint.
type WebhookDispatcher struct {
	url    string
	client *http.Client
}

func NewWebhookDispatcher(url string) *WebhookDispatcher {
	return &WebhookDispatcher{url: url, client: &http.Client{Timeout: 10 * time.Second}}
}

func (d *WebhookDispatcher) Dispatch(ctx context.Context, alert model.PriorityAlert) error {
	body, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to encode alert: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call alert webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("alert webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// LogDispatcher writes alerts to the log when no webhook is configured.
type LogDispatcher struct {
	log *slog.Logger
}

func NewLogDispatcher(log *slog.Logger) *LogDispatcher {
	return &LogDispatcher{log: log}
}

func (d *LogDispatcher) Dispatch(ctx context.Context, alert model.PriorityAlert) error {
	d.log.WarnContext(ctx, "HIGH priority patient request",
		"patient_id", alert.PatientID,
		"name", alert.FullName,
		"phone", alert.Phone,
		"location", alert.Location,
		"summary", alert.Summary,
	)
	return nil
}
