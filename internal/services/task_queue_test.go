package services

import (
	"context"
	"errors"
	"testing"
)

func TestSyncQueue_DeliversThroughProcessor(t *testing.T) {
	queue := NewSyncQueue()

	var got *EmailTask
	queue.SetProcessor(func(_ context.Context, task *EmailTask) error {
		got = task
		return nil
	})

	task := &EmailTask{
		To:      []string{"tt1234@princeton.edu"},
		Subject: "subject",
		Body:    "body",
	}
	if err := queue.Enqueue(task); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	if got == nil {
		t.Fatal("processor was not invoked")
	}
	if got.Subject != "subject" || got.To[0] != "tt1234@princeton.edu" {
		t.Errorf("processor received %+v", got)
	}
	if queue.IsAsync() {
		t.Error("sync queue must report IsAsync false")
	}
}

func TestSyncQueue_NoProcessorDropsQuietly(t *testing.T) {
	queue := NewSyncQueue()

	if err := queue.Enqueue(&EmailTask{To: []string{"x@example.com"}}); err != nil {
		t.Errorf("enqueue without processor should not fail, got %v", err)
	}
}

func TestSyncQueue_PropagatesProcessorError(t *testing.T) {
	queue := NewSyncQueue()
	sentinel := errors.New("smtp down")
	queue.SetProcessor(func(context.Context, *EmailTask) error { return sentinel })

	if err := queue.Enqueue(&EmailTask{To: []string{"x@example.com"}}); !errors.Is(err, sentinel) {
		t.Errorf("expected processor error, got %v", err)
	}
}
