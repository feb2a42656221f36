package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"syscall"
	"time"

	"github.com/FrenchMajesty/turbo-retry/retry"
	"github.com/FrenchMajesty/turbo-retry/utils/logger"
)

// flakyFetch simulates a network call that fails with a transient error most
// of the time before eventually succeeding.
func flakyFetch() (string, error) {
	if rand.Float32() < 0.6 {
		return "", fmt.Errorf("read payload: %w", syscall.ECONNRESET)
	}
	return "payload-ok", nil
}

// slowIndex simulates a poll that reports false until a backend catches up
var indexPolls = 0

func slowIndex() (any, error) {
	indexPolls++
	return indexPolls >= 3, nil
}

func main() {
	fmt.Println("TurboRetry Demo")
	fmt.Println("===============")

	sink := logger.NewTintLogger(slog.LevelWarn)
	defer sink.Close()

	// Demo 1: exponential backoff on transient network errors
	fmt.Println("\nDemo 1: transient network errors with exponential backoff")
	r := retry.New(retry.Options{
		Retry:   retry.OnErrors(),
		Retries: 5,
		Wait:    1 * time.Second,
		Logger:  sink,
		Verbose: true,
	})

	payload, err := retry.Do(r, "flakyFetch", flakyFetch)
	if err != nil {
		fmt.Printf("✗ fetch gave up: %v\n", err)
	} else {
		fmt.Printf("✓ fetch succeeded: %s\n", payload)
	}

	// Demo 2: retrying on a false result with jitter
	fmt.Println("\nDemo 2: polling a false result with jittered delays")
	poller := retry.New(retry.Options{
		Retry:   retry.OnFalse(),
		Retries: 4,
		Wait:    1 * time.Second,
		Jitter:  true,
		Logger:  sink,
	})

	ready, err := poller.Call("slowIndex", slowIndex)
	if err != nil {
		fmt.Printf("✗ index never became ready: %v\n", err)
	} else {
		fmt.Printf("✓ index ready: %v\n", ready)
	}

	// Demo 3: decorating a whole service struct
	fmt.Println("\nDemo 3: wrapping every operation of a service")
	svc := &ArchiveService{
		Upload: func(name string) error {
			if rand.Float32() < 0.5 {
				return fmt.Errorf("upload %s: %w", name, syscall.EPIPE)
			}
			return nil
		},
		Delete: func(name string) error {
			return errors.New("permission denied") // never retryable
		},
	}

	wrapper := retry.New(retry.Options{
		Retry:   retry.OnErrors(),
		Retries: 3,
		Wait:    1 * time.Second,
		Logger:  sink,
	})
	if err := wrapper.WrapStruct(svc); err != nil {
		fmt.Printf("✗ wrap failed: %v\n", err)
		return
	}

	if err := svc.Upload("report.csv"); err != nil {
		fmt.Printf("✗ upload gave up: %v\n", err)
	} else {
		fmt.Println("✓ upload succeeded")
	}

	if err := svc.Delete("report.csv"); err != nil {
		fmt.Printf("✓ delete failed immediately as expected: %v\n", err)
	}
}

// ArchiveService is a demo service whose operations are retried uniformly
type ArchiveService struct {
	Upload func(name string) error
	Delete func(name string) error
}
