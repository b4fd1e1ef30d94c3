package container

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

// Launcher provisions the database container through docker compose and
// confirms it is running by polling the runtime's process list.
type Launcher struct {
	Runner CommandRunner

	// WarmupSleep is waited once after compose up; PollSleep between status
	// checks. Shortened in tests.
	WarmupSleep time.Duration
	PollSleep   time.Duration
}

const launchAttempts = 3

// NewLauncher returns a Launcher with production sleep intervals.
func NewLauncher(runner CommandRunner) *Launcher {
	return &Launcher{
		Runner:      runner,
		WarmupSleep: 10 * time.Second,
		PollSleep:   10 * time.Second,
	}
}

// Launch writes the descriptor, brings the service up in the background, and
// polls up to three times for the named container. A failing status check is
// logged and consumes an attempt, so the loop always terminates.
func (l *Launcher) Launch(ctx context.Context, p Params) error {
	if err := WriteDescriptor(p); err != nil {
		return err
	}

	log.Printf("INFO: starting Postgres container via docker compose...")
	if err := l.Runner.Run(ctx, "docker-compose", "up", "-d"); err != nil {
		return fmt.Errorf("docker-compose up failed: %w", err)
	}

	log.Printf("INFO: waiting for the Postgres container to come up (about %s)...", l.WarmupSleep)
	if err := sleep(ctx, l.WarmupSleep); err != nil {
		return err
	}

	for attempt := 1; attempt <= launchAttempts; attempt++ {
		running, err := l.isRunning(ctx, p.ContainerName)
		if err != nil {
			// Treated as "not yet running"; still consumes the attempt.
			log.Printf("INFO: container status check failed: %v", err)
		} else if running {
			log.Printf("INFO: container %s is running.", p.ContainerName)
			return nil
		} else {
			log.Printf("INFO: container %s not running yet, rechecking in %s.", p.ContainerName, l.PollSleep)
		}

		if attempt < launchAttempts {
			if err := sleep(ctx, l.PollSleep); err != nil {
				return err
			}
		}
	}

	return fmt.Errorf("container %s did not start after %d attempts; check the launch parameters", p.ContainerName, launchAttempts)
}

// isRunning lists running containers filtered by name and looks for an exact
// name match in the output.
func (l *Launcher) isRunning(ctx context.Context, name string) (bool, error) {
	out, err := l.Runner.Output(ctx, "docker", "ps", "--filter", "name="+name, "--format", "{{.Names}}")
	if err != nil {
		return false, err
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == name {
			return true, nil
		}
	}
	return false, nil
}

// Down stops and removes the compose service and its containers.
func (l *Launcher) Down(ctx context.Context) error {
	log.Printf("INFO: stopping and removing the container...")
	if err := l.Runner.Run(ctx, "docker-compose", "down"); err != nil {
		return fmt.Errorf("docker-compose down failed: %w", err)
	}
	log.Printf("INFO: container stopped and removed.")
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
