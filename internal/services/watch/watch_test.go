package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/iwebbo/AnsibleRoleDoc/internal/services/watch"
)

// TestCollectWatchDirectories verifies that the role root and every nested
// directory are included.
func TestCollectWatchDirectories(testingInstance *testing.T) {
	rolePath := testingInstance.TempDir()
	nestedPath := filepath.Join(rolePath, "templates", "conf.d")
	if mkdirError := os.MkdirAll(nestedPath, 0o755); mkdirError != nil {
		testingInstance.Fatalf("mkdir: %v", mkdirError)
	}

	watchDirectories := watch.CollectWatchDirectories(rolePath)

	expectedDirectories := map[string]bool{
		rolePath: false,
		filepath.Join(rolePath, "templates"): false,
		nestedPath:                           false,
	}
	for _, watchDirectory := range watchDirectories {
		if _, expected := expectedDirectories[watchDirectory]; expected {
			expectedDirectories[watchDirectory] = true
		}
	}
	for expectedDirectory, seen := range expectedDirectories {
		if !seen {
			testingInstance.Errorf("directory %s missing from watch set %v", expectedDirectory, watchDirectories)
		}
	}
}

// TestRunStopsOnContextCancellation verifies that Run returns cleanly once
// the context is canceled.
func TestRunStopsOnContextCancellation(testingInstance *testing.T) {
	rolePath := testingInstance.TempDir()
	runCtx, cancelRun := context.WithCancel(context.Background())

	finished := make(chan error, 1)
	go func() {
		finished <- watch.Run(runCtx, watch.Options{RolePath: rolePath}, func() error { return nil }, zap.NewNop())
	}()

	cancelRun()
	select {
	case runError := <-finished:
		if runError != nil {
			testingInstance.Errorf("unexpected error %v", runError)
		}
	case <-time.After(5 * time.Second):
		testingInstance.Fatal("watch did not stop after cancellation")
	}
}

// TestRunRegeneratesOnChange verifies that a file write triggers the
// regeneration callback.
func TestRunRegeneratesOnChange(testingInstance *testing.T) {
	rolePath := testingInstance.TempDir()
	regenerated := make(chan struct{}, 1)

	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()

	finished := make(chan error, 1)
	go func() {
		finished <- watch.Run(runCtx, watch.Options{RolePath: rolePath, DebounceInterval: 10 * time.Millisecond}, func() error {
			select {
			case regenerated <- struct{}{}:
			default:
			}
			return nil
		}, zap.NewNop())
	}()

	// Give the watcher a moment to register before producing the change.
	time.Sleep(100 * time.Millisecond)
	if writeError := os.WriteFile(filepath.Join(rolePath, "main.yml"), []byte("changed: true\n"), 0o644); writeError != nil {
		testingInstance.Fatalf("write change: %v", writeError)
	}

	select {
	case <-regenerated:
	case <-time.After(5 * time.Second):
		testingInstance.Fatal("regeneration callback never fired")
	}

	cancelRun()
	select {
	case runError := <-finished:
		if runError != nil {
			testingInstance.Errorf("unexpected error %v", runError)
		}
	case <-time.After(5 * time.Second):
		testingInstance.Fatal("watch did not stop after cancellation")
	}
}
