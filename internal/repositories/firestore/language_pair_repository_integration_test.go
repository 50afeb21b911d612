//go:build integration

package firestore

import (
	"context"
	"fmt"
	"net"
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"

	pconfig "github.com/lingobridge/api/internal/platform/config"
	pfirestore "github.com/lingobridge/api/internal/platform/firestore"

	domain "github.com/lingobridge/api/internal/domain"
)

const firestoreEmulatorImage = "gcr.io/google.com/cloudsdktool/cloud-sdk:emulators"

func TestLanguagePairRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test skipped in short mode")
	}

	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not available: " + err.Error())
	}

	ensureDockerDaemon(t)

	port := freePort(t)
	endpoint := fmt.Sprintf("127.0.0.1:%d", port)
	containerID := startFirestoreEmulator(t, port)
	t.Cleanup(func() { stopContainer(containerID) })

	waitForEndpoint(t, endpoint, 30*time.Second)

	cfg := pconfig.FirestoreConfig{
		ProjectID:    "language-pair-test",
		EmulatorHost: endpoint,
	}

	provider := pfirestore.NewProvider(cfg)
	t.Cleanup(func() {
		_ = provider.Close()
	})

	repo, err := NewLanguagePairRepository(provider)
	if err != nil {
		t.Fatalf("new language pair repository: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	now := time.Now().UTC()
	stats := domain.LanguagePairStats{
		PairKey:        "en-fr",
		SourceLanguage: "en",
		TargetLanguage: "fr",
		LastUpdated:    now,
	}

	// Concurrent first contributions must converge on one aggregate document
	// with every increment accounted for.
	const workers = 12
	var wg sync.WaitGroup
	wg.Add(workers)
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		go func(idx int) {
			defer wg.Done()
			if err := repo.EnsureExists(ctx, stats); err != nil {
				errs[idx] = fmt.Errorf("ensure: %w", err)
				return
			}
			delta := domain.CounterDelta{Total: 1, Pending: 1}
			if err := repo.IncrementCounters(ctx, "en-fr", delta, time.Now().UTC()); err != nil {
				errs[idx] = fmt.Errorf("increment: %w", err)
			}
		}(i)
	}

	wg.Wait()
	for idx, err := range errs {
		if err != nil {
			t.Fatalf("worker %d: %v", idx, err)
		}
	}

	got, err := repo.Get(ctx, "en-fr")
	if err != nil {
		t.Fatalf("get aggregate: %v", err)
	}
	if got.TotalContributions != workers || got.PendingContributions != workers {
		t.Fatalf("counters = total %d pending %d, want %d each", got.TotalContributions, got.PendingContributions, workers)
	}
	if got.SourceLanguage != "en" || got.TargetLanguage != "fr" {
		t.Fatalf("aggregate languages = %s/%s, want en/fr", got.SourceLanguage, got.TargetLanguage)
	}

	contribution := domain.Contribution{
		ID:             "c-1",
		SourceText:     "tree",
		TargetText:     "arbre",
		SourceLanguage: "en",
		TargetLanguage: "fr",
		Status:         domain.ContributionStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := repo.InsertTranslationCopy(ctx, "en-fr", contribution); err != nil {
		t.Fatalf("insert translation copy: %v", err)
	}
}

func TestContributionRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test skipped in short mode")
	}

	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not available: " + err.Error())
	}

	ensureDockerDaemon(t)

	port := freePort(t)
	endpoint := fmt.Sprintf("127.0.0.1:%d", port)
	containerID := startFirestoreEmulator(t, port)
	t.Cleanup(func() { stopContainer(containerID) })

	waitForEndpoint(t, endpoint, 30*time.Second)

	cfg := pconfig.FirestoreConfig{
		ProjectID:    "contribution-test",
		EmulatorHost: endpoint,
	}

	provider := pfirestore.NewProvider(cfg)
	t.Cleanup(func() {
		_ = provider.Close()
	})

	repo, err := NewContributionRepository(provider)
	if err != nil {
		t.Fatalf("new contribution repository: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	now := time.Now().UTC()
	pending := domain.Contribution{
		ID:             "pending-1",
		SourceText:     "river",
		TargetText:     "rivière",
		SourceLanguage: "en",
		TargetLanguage: "fr",
		Status:         domain.ContributionStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := repo.Insert(ctx, pending); err != nil {
		t.Fatalf("insert pending: %v", err)
	}

	got, err := repo.FindPending(ctx, "river", "en", "fr")
	if err != nil {
		t.Fatalf("find pending: %v", err)
	}
	if got.ID != "pending-1" || got.TargetText != "rivière" {
		t.Fatalf("find pending = %+v", got)
	}

	if _, err := repo.FindValidated(ctx, "river", "en", "fr"); err == nil {
		t.Fatal("find validated should miss, the record is pending")
	}

	byID, err := repo.FindByID(ctx, "pending-1")
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if byID.SourceText != "river" || byID.Status != domain.ContributionStatusPending {
		t.Fatalf("find by id = %+v", byID)
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	addr, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("unable to allocate port: %v", err)
	}
	defer addr.Close()
	return addr.Addr().(*net.TCPAddr).Port
}

func startFirestoreEmulator(t *testing.T, port int) string {
	t.Helper()
	args := []string{
		"run", "-d", "--rm",
		"-p", fmt.Sprintf("%d:8080", port),
		firestoreEmulatorImage,
		"gcloud", "beta", "emulators", "firestore", "start",
		"--host-port=0.0.0.0:8080",
		"--quiet",
	}

	cmd := exec.Command("docker", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to start firestore emulator: %v - %s", err, string(out))
	}
	id := strings.TrimSpace(string(out))
	if id == "" {
		t.Fatalf("docker returned empty container id")
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return id
}

func ensureDockerDaemon(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cmd := exec.CommandContext(ctx, "docker", "info")
	if err := cmd.Run(); err != nil {
		t.Fatalf("docker daemon not available: %v", err)
	}
}

func stopContainer(id string) {
	if id == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cmd := exec.CommandContext(ctx, "docker", "stop", id)
	_ = cmd.Run()
}

func waitForEndpoint(t *testing.T, endpoint string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", endpoint, 500*time.Millisecond)
		if err == nil {
			conn.Close()
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	t.Fatalf("firestore emulator at %s did not become ready within %s", endpoint, timeout)
}
