package intake_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/yasohm/formulaire/pkg/formsdk"
)

/*
 * Common constants and helper functions for the intake service end-to-end
 * tests: container setup, form fixtures and assertions.
 */

const testImageName = "formulaire-test:latest"

// TestMain builds the Docker image once before all tests and removes it
// after they complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building formulaire Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up formulaire Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/formulaire/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupContainer starts the service with the given environment on top of the
// test defaults and returns its base URL.
func setupContainer(t *testing.T, env map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	vars := map[string]string{
		"ENV":                "test",
		"LOG_LEVEL":          "info",
		"LOG_FORMAT":         "json",
		"FORM_MAX_FILE_SIZE": "1048576",
	}
	for k, v := range env {
		vars[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"3000/tcp"},
		Env:          vars,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("3000/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "3000")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// setupClient starts a container backed by SQLite and the disk driver.
func setupClient(t *testing.T) (*formsdk.SDKClient, func()) {
	t.Helper()
	baseURL, cleanup := setupContainer(t, nil)
	return formsdk.NewSDKClient(baseURL), cleanup
}

// applicant returns a complete form for email.
func applicant(email string) formsdk.RegisterRequest {
	return formsdk.RegisterRequest{
		Nom:           "Bennani",
		Prenom:        "Salma",
		DateNaissance: "2003-11-02",
		Email:         email,
		Telephone:     "0661122334",
		CNEMassar:     "G134567890",
		Niveau:        "Master 1",
		Filiere:       "Informatique",
	}
}

func pngUpload() *formsdk.Upload {
	return &formsdk.Upload{
		Filename:    "identite.png",
		ContentType: "image/png",
		Data:        []byte("\x89PNG\r\n\x1a\nfake"),
	}
}

func pdfUpload() *formsdk.Upload {
	return &formsdk.Upload{
		Filename:    "certificat.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4\n%fake"),
	}
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *formsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

// assertAPIError checks that err is an answer with the given status and message.
func assertAPIError(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)

	var apiErr *formsdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected an API error, got: %v", err)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, message, apiErr.Message)
}
