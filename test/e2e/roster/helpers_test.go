package roster_test

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/roster/pkg/rostersdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helpers for roster end-to-end tests: container setup,
 * account creation and invitation plumbing.
 */

const (
	testImageName = "roster-test:latest"

	adminEmail    = "admin@example.com"
	adminPassword = "Admin123!admin"
	userPassword  = "User123!user"
)

// TestMain builds the Docker image once before all tests and removes it
// afterwards.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building roster Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up roster Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/roster/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

func baseEnv() map[string]string {
	return map[string]string{
		"ROSTER_ISSUER":   "roster-e2e",
		"ROSTER_BASE_URL": "https://app.roster.test",
		"ENV":             "test",
		"LOG_LEVEL":       "info",
		"LOG_FORMAT":      "json",
	}
}

// setupRosterContainer starts roster with relaxed rate limits and returns
// the base URL.
func setupRosterContainer(t *testing.T) (string, func()) {
	t.Helper()

	env := baseEnv()
	// Tests make many rapid requests which would otherwise hit the strict limits.
	env["RATELIMIT_STRICT_REQUESTS"] = "1000"
	env["RATELIMIT_STRICT_BURST"] = "1000"
	env["RATELIMIT_MODERATE_REQUESTS"] = "1000"
	env["RATELIMIT_MODERATE_BURST"] = "1000"

	return startContainer(t, env)
}

// setupRosterContainerWithDefaultRateLimits runs with production limits, for
// rate limit tests only.
func setupRosterContainerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()
	return startContainer(t, baseEnv())
}

func startContainer(t *testing.T, env map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
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

// signupAndLogin creates an account and returns a signed-in session.
func signupAndLogin(t *testing.T, client *rostersdk.Client, email, password string) *rostersdk.Session {
	t.Helper()
	ctx := context.Background()

	_, err := client.Signup(ctx, rostersdk.SignupRequest{Email: email, Password: password, Name: email})
	require.NoError(t, err, "signup should succeed")

	session, err := client.Login(ctx, email, password)
	require.NoError(t, err, "login should succeed")
	require.NotEmpty(t, session.AccessToken())

	return session
}

// setupOrganization signs up the admin and creates an organization.
func setupOrganization(t *testing.T, client *rostersdk.Client) (*rostersdk.Session, string) {
	t.Helper()

	admin := signupAndLogin(t, client, adminEmail, adminPassword)
	org, err := admin.CreateOrganization(t.Context(), "Acme")
	require.NoError(t, err)
	require.Equal(t, "admin", org.Membership.Role)

	return admin, org.Organization.ID
}

// acceptToken pulls the token out of an acceptance link.
func acceptToken(t *testing.T, acceptURL string) string {
	t.Helper()

	u, err := url.Parse(acceptURL)
	require.NoError(t, err)
	require.Equal(t, "/accept-invite", u.Path)

	token := u.Query().Get("token")
	require.NotEmpty(t, token, "accept link should carry a token")
	return token
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *rostersdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
