//go:build integration
// +build integration

package integration

import (
	"context"
	"os/exec"
	"testing"
)

// restartStorefrontContainer bounces the service under test. It assumes
// the suite runs from a directory whose docker-compose project defines a
// "storefront" service backed by a volume-mounted data directory; the
// compose file lives with the deployment harness, not in this repository.
func restartStorefrontContainer(t *testing.T, ctx context.Context) {
	t.Helper()

	cmd := exec.CommandContext(ctx, "docker", "compose", "restart", "storefront")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("docker compose restart storefront failed: %v\n%s", err, string(out))
	}
}
