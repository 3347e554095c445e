package bootstrap

import (
	"context"
	"net/http"
	"testing"

	"go-attendance/internal/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type recordingAudit struct {
	actions []string
}

func (r *recordingAudit) Log(_ context.Context, entry AuditLog) {
	r.actions = append(r.actions, entry.Action)
}

func TestServe_ShutsDownOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	audit := &recordingAudit{}
	err := serve(ctx, http.NotFoundHandler(), config.ServerConfig{Port: "0"}, audit, zap.NewNop())

	assert.NoError(t, err)
	assert.Equal(t, []string{"SERVER_START", "SERVER_SHUTDOWN"}, audit.actions)
}
