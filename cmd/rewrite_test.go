package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/smartcache/internal/domain"
	domainmocks "github.com/mouse-blink/smartcache/internal/domain/mocks"
)

func TestRewriteCmd(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd := newTestRootCmd(newRewriteCmd())

	mockWorkflow.EXPECT().Rewrite(domain.RewriteArgs{Path: "main.go"}).Return(nil)

	cmd.SetArgs([]string{"rewrite", "main.go"})
	require.NoError(t, cmd.Execute())
}

func TestRewriteCmd_ExactlyOneFile(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd := newTestRootCmd(newRewriteCmd())

	cmd.SetArgs([]string{"rewrite", "a.go", "b.go"})
	require.Error(t, cmd.Execute())
}
