package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/smartcache/internal/domain"
	domainmocks "github.com/mouse-blink/smartcache/internal/domain/mocks"
	m "github.com/mouse-blink/smartcache/internal/model"
)

func TestListCmd_UsesCache(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd := newTestRootCmd(newListCmd())

	mockWorkflow.EXPECT().Analyze(mock.MatchedBy(func(args domain.AnalyzeArgs) bool {
		return args.UseCache && args.Reports == m.Path(".smartcache-reports")
	})).Return(nil)

	cmd.SetArgs([]string{"list", "./..."})
	require.NoError(t, cmd.Execute())
}

func TestListCmd_WithExcludePatternsAndShard(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd := newTestRootCmd(newListCmd())

	mockWorkflow.EXPECT().Analyze(mock.MatchedBy(func(args domain.AnalyzeArgs) bool {
		return len(args.Exclude) == 1 && args.Exclude[0] == "^vendor/" &&
			args.ShardIndex == 2 && args.TotalShardCount == 4 &&
			args.Threads == 3
	})).Return(nil)

	cmd.SetArgs([]string{"list", "-x", "^vendor/", "-s", "2/4", "-p", "3", "./..."})
	require.NoError(t, cmd.Execute())
}

func TestListCmd_ReportsFlag(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd := newTestRootCmd(newListCmd())

	mockWorkflow.EXPECT().Analyze(mock.MatchedBy(func(args domain.AnalyzeArgs) bool {
		return args.Reports == m.Path("./reports-dir")
	})).Return(nil)

	cmd.SetArgs([]string{"--reports", "./reports-dir", "list"})
	require.NoError(t, cmd.Execute())
}

func TestNewListCmd(t *testing.T) {
	cmd := newListCmd()

	assert.Equal(t, "list [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, listLongDescription, cmd.Long)
	assert.NotNil(t, cmd.Flags().Lookup("exclude"))
	assert.NotNil(t, cmd.Flags().Lookup("parallel"))
	assert.NotNil(t, cmd.Flags().Lookup("shard"))
}
