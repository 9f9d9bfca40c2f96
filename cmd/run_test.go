package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/smartcache/internal/domain"
	domainmocks "github.com/mouse-blink/smartcache/internal/domain/mocks"
	m "github.com/mouse-blink/smartcache/internal/model"
)

func TestRunCmd_InvokesRoutines(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd := newTestRootCmd(newRunCmd())

	mockWorkflow.EXPECT().Run(mock.Anything, domain.RunArgs{
		Path:     m.Path("examples/basic/main.go"),
		Routines: []string{"report", "sumCount"},
		Repeat:   domain.DefaultRepeat,
	}).Return(nil)

	cmd.SetArgs([]string{"run", "examples/basic/main.go", "report", "sumCount"})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_AllRoutinesWithRepeat(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd := newTestRootCmd(newRunCmd())

	mockWorkflow.EXPECT().Run(mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.Path == m.Path("main.go") && len(args.Routines) == 0 && args.Repeat == 5
	})).Return(nil)

	cmd.SetArgs([]string{"run", "-n", "5", "main.go"})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_PropagatesErrors(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd := newTestRootCmd(newRunCmd())

	mockWorkflow.EXPECT().Run(mock.Anything, mock.Anything).Return(domain.ErrExecution)

	cmd.SetArgs([]string{"run", "main.go", "boom"})
	err := cmd.Execute()
	require.True(t, errors.Is(err, domain.ErrExecution))
}

func TestRunCmd_RequiresFile(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd := newTestRootCmd(newRunCmd())

	cmd.SetArgs([]string{"run"})
	require.Error(t, cmd.Execute())
}

func TestNewRunCmd(t *testing.T) {
	cmd := newRunCmd()

	assert.Equal(t, "run <file> [routines...]", cmd.Use)
	assert.Equal(t, runLongDescription, cmd.Long)

	repeat := cmd.Flags().Lookup("repeat")
	require.NotNil(t, repeat)
	assert.Equal(t, "2", repeat.DefValue)
}
