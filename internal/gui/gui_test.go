package gui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLaunchReportsUnavailable(t *testing.T) {
	err := Launch("/tmp/config.yaml")
	require.True(t, errors.Is(err, ErrNotAvailable))
}

func TestRunTrayReportsUnavailable(t *testing.T) {
	cmds := make(chan TrayCommand, 1)
	handle, err := RunTray(true, cmds)
	require.Nil(t, handle)
	require.True(t, errors.Is(err, ErrNotAvailable))
}
