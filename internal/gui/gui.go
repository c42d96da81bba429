// Package gui defines the contract between the daemon and an optional,
// separately maintained graphical snippet editor and tray icon. Neither is
// implemented here: the daemon's core responsibility is expansion, not
// windowing toolkits, so this package only exposes the seams a real editor
// binary would hook into and fails soft when none is present.
package gui

import "fmt"

// ErrNotAvailable is returned by every function in this package: no GUI
// front-end ships with the daemon itself.
var ErrNotAvailable = fmt.Errorf("graphical editor is not available in this build")

// TrayCommand is a command issued by the system tray icon back to the
// daemon: toggle expansion, open the editor, or quit.
type TrayCommand int

const (
	TrayToggleEnabled TrayCommand = iota
	TrayOpenEditor
	TrayQuit
)

// TrayHandle lets the caller stop a running tray icon.
type TrayHandle interface {
	Close() error
}

// Launch opens the snippet editor against the configuration at configPath.
// Always fails in this build; a separate editor binary satisfies this
// contract by shelling out or replacing this package via a build tag.
func Launch(configPath string) error {
	return ErrNotAvailable
}

// RunTray starts a system tray icon reflecting enabled and forwarding user
// choices on cmds. Always fails in this build.
func RunTray(enabled bool, cmds chan<- TrayCommand) (TrayHandle, error) {
	return nil, ErrNotAvailable
}
