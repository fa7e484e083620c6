// Package notify sends desktop notifications.
package notify

import (
	"fmt"
	"path/filepath"

	"github.com/gen2brain/beeep"
)

// AppName is shown as the notification source.
const AppName = "chatrecap"

// send is swapped out in tests.
var send = beeepNotify

func beeepNotify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// ReportSaved announces a written Markdown report.
func ReportSaved(path string) error {
	beeep.AppName = AppName
	if err := send("Chat report ready", fmt.Sprintf("Saved %s", filepath.Base(path))); err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	return nil
}
