package workspace

import (
	"github.com/atomicstack/gametools-console/internal/console"
	"github.com/atomicstack/gametools-console/internal/data/protocol"
	"github.com/atomicstack/gametools-console/internal/logging"
	"github.com/atomicstack/gametools-console/internal/settings"
)

// SyncSettings persists the current layout when it has changed since the
// last save: to the peer while connected, and to the settings file when
// one is configured.
func (w *Workspace) SyncSettings() {
	doc, err := settings.Marshal(w.Sessions, w.Widgets)
	if err != nil {
		logging.Error(err)
		return
	}
	if w.file != nil && doc != w.lastStored {
		if err := w.file.SaveJSON([]byte(doc)); err != nil {
			logging.Error(err)
			w.Log(console.Error, console.Client, "Error when saving settings file")
		}
		w.lastStored = doc
	}
	if !w.ready || doc == w.lastSent {
		return
	}
	w.Log(console.Info, console.Client, "Saving Settings ...")
	if err := w.Send(protocol.PersistStorage{Data: doc}); err != nil {
		return
	}
	w.lastSent = doc
}

// LoadSettings restores the stores from a percent-encoded document.
func (w *Workspace) LoadSettings(encoded string) error {
	if encoded == "" {
		return nil
	}
	return settings.Deserialize(encoded, w.Sessions, w.Widgets)
}

// LoadSettingsFile restores the stores from the configured settings file,
// if it exists.
func (w *Workspace) LoadSettingsFile() error {
	if w.file == nil {
		return nil
	}
	encoded, err := w.file.Load()
	if err != nil {
		w.Log(console.Error, console.Client, "Error when loading settings")
		return err
	}
	return w.LoadSettings(encoded)
}

// ExportSettings returns the percent-encoded document for the current
// state.
func (w *Workspace) ExportSettings() (string, error) {
	return settings.Serialize(w.Sessions, w.Widgets)
}
