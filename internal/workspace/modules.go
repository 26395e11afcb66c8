package workspace

import (
	"fmt"

	"github.com/atomicstack/gametools-console/internal/console"
	"github.com/atomicstack/gametools-console/internal/data/protocol"
	"github.com/atomicstack/gametools-console/internal/state"
)

// Activate asks the peer to start a module for session id. An empty
// module name falls back to the session document's "Module" key.
func (w *Workspace) Activate(id, module string) error {
	sess, ok := w.Sessions.Session(id)
	if !ok {
		err := fmt.Errorf("%w: %q", state.ErrSessionNotFound, id)
		w.Log(console.Error, console.Client, fmt.Sprintf("Error: Activating %q which is not a Session", id))
		return err
	}
	params := map[string]any{}
	if sess.Kind == state.KindData {
		params = sess.Object()
		if module == "" {
			name, ok := params["Module"].(string)
			if !ok {
				w.Log(console.Error, console.Client, "Please specify the Module")
				return fmt.Errorf("%w: no module named in %q", state.ErrInvalidValue, sess.Name)
			}
			module = name
		}
	}
	id16, ok := protocol.ModuleByName(module)
	if !ok {
		w.Log(console.Error, console.Client, fmt.Sprintf("%q is not a valid module name. Please see documentation", module))
		return fmt.Errorf("%w: %q", protocol.ErrUnknownModule, module)
	}
	serial, err := w.Sessions.RequestActivation(id, id16)
	if err != nil {
		return err
	}
	w.Log(console.Info, console.Client, fmt.Sprintf("Activating module %s...", module))
	return w.Send(protocol.ActivateModuleRequest{Serial: serial, Module: id16, Params: params})
}

// Deactivate asks the peer to stop the module linked to session id. The
// link is released when the peer confirms with its own deactivation.
func (w *Workspace) Deactivate(id string) error {
	sess, ok := w.Sessions.Session(id)
	if !ok {
		w.Log(console.Error, console.Client, fmt.Sprintf("Error: Deactivating %q which is not a Session", id))
		return fmt.Errorf("%w: %q", state.ErrSessionNotFound, id)
	}
	if !sess.Linked() {
		w.Log(console.Error, console.Client, fmt.Sprintf("Error: %q is not active", sess.Name))
		return fmt.Errorf("%w: %q is not linked", state.ErrInvalidValue, sess.Name)
	}
	remote := sess.Data.Remote
	w.Log(console.Info, console.Client, fmt.Sprintf("Deactivating remote session %d...", remote))
	return w.Send(protocol.DeactivateModule{RemoteSessionID: remote})
}
