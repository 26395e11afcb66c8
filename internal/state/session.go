package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/atomicstack/gametools-console/internal/console"
	"github.com/atomicstack/gametools-console/internal/logging/events"
)

// Fixed identifiers of the singleton sessions.
const (
	ConnectionID = "connection"
	HelpID       = "help"
)

const (
	defaultSwitchHost = "192.168.0.0"
	defaultSwitchPort = 65433
	idLength          = 10
)

// WelcomeLine is the first line of every new console.
const WelcomeLine = "Welcome to the gametools console. Press ctrl+p on a widget to see options\n"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNotClosable     = errors.New("session is not allowed to be closed")
	ErrWrongKind       = errors.New("wrong session kind")
	ErrReadOnly        = errors.New("session is read-only")
	ErrInvalidValue    = errors.New("invalid value")
	ErrUnknownSerial   = errors.New("unknown activation serial")
)

// Kind tags the session variants.
type Kind int

const (
	KindConsole Kind = iota + 1
	KindData
	KindConnection
	KindOutput
	KindHelp
)

func (k Kind) String() string {
	switch k {
	case KindConsole:
		return "console"
	case KindData:
		return "data"
	case KindConnection:
		return "connection"
	case KindOutput:
		return "output"
	case KindHelp:
		return "help"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ConsoleLog is the state carried by console sessions.
type ConsoleLog struct {
	Filter console.Filter
	Buffer string
}

// DataObject is the state carried by data and output sessions. Object is
// the operator-edited document; Live is the latest module output.
type DataObject struct {
	Object map[string]any
	Live   map[string]any
	Remote int8
	Linked bool
}

// Connection is the state of the connection singleton.
type Connection struct {
	Host      string
	Port      int
	Connected bool
}

// Object exposes the connection the way data sessions are displayed.
func (c Connection) Object() map[string]any {
	return map[string]any{
		"SwitchHost": c.Host,
		"SwitchPort": c.Port,
		"Connected":  c.Connected,
	}
}

// Session is a tagged union: exactly the payload matching Kind is set.
type Session struct {
	ID   string
	Name string
	Kind Kind

	Console    *ConsoleLog
	Data       *DataObject
	Connection *Connection
}

// Remote index sentinels reported by RemoteIndex.
const (
	RemoteUnlinked   = -1
	RemoteConsole    = -2
	RemoteConnection = -3
	RemoteOutput     = -4
	RemoteHelp       = -5
)

// RemoteIndex reports the remote module slot for linked sessions and a
// negative marker otherwise. It is informational only.
func (s Session) RemoteIndex() int {
	switch s.Kind {
	case KindConsole:
		return RemoteConsole
	case KindConnection:
		return RemoteConnection
	case KindHelp:
		return RemoteHelp
	}
	if s.Data != nil && s.Data.Linked {
		return int(s.Data.Remote)
	}
	if s.Kind == KindOutput {
		return RemoteOutput
	}
	return RemoteUnlinked
}

// Linked reports whether the session is bound to a remote module instance.
func (s Session) Linked() bool {
	return s.Data != nil && s.Data.Linked
}

// Object returns the document shown for data-like sessions.
func (s Session) Object() map[string]any {
	switch {
	case s.Connection != nil:
		return s.Connection.Object()
	case s.Kind == KindOutput && s.Data != nil:
		return cloneObject(s.Data.Live)
	case s.Data != nil:
		return cloneObject(s.Data.Object)
	}
	return nil
}

func (s Session) clone() Session {
	dup := s
	if s.Console != nil {
		c := *s.Console
		c.Filter = s.Console.Filter.Clone()
		dup.Console = &c
	}
	if s.Data != nil {
		d := *s.Data
		d.Object = cloneObject(s.Data.Object)
		d.Live = cloneObject(s.Data.Live)
		dup.Data = &d
	}
	if s.Connection != nil {
		c := *s.Connection
		dup.Connection = &c
	}
	return dup
}

// cloneObject deep-copies a JSON-like document.
func cloneObject(obj map[string]any) map[string]any {
	if obj == nil {
		return nil
	}
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneObject(t)
	case []any:
		dup := make([]any, len(t))
		for i := range t {
			dup[i] = cloneValue(t[i])
		}
		return dup
	default:
		return v
	}
}

// SessionStore owns every session. It is the only mutation path for
// session state and is used from a single goroutine.
type SessionStore struct {
	order    []string
	sessions map[string]*Session

	serial  int8
	pending map[int8]string
	links   map[int8]string

	listeners []func(id string)

	now   func() time.Time
	newID func() string
}

// NewSessionStore returns a store holding only the connection and help
// singletons.
func NewSessionStore() *SessionStore {
	s := &SessionStore{
		sessions: make(map[string]*Session),
		pending:  make(map[int8]string),
		links:    make(map[int8]string),
		now:      time.Now,
		newID:    shortID,
	}
	s.insert(&Session{
		ID:         ConnectionID,
		Name:       "Connection",
		Kind:       KindConnection,
		Connection: &Connection{Host: defaultSwitchHost, Port: defaultSwitchPort},
	})
	s.insert(&Session{ID: HelpID, Name: "Help", Kind: KindHelp})
	return s
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:idLength]
}

// SetClock replaces the time source used for log timestamps.
func (s *SessionStore) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// OnRemove registers fn to run after every session removal.
func (s *SessionStore) OnRemove(fn func(id string)) {
	if fn != nil {
		s.listeners = append(s.listeners, fn)
	}
}

func (s *SessionStore) insert(sess *Session) {
	s.sessions[sess.ID] = sess
	s.order = append(s.order, sess.ID)
	events.Session.Create(sess.ID, sess.Kind.String(), sess.Name)
}

func (s *SessionStore) allocateID() string {
	for {
		id := s.newID()
		if _, taken := s.sessions[id]; !taken && id != "" {
			return id
		}
	}
}

// Session returns a copy of the session with the given id.
func (s *SessionStore) Session(id string) (Session, bool) {
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	return sess.clone(), true
}

// Sessions returns copies of every session in creation order.
func (s *SessionStore) Sessions() []Session {
	out := make([]Session, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.sessions[id].clone())
	}
	return out
}

// Has reports whether a session with id exists.
func (s *SessionStore) Has(id string) bool {
	_, ok := s.sessions[id]
	return ok
}

// Len reports the number of sessions.
func (s *SessionStore) Len() int {
	return len(s.order)
}

// FirstConsole returns the id of the oldest console session.
func (s *SessionStore) FirstConsole() (string, bool) {
	for _, id := range s.order {
		if s.sessions[id].Kind == KindConsole {
			return id, true
		}
	}
	return "", false
}

// NextName returns the first unused "<prefix> N" name.
func (s *SessionStore) NextName(prefix string) string {
	taken := make(map[string]bool, len(s.order))
	for _, id := range s.order {
		taken[s.sessions[id].Name] = true
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s %d", prefix, i)
		if !taken[name] {
			return name
		}
	}
}

// CreateConsoleSession opens a console. An empty name picks the next free
// "Console N".
func (s *SessionStore) CreateConsoleSession(name string) string {
	if strings.TrimSpace(name) == "" {
		name = s.NextName("Console")
	}
	s.AppendLog(console.Info, console.Client, fmt.Sprintf("Creating new Console Session %q", name))
	sess := &Session{
		ID:      s.allocateID(),
		Name:    name,
		Kind:    KindConsole,
		Console: &ConsoleLog{Filter: console.DefaultFilter(), Buffer: WelcomeLine},
	}
	s.insert(sess)
	return sess.ID
}

// CreateDataSession opens an empty, unlinked data session.
func (s *SessionStore) CreateDataSession(name string) string {
	if strings.TrimSpace(name) == "" {
		name = s.NextName("Data")
	}
	s.AppendLog(console.Info, console.Client, fmt.Sprintf("Creating new Data Session %q", name))
	sess := &Session{
		ID:   s.allocateID(),
		Name: name,
		Kind: KindData,
		Data: &DataObject{Object: map[string]any{}},
	}
	s.insert(sess)
	return sess.ID
}

// CreateOutputSession opens a read-only session that will show the output
// of a remote module once activated.
func (s *SessionStore) CreateOutputSession(name string) string {
	if strings.TrimSpace(name) == "" {
		name = s.NextName("Output")
	}
	s.AppendLog(console.Info, console.Client, fmt.Sprintf("Creating new Output Session %q", name))
	sess := &Session{
		ID:   s.allocateID(),
		Name: name,
		Kind: KindOutput,
		Data: &DataObject{},
	}
	s.insert(sess)
	return sess.ID
}

// RenameSession changes a session's display name. Singletons keep theirs.
func (s *SessionStore) RenameSession(id, name string) error {
	sess, ok := s.sessions[id]
	if !ok {
		return s.fail(fmt.Errorf("%w: %q", ErrSessionNotFound, id), fmt.Sprintf("Error: Renaming %q which is not a Session", id))
	}
	if isSingleton(id) {
		return s.fail(fmt.Errorf("%w: %q cannot be renamed", ErrWrongKind, id), fmt.Sprintf("Error: Session %q cannot be renamed", sess.Name))
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return s.fail(fmt.Errorf("%w: empty name", ErrInvalidValue), "Error: Session name cannot be empty")
	}
	sess.Name = name
	events.Session.Rename(id, name)
	return nil
}

func isSingleton(id string) bool {
	return id == ConnectionID || id == HelpID
}

// CanClose reports whether id may be closed: singletons and sessions linked
// to a remote module may not.
func (s *SessionStore) CanClose(id string) bool {
	sess, ok := s.sessions[id]
	if !ok || isSingleton(id) {
		return false
	}
	return !sess.Linked()
}

// CloseSession removes a closable session.
func (s *SessionStore) CloseSession(id string) error {
	sess, ok := s.sessions[id]
	if !ok {
		return s.fail(fmt.Errorf("%w: %q", ErrSessionNotFound, id), fmt.Sprintf("Error: Closing %q which is not a Session", id))
	}
	if !s.CanClose(id) {
		events.Session.CloseRejected(id, "not closable")
		return s.fail(fmt.Errorf("%w: %q", ErrNotClosable, sess.Name), fmt.Sprintf("Error: Session %q is not allowed to be closed.", sess.Name))
	}
	s.remove(id)
	return nil
}

// CloseAllSessions closes every closable session.
func (s *SessionStore) CloseAllSessions() {
	for _, id := range append([]string(nil), s.order...) {
		if s.CanClose(id) {
			s.remove(id)
		}
	}
}

func (s *SessionStore) remove(id string) {
	sess := s.sessions[id]
	s.AppendLog(console.Info, console.Client, fmt.Sprintf("Closing Session %q", sess.Name))
	delete(s.sessions, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	for serial, target := range s.pending {
		if target == id {
			delete(s.pending, serial)
		}
	}
	events.Session.Close(id)
	for _, fn := range s.listeners {
		fn(id)
	}
}

// EditData replaces a data session's document. The connection singleton
// accepts SwitchHost and SwitchPort only; output sessions are read-only.
func (s *SessionStore) EditData(id string, obj map[string]any) error {
	sess, ok := s.sessions[id]
	if !ok {
		return s.fail(fmt.Errorf("%w: %q", ErrSessionNotFound, id), fmt.Sprintf("Error: Editing %q which is not a Session", id))
	}
	switch sess.Kind {
	case KindConnection:
		return s.editConnection(sess, obj)
	case KindOutput:
		return s.fail(fmt.Errorf("%w: %q", ErrReadOnly, sess.Name), fmt.Sprintf("Error: Session %q is read-only", sess.Name))
	case KindData:
	default:
		return s.fail(fmt.Errorf("%w: %q is %s", ErrWrongKind, sess.Name, sess.Kind), fmt.Sprintf("Error: Editing %q which is not a Data Session", sess.Name))
	}
	s.AppendLog(console.Debug, console.Client, fmt.Sprintf("Setting %s data = %s", sess.Name, marshalForLog(obj)))
	if obj == nil {
		obj = map[string]any{}
	}
	sess.Data.Object = cloneObject(obj)
	events.Session.EditData(id, len(obj))
	return nil
}

func (s *SessionStore) editConnection(sess *Session, obj map[string]any) error {
	next, err := ApplyConnectionObject(*sess.Connection, obj)
	if err != nil {
		return s.fail(err, "Error: "+err.Error())
	}
	s.AppendLog(console.Debug, console.Client, fmt.Sprintf("Setting %s data = %s", sess.Name, marshalForLog(obj)))
	*sess.Connection = next
	events.Session.EditData(sess.ID, len(obj))
	return nil
}

// ApplyConnectionObject returns base updated from an edited connection
// document. SwitchHost must be a non-empty string and SwitchPort a number
// in 1..65535; Connected is reported by the transport and ignored.
func ApplyConnectionObject(base Connection, obj map[string]any) (Connection, error) {
	next := base
	for key, value := range obj {
		switch key {
		case "SwitchHost":
			host, ok := value.(string)
			if !ok || strings.TrimSpace(host) == "" {
				return base, fmt.Errorf("%w: SwitchHost must be a non-empty string", ErrInvalidValue)
			}
			next.Host = strings.TrimSpace(host)
		case "SwitchPort":
			port, ok := portValue(value)
			if !ok {
				return base, fmt.Errorf("%w: SwitchPort must be a number between 1 and 65535", ErrInvalidValue)
			}
			next.Port = port
		case "Connected":
		default:
			return base, fmt.Errorf("%w: Connection has no field %q", ErrInvalidValue, key)
		}
	}
	return next, nil
}

func portValue(v any) (int, bool) {
	var port int
	switch t := v.(type) {
	case int:
		port = t
	case int64:
		port = int(t)
	case float64:
		if t != float64(int(t)) {
			return 0, false
		}
		port = int(t)
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0, false
		}
		port = int(n)
	default:
		return 0, false
	}
	return port, port >= 1 && port <= 65535
}

func marshalForLog(obj map[string]any) string {
	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Sprintf("%v", obj)
	}
	return string(data)
}

// SetConnected records the transport state on the connection singleton.
func (s *SessionStore) SetConnected(connected bool) {
	s.sessions[ConnectionID].Connection.Connected = connected
}

// ConnectionInfo returns the connection singleton's state.
func (s *SessionStore) ConnectionInfo() Connection {
	return *s.sessions[ConnectionID].Connection
}

func (s *SessionStore) consoleFor(id string) (*Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, s.fail(fmt.Errorf("%w: %q", ErrSessionNotFound, id), fmt.Sprintf("Error: %q is not a Session", id))
	}
	if sess.Kind != KindConsole {
		return nil, s.fail(fmt.Errorf("%w: %q is %s", ErrWrongKind, sess.Name, sess.Kind), fmt.Sprintf("Error: %q is not a Console Session", sess.Name))
	}
	return sess, nil
}

// SetConsoleLogLevel sets the minimum level a console accepts.
func (s *SessionStore) SetConsoleLogLevel(id string, level console.Level) error {
	sess, err := s.consoleFor(id)
	if err != nil {
		return err
	}
	if !level.Valid() {
		return s.fail(fmt.Errorf("%w: level %d", ErrInvalidValue, int(level)), "Error: invalid log level")
	}
	sess.Console.Filter.MinLevel = level
	s.traceFilter(sess)
	return nil
}

// SetConsoleLogSource enables or disables a source on a console.
func (s *SessionStore) SetConsoleLogSource(id string, source console.Source, enabled bool) error {
	sess, err := s.consoleFor(id)
	if err != nil {
		return err
	}
	if !source.Valid() {
		return s.fail(fmt.Errorf("%w: source %q", ErrInvalidValue, string(source)), "Error: invalid log source")
	}
	sess.Console.Filter.Enabled[source] = enabled
	s.traceFilter(sess)
	return nil
}

func (s *SessionStore) traceFilter(sess *Session) {
	enabled := make(map[string]bool, len(sess.Console.Filter.Enabled))
	for src, on := range sess.Console.Filter.Enabled {
		enabled[string(src)] = on
	}
	events.Session.Filter(sess.ID, sess.Console.Filter.MinLevel.Label(), enabled)
}

// ClearConsole empties a console's buffer.
func (s *SessionStore) ClearConsole(id string) error {
	sess, err := s.consoleFor(id)
	if err != nil {
		return err
	}
	sess.Console.Buffer = ""
	return nil
}

// AppendLog writes a line to every console whose filter accepts it.
func (s *SessionStore) AppendLog(level console.Level, source console.Source, text string) {
	if text == "" {
		return
	}
	line := console.FormatLine(s.now(), level, source, text)
	for _, id := range s.order {
		sess := s.sessions[id]
		if sess.Kind != KindConsole || !sess.Console.Filter.Accepts(level, source) {
			continue
		}
		sess.Console.Buffer = console.Append(sess.Console.Buffer, line)
	}
}

// fail logs msg as a client error and returns err.
func (s *SessionStore) fail(err error, msg string) error {
	s.AppendLog(console.Error, console.Client, msg)
	return err
}
