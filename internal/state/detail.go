// Package state holds the view-models the dashboard renders. Each component
// owns its own state, converts every failure into a view error and tags loads
// with a generation so a superseded fetch never overwrites a newer one.
package state

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainagent "github.com/alanyang/agent-console/internal/domain/agent"
	portagent "github.com/alanyang/agent-console/internal/port/agent"
)

// User-facing messages exposed in views.
const (
	MsgMissingID         = "Agent ID is required"
	MsgDetailLoadFailure = "Failed to load agent details"
	MsgListLoadFailure   = "Failed to load agents"
)

// DeviceSettings are the audio devices chosen for a direct call.
type DeviceSettings struct {
	MicrophoneID string `json:"microphoneId"`
	SpeakerID    string `json:"speakerId"`
}

// CallSession is an active direct call.
type CallSession struct {
	PhoneNumber string         `json:"phoneNumber"`
	Devices     DeviceSettings `json:"devices"`
	StartedAt   time.Time      `json:"startedAt"`
}

// DetailView is an immutable snapshot of a Detail.
type DetailView struct {
	Agent        *domainagent.Agent `json:"agent"`
	Loading      bool               `json:"loading"`
	Error        string             `json:"error,omitempty"`
	IsDraft      bool               `json:"isDraft"`
	RolePlayOpen bool               `json:"rolePlayOpen"`
	Call         *CallSession       `json:"call,omitempty"`

	// Display labels of the agent's industry and function, with custom
	// overrides applied. Empty when there is no agent.
	IndustryLabel string `json:"industryLabel,omitempty"`
	FunctionLabel string `json:"functionLabel,omitempty"`
}

// Detail holds one hydrated agent plus the transient console state around it.
type Detail struct {
	reader portagent.Reader

	mu        sync.Mutex
	gen       uint64
	agent     *domainagent.Agent
	loading   bool
	errMsg    string
	lastErr   error
	isDraft   bool
	rolePlay  bool
	call      *CallSession
	observers []func(DetailView)
}

func NewDetail(reader portagent.Reader) *Detail {
	return &Detail{reader: reader}
}

// OnChange registers fn to receive a snapshot after every state change.
func (d *Detail) OnChange(fn func(DetailView)) {
	d.mu.Lock()
	d.observers = append(d.observers, fn)
	d.mu.Unlock()
}

// Load fetches and hydrates the agent with the given id. It blocks until the
// fetch completes and never returns an error; failures land in the view.
func (d *Detail) Load(ctx context.Context, id string) {
	if id == "" {
		d.update(func() {
			d.gen++
			d.agent = nil
			d.loading = false
			d.isDraft = false
			d.errMsg = MsgMissingID
			d.lastErr = domainagent.ErrMissingID
		})
		return
	}
	if domainagent.IsDraftID(id) {
		d.LoadDraft()
		return
	}

	var gen uint64
	d.update(func() {
		d.gen++
		gen = d.gen
		d.loading = true
		d.errMsg = ""
		d.lastErr = nil
	})

	a, err := d.reader.Get(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load agent details", "agent_id", id, "error", err)
	}

	d.updateIf(gen, func() {
		d.loading = false
		d.isDraft = false
		if err != nil {
			d.agent = nil
			d.errMsg = MsgDetailLoadFailure
			d.lastErr = err
			return
		}
		hydrated := domainagent.Normalize(a)
		d.agent = &hydrated
	})
}

// LoadDraft replaces the current agent with an unsaved placeholder record
// without touching the store.
func (d *Detail) LoadDraft() {
	draft := domainagent.NewDraft()
	d.update(func() {
		d.gen++
		d.agent = &draft
		d.loading = false
		d.isDraft = true
		d.errMsg = ""
		d.lastErr = nil
	})
}

func (d *Detail) OpenRolePlay() {
	d.update(func() { d.rolePlay = true })
}

func (d *Detail) CloseRolePlay() {
	d.update(func() { d.rolePlay = false })
}

// StartDirectCall records the active call. Role-play and a direct call are
// mutually exclusive, so an open role-play dialog is closed.
func (d *Detail) StartDirectCall(phoneNumber string, devices DeviceSettings) {
	d.update(func() {
		d.rolePlay = false
		d.call = &CallSession{
			PhoneNumber: phoneNumber,
			Devices:     devices,
			StartedAt:   time.Now().UTC(),
		}
	})
}

func (d *Detail) EndDirectCall() {
	d.update(func() { d.call = nil })
}

func (d *Detail) View() DetailView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshot()
}

// LastError is the underlying cause of the current view error, if any.
func (d *Detail) LastError() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

// NotFound reports whether the last load failed because the agent is absent.
func (d *Detail) NotFound() bool {
	return errors.Is(d.LastError(), domainagent.ErrNotFound)
}

// must be called with d.mu held
func (d *Detail) snapshot() DetailView {
	v := DetailView{
		Loading:      d.loading,
		Error:        d.errMsg,
		IsDraft:      d.isDraft,
		RolePlayOpen: d.rolePlay,
	}
	if d.agent != nil {
		a := d.agent.Clone()
		v.Agent = &a
		v.IndustryLabel = a.IndustryLabel()
		v.FunctionLabel = a.FunctionLabel()
	}
	if d.call != nil {
		c := *d.call
		v.Call = &c
	}
	return v
}

func (d *Detail) update(fn func()) {
	d.mu.Lock()
	fn()
	v := d.snapshot()
	observers := d.observers
	d.mu.Unlock()
	notify(observers, v)
}

// updateIf applies fn only when no newer load has started since gen.
func (d *Detail) updateIf(gen uint64, fn func()) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	fn()
	v := d.snapshot()
	observers := d.observers
	d.mu.Unlock()
	notify(observers, v)
}

func notify[V any](observers []func(V), v V) {
	for _, fn := range observers {
		fn(v)
	}
}
