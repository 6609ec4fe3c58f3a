// Package provider implements the BLE discovery provider: it turns raw
// scan results into device records, resolving encrypted presence payloads
// against the installed scan filters by trial decryption.
package provider

import (
	"sync"

	"github.com/go-nearby/nearby"
)

// State is the provider lifecycle state.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return "invalid"
	}
}

const defaultQueueDepth = 64

// BleProvider discovers nearby devices over BLE. Lifecycle calls come
// from the owning Controller; scan results arrive on the radio stack's
// threads and are serialized through a single worker queue.
type BleProvider struct {
	scanner    Scanner
	controller Controller
	listener   nearby.Listener

	store    FilterStore
	resolver *Resolver
	exec     *serialExecutor
	metrics  *Metrics
	log      nearby.Logger

	handler       Handler
	legacyHandler Handler

	// lifeMu serializes lifecycle transitions so that stop-then-start
	// composites are atomic to external observers.
	lifeMu  sync.Mutex
	stateMu sync.Mutex
	state   State
}

// New builds a provider around its collaborators. The returned provider
// is stopped; the controller drives it through Start.
func New(scanner Scanner, controller Controller, listener nearby.Listener, opts ...Option) (*BleProvider, error) {
	p := &BleProvider{
		scanner:    scanner,
		controller: controller,
		listener:   listener,
		resolver:   NewResolver(nil),
		log: nearby.GetLogger().ChildLogger(map[string]interface{}{
			"component": "ble-provider",
		}),
	}

	depth := defaultQueueDepth
	for _, o := range opts {
		if err := o(p, &depth); err != nil {
			return nil, err
		}
	}

	p.exec = newSerialExecutor(depth)
	p.handler = &scanHandler{p: p}
	p.legacyHandler = &scanHandler{p: p, legacy: true}
	return p, nil
}

// Start begins scanning. If the radio is unavailable the provider
// transitions straight back to stopped and tells the controller to stop
// as well; it cannot run half-initialized.
func (p *BleProvider) Start() {
	p.lifeMu.Lock()
	defer p.lifeMu.Unlock()
	p.start()
}

// Stop ends scanning and destroys the installed filter set.
func (p *BleProvider) Stop() {
	p.lifeMu.Lock()
	defer p.lifeMu.Unlock()
	p.stop()
}

// InvalidateScanMode restarts scanning so a changed scan mode takes
// effect. The stop/start pair is atomic with respect to observers: no
// packet is attributed to the old mode once the stop begins.
func (p *BleProvider) InvalidateScanMode() {
	p.lifeMu.Lock()
	defer p.lifeMu.Unlock()
	p.stop()
	p.start()
}

// SetFilters installs a new filter set. Legal in every state and invoked
// directly from the caller thread; it takes effect for subsequently
// received packets only.
func (p *BleProvider) SetFilters(ff []nearby.ScanFilter) {
	p.store.Replace(ff)
}

// Filters returns a copy of the installed filter set, or nil.
func (p *BleProvider) Filters() []nearby.ScanFilter {
	return p.store.Snapshot()
}

// State returns the current lifecycle state.
func (p *BleProvider) State() State {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	return p.state
}

// Close stops the provider if needed and releases the worker queue.
// In-flight packet work is allowed to complete; its results are dropped.
func (p *BleProvider) Close() {
	p.lifeMu.Lock()
	if p.State() != StateStopped {
		p.stop()
	}
	p.lifeMu.Unlock()

	p.exec.Shutdown()
}

func (p *BleProvider) setState(s State) {
	p.stateMu.Lock()
	p.state = s
	p.stateMu.Unlock()
}

func (p *BleProvider) start() {
	p.setState(StateStarting)

	if !p.scanner.Available() {
		p.log.Warn("cannot start ble discovery: radio unavailable")
		p.setState(StateStopped)
		p.controller.Stop()
		return
	}

	mode := p.controller.ScanMode()
	p.startScan(p.settings(mode, false), p.handler)
	p.startScan(p.settings(mode, true), p.legacyHandler)

	p.setState(StateRunning)
	p.log.Debugf("ble discovery started, scan mode %v", mode)
}

func (p *BleProvider) startScan(s Settings, h Handler) {
	// A rejected start (state mismatch, permission denial, transient
	// driver fault) is logged and treated as "scan did not start"; retry
	// is the controller's call on the next lifecycle transition.
	if err := p.scanner.StartScan(s, h); err != nil {
		p.log.Warnf("failed to start ble scan: %v", err)
	}
}

func (p *BleProvider) stop() {
	p.setState(StateStopping)

	if !p.scanner.Available() {
		p.log.Warn("failed to stop ble scan: radio unavailable")
		p.setState(StateStopped)
		return
	}

	for _, h := range []Handler{p.handler, p.legacyHandler} {
		if err := p.scanner.StopScan(h); err != nil {
			p.log.Warnf("failed to stop ble scan: %v", err)
		}
	}

	p.store.Replace(nil)
	p.setState(StateStopped)
	p.log.Debug("ble discovery stopped")
}

func (p *BleProvider) settings(mode nearby.ScanMode, legacy bool) Settings {
	return Settings{
		Mode:         mode,
		Legacy:       legacy,
		ServiceUUIDs: []nearby.UUID{nearby.FastPairUUID, nearby.PresenceUUID},
	}
}

func (p *BleProvider) onScanResult(res nearby.ScanResult) {
	p.metrics.packetSeen()
	p.exec.Execute(func() { p.process(res) })
}

func (p *BleProvider) onScanFailed(err error) {
	p.log.Warnf("ble scan failed: %v", err)
	p.metrics.scanFailed()
	p.exec.Execute(func() { p.emitError(nearby.ErrScanFailed) })
}

// process runs on the worker queue: one snapshot, one resolution pass,
// one record. The snapshot is taken once and used for the whole decode
// loop so a concurrent Replace is observed all-or-nothing.
func (p *BleProvider) process(res nearby.ScanResult) {
	var match *Match
	if data := res.GetServiceData(nearby.PresenceUUID); data != nil &&
		res.GetServiceData(nearby.FastPairUUID) == nil {
		if ff := p.store.Snapshot(); ff != nil {
			m, ok := p.resolver.Resolve(data, ff)
			p.metrics.resolved(ok)
			if ok {
				match = &m
			}
		}
	}

	p.emitRecord(BuildRecord(res, match))
}

func (p *BleProvider) emitRecord(rec *nearby.DeviceRecord) {
	if !p.emitting() {
		return
	}
	p.listener.OnDeviceDiscovered(rec)
	p.metrics.recordEmitted()
}

func (p *BleProvider) emitError(err error) {
	if !p.emitting() {
		return
	}
	p.listener.OnError(err)
}

// emitting reports whether results may still reach the listener. Late
// results from work already in flight when the provider stops are
// silently dropped.
func (p *BleProvider) emitting() bool {
	switch p.State() {
	case StateRunning, StateStarting:
		return true
	default:
		return false
	}
}

// scanHandler adapts radio callbacks onto the provider. The legacy
// handler is inert: the legacy session exists only so the radio stack
// suppresses duplicates across scan types, exactly one handler feeds the
// pipeline.
type scanHandler struct {
	p      *BleProvider
	legacy bool
}

func (h *scanHandler) HandleScanResult(res nearby.ScanResult) {
	if h.legacy {
		return
	}
	h.p.onScanResult(res)
}

func (h *scanHandler) HandleScanFailure(err error) {
	if h.legacy {
		return
	}
	h.p.onScanFailed(err)
}
