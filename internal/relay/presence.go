package relay

import (
	"sync"
	"time"

	"github.com/sya-pos/possyncgo/internal/metrics"
)

// Client types reported by identify_client.
const (
	ClientTypeDesktop = "desktop" // a POS terminal
	ClientTypeMobile  = "mobile"  // an observing companion app
	ClientTypeUnknown = "unknown"
)

// Stats is the on-demand presence snapshot.
type Stats struct {
	DesktopClients   int       `json:"desktopClients"`
	MobileClients    int       `json:"mobileClients"`
	ConnectedClients int       `json:"connectedClients"`
	TotalEvents      int64     `json:"totalEvents"`
	UptimeSeconds    int64     `json:"uptime"`
	StartTime        time.Time `json:"startTime"`
}

// Presence tracks process-local connection and event counters. It is an
// explicit state object owned by the hub, reset whenever the process
// starts; counts are not shared across server instances.
type Presence struct {
	mu          sync.Mutex
	desktop     int
	mobile      int
	connected   int
	totalEvents int64
	startTime   time.Time
}

// NewPresence creates a presence tracker with its uptime clock started now.
func NewPresence() *Presence {
	return &Presence{startTime: time.Now().UTC()}
}

// ClientConnected records a new connection before it has identified.
func (p *Presence) ClientConnected() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.connected++
}

// Identify records the connection's self-reported type.
func (p *Presence) Identify(clientType string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch clientType {
	case ClientTypeDesktop:
		p.desktop++
	case ClientTypeMobile:
		p.mobile++
	}
	p.syncGauges()
}

// ClientDisconnected decrements the counters for a closing connection.
// Decrements clamp at zero so a double-disconnect can never go negative.
func (p *Presence) ClientDisconnected(clientType string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.connected > 0 {
		p.connected--
	}
	switch clientType {
	case ClientTypeDesktop:
		if p.desktop > 0 {
			p.desktop--
		}
	case ClientTypeMobile:
		if p.mobile > 0 {
			p.mobile--
		}
	}
	p.syncGauges()
}

// EventRelayed bumps the total event counter.
func (p *Presence) EventRelayed() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.totalEvents++
}

// Snapshot returns the current counters.
func (p *Presence) Snapshot() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		DesktopClients:   p.desktop,
		MobileClients:    p.mobile,
		ConnectedClients: p.connected,
		TotalEvents:      p.totalEvents,
		UptimeSeconds:    int64(time.Since(p.startTime).Seconds()),
		StartTime:        p.startTime,
	}
}

// syncGauges mirrors the counts into prometheus. Callers hold p.mu.
func (p *Presence) syncGauges() {
	metrics.ConnectedClients.WithLabelValues(ClientTypeDesktop).Set(float64(p.desktop))
	metrics.ConnectedClients.WithLabelValues(ClientTypeMobile).Set(float64(p.mobile))
}
