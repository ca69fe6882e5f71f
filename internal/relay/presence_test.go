package relay

import "testing"

func TestPresenceLifecycle(t *testing.T) {
	p := NewPresence()

	p.ClientConnected()
	p.ClientConnected()
	p.Identify(ClientTypeDesktop)
	p.Identify(ClientTypeMobile)

	stats := p.Snapshot()
	if stats.ConnectedClients != 2 {
		t.Errorf("Expected 2 connected clients, got %d", stats.ConnectedClients)
	}
	if stats.DesktopClients != 1 || stats.MobileClients != 1 {
		t.Errorf("Expected 1 desktop / 1 mobile, got %d/%d", stats.DesktopClients, stats.MobileClients)
	}

	p.ClientDisconnected(ClientTypeDesktop)
	stats = p.Snapshot()
	if stats.ConnectedClients != 1 || stats.DesktopClients != 0 {
		t.Errorf("After desktop disconnect expected 1 connected / 0 desktop, got %d/%d",
			stats.ConnectedClients, stats.DesktopClients)
	}
}

func TestPresenceDecrementsClampAtZero(t *testing.T) {
	p := NewPresence()

	// A double disconnect (e.g. read and write pump both reporting) must
	// never drive a counter negative.
	p.ClientConnected()
	p.Identify(ClientTypeMobile)
	p.ClientDisconnected(ClientTypeMobile)
	p.ClientDisconnected(ClientTypeMobile)
	p.ClientDisconnected(ClientTypeDesktop)

	stats := p.Snapshot()
	if stats.ConnectedClients != 0 || stats.MobileClients != 0 || stats.DesktopClients != 0 {
		t.Errorf("Counters must clamp at zero, got %+v", stats)
	}
}

func TestPresenceUnidentifiedClientsOnlyCountAsConnected(t *testing.T) {
	p := NewPresence()

	p.ClientConnected()
	stats := p.Snapshot()
	if stats.ConnectedClients != 1 {
		t.Errorf("Expected 1 connected, got %d", stats.ConnectedClients)
	}
	if stats.DesktopClients != 0 || stats.MobileClients != 0 {
		t.Error("A connection must not count as desktop or mobile before identify")
	}

	// Unknown self-reported types stay out of both buckets too.
	p.Identify("toaster")
	stats = p.Snapshot()
	if stats.DesktopClients != 0 || stats.MobileClients != 0 {
		t.Error("Unknown client types must not be counted")
	}
}

func TestPresenceCountsEvents(t *testing.T) {
	p := NewPresence()
	for i := 0; i < 5; i++ {
		p.EventRelayed()
	}
	if got := p.Snapshot().TotalEvents; got != 5 {
		t.Errorf("Expected 5 total events, got %d", got)
	}
}
