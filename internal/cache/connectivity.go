package cache

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const probeTimeout = 5 * time.Second

// StorageUsage reports best-effort cache size accounting.
type StorageUsage struct {
	Used      int64 `json:"used"`
	Available int64 `json:"available"`
}

// IsOnline reports best-effort network reachability.
//
// When no usable network interface is up, the probe is skipped and true is
// returned; the probe only runs when an interface is up, and any probe
// failure reports unreachable.
// TODO: confirm this inversion with product; reporting "online" while no
// interface is up looks backwards, but it is the behavior the app shipped
// with, and callers only treat the result as a hint.
func (m *Manager) IsOnline(ctx context.Context) bool {
	if !interfaceUp() {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, m.probeURL, nil)
	if err != nil {
		return false
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode < 400
}

// interfaceUp reports whether any non-loopback interface is up.
func interfaceUp() bool {
	ifaces, err := net.Interfaces()
	if err != nil {
		return false
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp != 0 && iface.Flags&net.FlagLoopback == 0 {
			return true
		}
	}
	return false
}

// SetupSyncListener starts a watcher that polls connectivity every interval
// and invokes onOnline on each offline-to-online transition. It returns
// immediately; the watcher stops when ctx is cancelled.
func (m *Manager) SetupSyncListener(ctx context.Context, interval time.Duration, onOnline func()) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		online := m.IsOnline(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			current := m.IsOnline(ctx)
			if current && !online {
				log.Println("App is online - syncing offline changes")
				m.syncOfflineChanges()
				if onOnline != nil {
					onOnline()
				}
			}
			if !current && online {
				log.Println("App is offline - enabling offline mode")
			}
			online = current
		}
	}()
}

// syncOfflineChanges is a placeholder: there is no offline write queue to
// replay, so reconnecting has nothing to push.
func (m *Manager) syncOfflineChanges() {
	log.Println("Syncing offline changes...")
}

// Usage reports how much disk the cache directory occupies. Available space
// is not portably discoverable, so it is reported as zero.
func (m *Manager) Usage() StorageUsage {
	return StorageUsage{Used: dirSize(filepath.Dir(m.dbPath))}
}

func dirSize(path string) int64 {
	var size int64
	_ = filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size
}
