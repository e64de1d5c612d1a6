// Package watcher ingests care events from the care log.
//
// The leafcare-log helper appends one line per watering or feeding to
// ~/.leafcare/care.log without touching the database, so it can run from
// phone shortcuts, cron jobs or NFC tags. The Watcher follows that log with
// fsnotify, resolves each plant reference through the user's aliases and the
// store, and records the events in a single transaction per pass.
//
// Key features:
//   - fsnotify write notifications plus a periodic safety poll
//   - Crash-safe offset tracking (temp file + rename pattern)
//   - Partial trailing lines are left for the next pass
//   - Daemon mode support with PID file management
//   - Graceful shutdown with SIGTERM/SIGINT handling
//
// Example usage:
//
//	st, err := store.New("~/.leafcare/leafcare.db")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer st.Close()
//
//	w, err := watcher.New(st, watcher.Options{Paths: watcher.DefaultPaths(home)})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := w.Start(); err != nil {
//		log.Fatal(err)
//	}
//	defer w.Stop()
package watcher
