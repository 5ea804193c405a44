package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"voxelpatch.dev/internal/edit"
	"voxelpatch.dev/internal/edit/volume"
	"voxelpatch.dev/internal/editor"
	"voxelpatch.dev/internal/mcworld"
	"voxelpatch.dev/internal/persistence/journal"
	"voxelpatch.dev/internal/persistence/templates"
	"voxelpatch.dev/internal/transport/ws"
	"voxelpatch.dev/internal/tuning"
)

func main() {
	var (
		addr       = flag.String("addr", "", "http listen address (overrides tuning)")
		configDir  = flag.String("configs", "./configs", "config directory")
		dataDir    = flag.String("data", "", "runtime data directory (overrides tuning)")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		importPath = flag.String("import", "", "region file to import into the volume at startup (relative to data dir)")
		importRule = flag.String("import_rule", "minecraft:*", "glob rule mapping imported block names to type 1")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[editor] ", log.LstdFlags|log.Lmicroseconds)

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Printf("tuning not found (%s); using defaults", tp)
			tune = tuning.Defaults()
		} else {
			logger.Fatalf("load tuning: %v", err)
		}
	}
	if strings.TrimSpace(*addr) != "" {
		tune.ListenAddr = *addr
	}
	if strings.TrimSpace(*dataDir) != "" {
		tune.DataDir = *dataDir
	}
	_ = os.MkdirAll(tune.DataDir, 0o755)

	vol := volume.New()
	if strings.TrimSpace(*importPath) != "" {
		if err := importStartupRegion(vol, tune.DataDir, *importPath, *importRule); err != nil {
			logger.Fatalf("import region: %v", err)
		}
		logger.Printf("imported region=%s cells=%d", *importPath, vol.Len())
	}

	var store *templates.Store
	if tune.TemplatesDB != "" {
		store, err = templates.Open(filepath.Join(tune.DataDir, tune.TemplatesDB))
		if err != nil {
			logger.Fatalf("open templates db: %v", err)
		}
		defer store.Close()
	}

	var undoJournal edit.UndoSink
	if tune.JournalDir != "" {
		jw := journal.NewWriter(filepath.Join(tune.DataDir, tune.JournalDir), "ops")
		defer jw.Close()
		undoJournal = jw
	}

	host := editor.New(tune, vol, store, undoJournal, logger)

	ctx, cancel := signalContext()
	defer cancel()

	go func() {
		if err := host.Run(ctx); err != nil && err != context.Canceled {
			logger.Printf("host stopped: %v", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/v1/ws", ws.NewServer(host, logger).Handler())

	srv := &http.Server{Addr: tune.ListenAddr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Printf("listening addr=%s protocol=%s", tune.ListenAddr, tune.ProtocolVersion)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("http: %v", err)
	}
	logger.Printf("shutdown complete")
}

// importStartupRegion seeds the volume from one anvil region file with
// a single catch-all conversion rule. Finer control goes through the
// IMPORT_WORLD request.
func importStartupRegion(vol *volume.Volume, dataDir, rel, rule string) error {
	data, err := os.ReadFile(filepath.Join(dataDir, rel))
	if err != nil {
		return err
	}
	w := mcworld.NewWorld()
	if err := w.ReadRegion([2]int{0, 0}, nil, nil, data); err != nil {
		return err
	}
	imported, err := w.Convert(mcworld.Rules{rule: 1}, nil)
	if err != nil {
		return err
	}
	vol.Restore(imported)
	return nil
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}
