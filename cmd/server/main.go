package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"hexatlas.world/internal/gen/tuning"
	"hexatlas.world/internal/persistence/indexdb"
	"hexatlas.world/internal/protocol"
	"hexatlas.world/internal/transport/ws"
	"hexatlas.world/pkg/logger"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		tuningPath = flag.String("tuning", "./configs/tuning.yaml", "path to tuning.yaml")
		dbPath     = flag.String("db", "", "world archive index db (empty: generate everything on demand)")
		cacheSize  = flag.Int("cache", 8, "worlds kept in memory")
	)
	flag.Parse()

	logger.Init()
	log := logrus.StandardLogger()

	tune, err := tuning.Load(*tuningPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("path", *tuningPath).Info("tuning not found, using defaults")
			tune = tuning.Default()
		} else {
			log.WithError(err).Fatal("load tuning")
		}
	}

	var idx *indexdb.Index
	if strings.TrimSpace(*dbPath) != "" {
		idx, err = indexdb.Open(*dbPath)
		if err != nil {
			log.WithError(err).Fatal("open index db")
		}
		defer idx.Close()
	}

	cache := newWorldCache(tune, idx, *cacheSize, log)

	ctx, cancel := signalContext()
	defer cancel()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/plain; version=0.0.4")
		s := cache.Stats()

		fmt.Fprintf(rw, "# HELP hexatlas_worlds_cached Worlds currently held in memory.\n")
		fmt.Fprintf(rw, "# TYPE hexatlas_worlds_cached gauge\n")
		fmt.Fprintf(rw, "hexatlas_worlds_cached %d\n", s.Cached)

		fmt.Fprintf(rw, "# HELP hexatlas_cache_hits_total Snapshot requests served from memory.\n")
		fmt.Fprintf(rw, "# TYPE hexatlas_cache_hits_total counter\n")
		fmt.Fprintf(rw, "hexatlas_cache_hits_total %d\n", s.Hits)

		fmt.Fprintf(rw, "# HELP hexatlas_worlds_generated_total Worlds generated on demand.\n")
		fmt.Fprintf(rw, "# TYPE hexatlas_worlds_generated_total counter\n")
		fmt.Fprintf(rw, "hexatlas_worlds_generated_total %d\n", s.Generated)

		fmt.Fprintf(rw, "# HELP hexatlas_worlds_restored_total Worlds restored from archived snapshots.\n")
		fmt.Fprintf(rw, "# TYPE hexatlas_worlds_restored_total counter\n")
		fmt.Fprintf(rw, "hexatlas_worlds_restored_total %d\n", s.Restored)
	})
	mux.HandleFunc("/v1/world", func(rw http.ResponseWriter, r *http.Request) {
		seed, month, ok := parseWorldQuery(rw, r)
		if !ok {
			return
		}
		compact := r.URL.Query().Get("compact") == "1"
		var msg protocol.SnapshotMsg
		var err error
		if r.URL.Query().Get("archived") == "1" {
			var found bool
			msg, found, err = cache.SnapshotArchived(seed, month, compact)
			if err == nil && !found {
				writeJSONError(rw, http.StatusNotFound, protocol.ErrNotFound, "world not archived")
				return
			}
		} else if compact {
			msg, err = cache.SnapshotCompact(seed, month)
		} else {
			msg, err = cache.Snapshot(seed, month)
		}
		if err != nil {
			log.WithError(err).Error("snapshot failed")
			writeJSONError(rw, http.StatusInternalServerError, protocol.ErrInternal, "generation failed")
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(rw).Encode(msg)
	})
	mux.HandleFunc("/v1/worlds", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		if idx == nil {
			_ = json.NewEncoder(rw).Encode([]indexdb.Entry{})
			return
		}
		entries, err := idx.List()
		if err != nil {
			log.WithError(err).Error("list worlds")
			writeJSONError(rw, http.StatusInternalServerError, protocol.ErrInternal, "index query failed")
			return
		}
		if entries == nil {
			entries = []indexdb.Entry{}
		}
		_ = json.NewEncoder(rw).Encode(entries)
	})
	mux.HandleFunc("/v1/ws", ws.NewServer(cache, log).Handler())

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	log.WithField("addr", *addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("ListenAndServe")
	}
}

func parseWorldQuery(rw http.ResponseWriter, r *http.Request) (int64, int, bool) {
	seed, err := strconv.ParseInt(r.URL.Query().Get("seed"), 10, 64)
	if err != nil {
		writeJSONError(rw, http.StatusBadRequest, protocol.ErrBadSeed, "seed must be an integer")
		return 0, 0, false
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 14 {
		writeJSONError(rw, http.StatusBadRequest, protocol.ErrBadMonth, "month must be 1..14")
		return 0, 0, false
	}
	return seed, month, true
}

func writeJSONError(rw http.ResponseWriter, status int, code, message string) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(protocol.ErrorMsg{
		Type:            protocol.TypeError,
		ProtocolVersion: protocol.Version,
		Code:            code,
		Message:         message,
	})
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
