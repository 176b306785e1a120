package cli

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/recera/scc/internal/cache"
	"github.com/recera/scc/pkg/cli/internal/config"
	"github.com/recera/scc/pkg/compiler"
	"github.com/spf13/cobra"
)

// ReloadPath is the dev server websocket endpoint
const ReloadPath = "/__scc/ws"

// reloadScript is injected into index.html by the dev server
const reloadScript = `<script>
(function() {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "` + ReloadPath + `");
  ws.onopen = function() { ws.send(JSON.stringify({type: "HELLO"})); };
  ws.onmessage = function(e) {
    var msg = JSON.parse(e.data);
    if (msg.type === "RELOAD") { location.reload(); }
    if (msg.type === "ERROR") { console.error("[scc] " + msg.message); }
  };
})();
</script>`

type devServer struct {
	project    compiler.Project
	config     *config.Config
	watcher    *fsnotify.Watcher
	wsClients  map[*websocket.Conn]bool
	wsMutex    sync.Mutex
	upgrader   websocket.Upgrader
	buildMutex sync.Mutex
	hashes     map[string]string
}

func newDevCommand(p compiler.Project) *cobra.Command {
	var port int
	var host string

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Long:  `Builds the components, serves the output directory and reloads the page whenever watched files change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if cmd.Flags().Changed("port") {
				cfg.Dev.Port = port
			}
			if cmd.Flags().Changed("host") {
				cfg.Dev.Host = host
			}
			return runDev(p, cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to run the dev server on")
	cmd.Flags().StringVarP(&host, "host", "H", "localhost", "Host to bind the dev server to")

	return cmd
}

func newDevServer(p compiler.Project, cfg *config.Config) *devServer {
	return &devServer{
		project:   p,
		config:    cfg,
		wsClients: make(map[*websocket.Conn]bool),
		hashes:    make(map[string]string),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Allow all origins in dev mode
				return true
			},
		},
	}
}

func runDev(p compiler.Project, cfg *config.Config) error {
	server := newDevServer(p, cfg)

	log.Println("🚀 Starting scc dev server...")
	if _, err := server.rebuild(nil); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()
	server.watcher = watcher

	if err := server.setupWatcher(); err != nil {
		return fmt.Errorf("failed to setup watcher: %w", err)
	}
	go server.watchFiles()

	addr := cfg.Addr()
	srv := &http.Server{
		Addr:    addr,
		Handler: server.routes(),
	}
	log.Printf("✨ Dev server running at http://%s\n", addr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("\n🛑 Shutting down dev server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *devServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(ReloadPath, s.handleWebSocket)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/", s.serveStatic)
	return mux
}

func (s *devServer) setupWatcher() error {
	roots := append(append([]string(nil), s.config.Dev.Watch...), inputs(s.config)...)
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			log.Printf("⚠️  Not watching %s: %v", root, err)
			continue
		}
		if !info.IsDir() {
			// editors replace files on save, so watch the directory
			if err := s.watcher.Add(filepath.Dir(root)); err != nil {
				return err
			}
			continue
		}

		err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return nil
			}
			// Skip hidden directories, node_modules and the output
			if path != root && (strings.HasPrefix(info.Name(), ".") || info.Name() == "node_modules") {
				return filepath.SkipDir
			}
			if filepath.Clean(path) == filepath.Clean(s.config.Output) {
				return filepath.SkipDir
			}
			return s.watcher.Add(path)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *devServer) watchFiles() {
	debounce := time.NewTimer(0)
	<-debounce.C // drain initial timer

	var pending []string

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !s.isRelevantFile(event.Name) {
				continue
			}
			pending = append(pending, event.Name)
			debounce.Reset(100 * time.Millisecond)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Println("Watcher error:", err)

		case <-debounce.C:
			changed := pending
			pending = nil
			if len(changed) > 0 {
				s.handleFileChanges(changed)
			}
		}
	}
}

func (s *devServer) isRelevantFile(path string) bool {
	abs, err := filepath.Abs(path)
	if err == nil {
		if out, err := filepath.Abs(s.config.Output); err == nil && strings.HasPrefix(abs, out+string(filepath.Separator)) {
			return false
		}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go", ".yaml", ".yml", ".js", ".css":
		return true
	}
	return false
}

func (s *devServer) handleFileChanges(files []string) {
	changed, err := s.rebuild(files)
	if err != nil {
		log.Printf("❌ Build failed: %v\n", err)
		s.notifyClients("error", map[string]any{
			"message": fmt.Sprintf("Build failed: %v", err),
		})
		return
	}
	if len(changed) == 0 {
		return
	}
	log.Printf("✅ Rebuilt %d files, reloading...", len(changed))
	s.notifyClients("reload", map[string]any{
		"changed": changed,
	})
}

// rebuild runs a build unless every file in files kept its content since
// the last build. A nil list always builds. It returns the output files
// that changed.
func (s *devServer) rebuild(files []string) ([]string, error) {
	s.buildMutex.Lock()
	defer s.buildMutex.Unlock()

	if files != nil && !s.contentChanged(files) {
		return nil, nil
	}

	for _, f := range files {
		if filepath.Base(f) == config.FileName {
			cfg, err := config.Load(".")
			if err != nil {
				return nil, err
			}
			cfg.Dev = s.config.Dev
			s.config = cfg
			break
		}
	}

	if s.config.Dev.Rebuild != "" {
		return s.runRebuildCommand()
	}

	res, err := build(s.project, s.config, false)
	if err != nil {
		if res != nil {
			for _, f := range res.Failed {
				log.Printf("❌ %v", f)
			}
		}
		return nil, err
	}
	return res.Changed, nil
}

// contentChanged records the content hash of each file and reports
// whether any of them differs from the previous one.
func (s *devServer) contentChanged(files []string) bool {
	changed := false
	for _, f := range files {
		key, err := cache.KeyFromFiles(f)
		if err != nil {
			return true
		}
		if s.hashes[f] != key {
			s.hashes[f] = key
			changed = true
		}
	}
	return changed
}

func (s *devServer) runRebuildCommand() ([]string, error) {
	log.Printf("🔄 Running %s", s.config.Dev.Rebuild)
	cmd := exec.Command("sh", "-c", s.config.Dev.Rebuild)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w", s.config.Dev.Rebuild, err)
	}
	return []string{compiler.PageFile}, nil
}

func (s *devServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	s.wsMutex.Lock()
	s.wsClients[conn] = true
	s.wsMutex.Unlock()

	defer func() {
		s.wsMutex.Lock()
		delete(s.wsClients, conn)
		s.wsMutex.Unlock()
	}()

	for {
		var msg map[string]any
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		switch msg["type"] {
		case "HELLO":
			s.wsMutex.Lock()
			err := conn.WriteJSON(map[string]any{"type": "ACK"})
			s.wsMutex.Unlock()
			if err != nil {
				return
			}
		default:
			log.Printf("Unknown WebSocket message type: %v", msg["type"])
		}
	}
}

func (s *devServer) notifyClients(msgType string, data map[string]any) {
	s.wsMutex.Lock()
	defer s.wsMutex.Unlock()

	message := map[string]any{
		"type": strings.ToUpper(msgType),
	}
	for k, v := range data {
		message[k] = v
	}

	for client := range s.wsClients {
		if err := client.WriteJSON(message); err != nil {
			log.Printf("Failed to send message to client: %v", err)
		}
	}
}

func (s *devServer) serveStatic(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/" {
		path = "/" + compiler.PageFile
	}

	// Security: prevent directory traversal and hide the cache index
	if strings.Contains(path, "..") || strings.HasPrefix(filepath.Base(path), ".") {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	filePath := filepath.Join(s.config.Output, filepath.FromSlash(strings.TrimPrefix(path, "/")))
	content, err := os.ReadFile(filePath)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	switch filepath.Ext(filePath) {
	case ".html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		content = injectReload(content)
	case ".js":
		w.Header().Set("Content-Type", "application/javascript")
	case ".css":
		w.Header().Set("Content-Type", "text/css")
	}

	w.Header().Set("Cache-Control", "no-cache")
	w.Write(content)
}

// injectReload inserts the reload script before </body>, or appends it
func injectReload(page []byte) []byte {
	i := bytes.LastIndex(page, []byte("</body>"))
	if i < 0 {
		return append(page, reloadScript...)
	}
	out := make([]byte, 0, len(page)+len(reloadScript))
	out = append(out, page[:i]...)
	out = append(out, reloadScript...)
	return append(out, page[i:]...)
}
