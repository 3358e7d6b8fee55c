// Command froggi-server listens for froggi connections and serves FML
// pages and their items from a directory on disk, grounded on
// original_source/server/src/main.rs's handle_client/main loop.
package main

import (
	"flag"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/zphixon/froggi/pagecache"
	"github.com/zphixon/froggi/request"
	"github.com/zphixon/froggi/response"
)

func main() {
	addr := flag.String("addr", "0.0.0.0:11121", "address to listen on")
	dir := flag.String("pages", "pages", "directory containing .fml pages and their blobs")
	dataDir := flag.String("data", "", "directory for the persistent page cache database (disabled if empty)")
	flag.Parse()

	srv, err := newServer(*dir, *dataDir)
	if err != nil {
		log.Fatalf("froggi-server: %v", err)
	}
	defer srv.close()

	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatalf("froggi-server: listen: %v", err)
	}
	log.Printf("froggi-server: listening at %s, serving %s", ln.Addr(), *dir)

	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Printf("froggi-server: accept error: %v", err)
			continue
		}
		go srv.handleConn(conn)
	}
}

// server holds the page directory plus the optional cache/watcher glue.
type server struct {
	dir     string
	cache   *pagecache.Cache
	store   *pagecache.Store
	watcher *pagecache.Watcher
}

func newServer(dir, dataDir string) (*server, error) {
	s := &server{dir: dir, cache: pagecache.New()}

	if dataDir != "" {
		store, err := pagecache.OpenStore(dataDir)
		if err != nil {
			return nil, err
		}
		s.store = store
	}

	watcher, err := pagecache.NewWatcher(dir, s.cache, s.store, s.requestPath)
	if err != nil {
		log.Printf("froggi-server: page watcher disabled: %v", err)
	} else {
		s.watcher = watcher
	}

	return s, nil
}

func (s *server) close() {
	if s.watcher != nil {
		s.watcher.Close()
	}
	if s.store != nil {
		s.store.Close()
	}
}

// requestPath maps a source file on disk back to the request path that
// serves it. Composed with pathToFile it gives the cache key of a request,
// so the root path "/" shares its key with "/test_markup.fml".
func (s *server) requestPath(file string) string {
	rel, err := filepath.Rel(s.dir, file)
	if err != nil {
		return file
	}
	return "/" + filepath.ToSlash(rel)
}

func (s *server) pathToFile(path string) string {
	clean := strings.TrimPrefix(path, "/")
	if clean == "" {
		clean = "test_markup.fml"
	}
	return filepath.Join(s.dir, filepath.FromSlash(clean))
}

func (s *server) handleConn(conn net.Conn) {
	defer conn.Close()

	req, err := request.FromBytes(conn)
	if err != nil {
		log.Printf("froggi-server: reading request: %v", err)
		return
	}
	log.Printf("froggi-server: request (version %d, length %d): %s", req.Version(), len(req.Path()), req.Path())

	key := s.requestPath(s.pathToFile(req.Path()))
	bytes, err := s.cache.GetOrBuild(key, func() ([]byte, error) {
		return s.buildResponse(req.Path())
	})
	if err != nil {
		log.Printf("froggi-server: building response for %s: %v", req.Path(), err)
		return
	}

	if _, err := conn.Write(bytes); err != nil {
		log.Printf("froggi-server: writing response: %v", err)
	}
}

// buildResponse reads the .fml page named by path plus every blob it
// references and frames them as a Response. It does not validate the FML
// beyond what response.New requires; markup.Parse is left to the client,
// matching original_source/server/src/main.rs's "todo: verify markup is
// correct" comment, which this implementation also leaves undone since
// a malformed page is the page author's problem, not the transport's.
func (s *server) buildResponse(path string) ([]byte, error) {
	pageFile := s.pathToFile(path)
	page, err := os.ReadFile(pageFile)
	if err != nil {
		return nil, err
	}

	items, err := s.blobsForPage(string(page))
	if err != nil {
		return nil, err
	}

	return response.New(string(page), items).ToBytes(), nil
}

// blobsForPage scans page source for blob item targets (lines shaped like
// (& "name.ext" ...)) and reads each referenced file from the page
// directory. This is a best-effort, non-validating text scan: a page with
// malformed markup is still served with whatever blobs the scan finds,
// leaving strict validation to the client's markup.Parse.
func (s *server) blobsForPage(page string) ([]response.Item, error) {
	var items []response.Item
	seen := make(map[string]bool)

	for _, name := range blobTargets(page) {
		if seen[name] {
			continue
		}
		seen[name] = true

		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			log.Printf("froggi-server: skipping missing blob %q: %v", name, err)
			continue
		}

		item, err := response.NewItem(name, data)
		if err != nil {
			log.Printf("froggi-server: skipping oversized blob name %q: %v", name, err)
			continue
		}
		items = append(items, item)
	}

	return items, nil
}

func blobTargets(page string) []string {
	var names []string
	for i := 0; i+1 < len(page); i++ {
		if page[i] != '&' {
			continue
		}
		j := i + 1
		for j < len(page) && (page[j] == ' ' || page[j] == '\t' || page[j] == '\n') {
			j++
		}
		if j >= len(page) || page[j] != '"' {
			continue
		}
		j++
		start := j
		for j < len(page) && page[j] != '"' {
			j++
		}
		if j >= len(page) {
			continue
		}
		names = append(names, page[start:j])
		i = j
	}
	return names
}
