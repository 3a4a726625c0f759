// Package meshserver is a minimal websocket demo of the world-streaming
// consumer spec.md's purpose section refers to: a viewer asks for a
// chunk's mesh by coordinate and receives the built (or cached) surfaces
// back as one binary message. It sits strictly downstream of Build, the
// way hellsoul86-voxelcraft.ai's internal/transport/ws server sits
// downstream of its simulation core — connection handshake and a
// per-connection reader loop that writes each reply itself, not a general
// RPC framework.
package meshserver

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/voxelsplace/blockymesh/blockymesh"
	"github.com/voxelsplace/blockymesh/meshcache"
	"github.com/voxelsplace/blockymesh/voxelbuffer"
)

// ChunkSource resolves a requested chunk coordinate to the voxel buffer a
// Mesher should build. The server has no opinion on world storage; it
// only needs this one seam.
type ChunkSource func(cx, cy, cz int32) (voxelbuffer.Buffer, bool)

// ChunkRequest is the one JSON message a client sends per chunk: the
// chunk coordinate and the same options blockymesh.Options carries.
type ChunkRequest struct {
	CX                int32   `json:"cx"`
	CY                int32   `json:"cy"`
	CZ                int32   `json:"cz"`
	LODIndex          uint8   `json:"lod_index"`
	BakeOcclusion     bool    `json:"bake_occlusion"`
	OcclusionDarkness float32 `json:"occlusion_darkness"`
	CollisionHint     bool    `json:"collision_hint"`
}

func (r ChunkRequest) options() blockymesh.Options {
	return blockymesh.Options{
		LODIndex:          r.LODIndex,
		BakeOcclusion:     r.BakeOcclusion,
		OcclusionDarkness: r.OcclusionDarkness,
		CollisionHint:     r.CollisionHint,
	}
}

// Server streams built chunk meshes over websocket connections. A Server
// is not safe to share a *Mesher across connections (the CORE forbids
// that); it instead hands each connection its own Mesher bound to the
// same Library, matching the per-worker scratch discipline blockymesh's
// own design follows.
type Server struct {
	source   ChunkSource
	cache    *meshcache.Store
	newMesher func() *blockymesh.Mesher
	log      *log.Logger
	upgrader websocket.Upgrader
}

// NewServer builds a Server. newMesher must return a ready-to-use, not
// yet shared *Mesher on every call (one per connection); cache may be nil
// to disable the mesh result cache.
func NewServer(source ChunkSource, newMesher func() *blockymesh.Mesher, cache *meshcache.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		source:    source,
		cache:     cache,
		newMesher: newMesher,
		log:       logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the http.HandlerFunc to mount at the server's chunk
// streaming endpoint.
func (s *Server) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		mesher := s.newMesher()
		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var req ChunkRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				s.writeError(conn, fmt.Errorf("malformed chunk request: %w", err))
				continue
			}
			s.serveChunk(conn, mesher, req)
		}
	}
}

func (s *Server) serveChunk(conn *websocket.Conn, mesher *blockymesh.Mesher, req ChunkRequest) {
	buf, ok := s.source(req.CX, req.CY, req.CZ)
	if !ok {
		s.writeError(conn, fmt.Errorf("no chunk loaded at (%d,%d,%d)", req.CX, req.CY, req.CZ))
		return
	}

	var contentHash uint64
	var key meshcache.Key
	if s.cache != nil {
		if d, ok := buf.(*voxelbuffer.Dense); ok {
			contentHash = d.ContentHash()
			key = meshcache.KeyFor(contentHash, req.options())
			if cached, hit, err := s.cache.Get(key); err == nil && hit {
				s.writeMesh(conn, cached)
				return
			}
		}
	}

	out, err := mesher.Build(buf, req.options())
	if err != nil {
		s.writeError(conn, fmt.Errorf("build chunk (%d,%d,%d): %w", req.CX, req.CY, req.CZ, err))
		return
	}
	if s.cache != nil && contentHash != 0 {
		if err := s.cache.Put(key, out); err != nil {
			s.log.Printf("meshserver: cache put failed for (%d,%d,%d): %v", req.CX, req.CY, req.CZ, err)
		}
	}
	s.writeMesh(conn, out)
}

func (s *Server) writeMesh(conn *websocket.Conn, out blockymesh.Output) {
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteMessage(websocket.BinaryMessage, meshcache.Encode(out)); err != nil {
		s.log.Printf("meshserver: write failed: %v", err)
	}
}

func (s *Server) writeError(conn *websocket.Conn, err error) {
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	payload, _ := json.Marshal(map[string]string{"error": err.Error()})
	_ = conn.WriteMessage(websocket.TextMessage, payload)
}
