package meshserver

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/websocket"

	"github.com/voxelsplace/blockymesh/blocklib"
	"github.com/voxelsplace/blockymesh/blockymesh"
	"github.com/voxelsplace/blockymesh/meshcache"
	"github.com/voxelsplace/blockymesh/voxelbuffer"
)

func newLibrary() *blocklib.BakedLibrary {
	lib := blocklib.NewBakedLibrary()
	lib.SetMaterials([]string{"stone"})
	lib.SetModel(1, blocklib.NewCubeModel(0, mgl32.Vec4{1, 1, 1, 1}, blocklib.PatternFull))
	return lib
}

func singleVoxelChunk() *voxelbuffer.Dense {
	buf := voxelbuffer.NewDense(3, 3, 3, voxelbuffer.Depth8)
	buf.Set(1, 1, 1, 1)
	return buf
}

func dialServer(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestServeChunkReturnsBuiltMesh(t *testing.T) {
	lib := newLibrary()
	source := func(cx, cy, cz int32) (voxelbuffer.Buffer, bool) {
		if cx == 0 && cy == 0 && cz == 0 {
			return singleVoxelChunk(), true
		}
		return nil, false
	}
	srv := NewServer(source, func() *blockymesh.Mesher { return blockymesh.NewMesher(lib) }, nil, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn := dialServer(t, ts)
	req, _ := json.Marshal(ChunkRequest{CX: 0, CY: 0, CZ: 0})
	if err := conn.WriteMessage(websocket.TextMessage, req); err != nil {
		t.Fatalf("write request failed: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	kind, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read response failed: %v", err)
	}
	if kind != websocket.BinaryMessage {
		t.Fatalf("expected a binary mesh message, got kind %d: %s", kind, msg)
	}

	out, err := meshcache.Decode(msg)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(out.Surfaces) != 1 {
		t.Fatalf("expected one material surface, got %d", len(out.Surfaces))
	}
	if got := len(out.Surfaces[0].Arrays.Indices); got != 6*2*3 {
		t.Fatalf("expected %d indices for a fully exposed cube, got %d", 6*2*3, got)
	}
}

func TestServeChunkReportsMissingChunk(t *testing.T) {
	lib := newLibrary()
	source := func(cx, cy, cz int32) (voxelbuffer.Buffer, bool) { return nil, false }
	srv := NewServer(source, func() *blockymesh.Mesher { return blockymesh.NewMesher(lib) }, nil, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn := dialServer(t, ts)
	req, _ := json.Marshal(ChunkRequest{CX: 9, CY: 9, CZ: 9})
	if err := conn.WriteMessage(websocket.TextMessage, req); err != nil {
		t.Fatalf("write request failed: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	kind, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read response failed: %v", err)
	}
	if kind != websocket.TextMessage {
		t.Fatalf("expected a text error message, got kind %d", kind)
	}
	var errBody map[string]string
	if err := json.Unmarshal(msg, &errBody); err != nil {
		t.Fatalf("error response was not JSON: %v", err)
	}
	if errBody["error"] == "" {
		t.Fatalf("expected a non-empty error message")
	}
}

func TestServeChunkPopulatesCacheOnMiss(t *testing.T) {
	lib := newLibrary()
	cache, err := meshcache.Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer cache.Close()

	source := func(cx, cy, cz int32) (voxelbuffer.Buffer, bool) { return singleVoxelChunk(), true }
	srv := NewServer(source, func() *blockymesh.Mesher { return blockymesh.NewMesher(lib) }, cache, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn := dialServer(t, ts)
	req, _ := json.Marshal(ChunkRequest{CX: 0, CY: 0, CZ: 0})
	if err := conn.WriteMessage(websocket.TextMessage, req); err != nil {
		t.Fatalf("write request failed: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatalf("read response failed: %v", err)
	}

	n, err := cache.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected the first request to populate the cache, got %d entries", n)
	}
}
