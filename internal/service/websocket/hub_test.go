package websocket

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yedell/color-challenge/internal/dto"
	"github.com/yedell/color-challenge/internal/logger"
	"github.com/yedell/color-challenge/internal/model"
)

func fakeEncode(frame *model.Frame) ([]byte, error) {
	return []byte{byte(frame.Seq)}, nil
}

func startHub(t *testing.T) (*HubService, string) {
	t.Helper()
	hub := NewHubService(fakeEncode, logger.NewWriterLogger(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(conn)
		defer hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(server.Close)
	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitClients(t *testing.T, hub *HubService, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.GetClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d clients, have %d", n, hub.GetClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) dto.FrameMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage failed: %v", err)
	}
	var msg dto.FrameMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Invalid message %q: %v", data, err)
	}
	return msg
}

func testView(seq uint64) model.View {
	frame := model.NewFrame(2, 2)
	frame.Seq = seq
	return model.View{Frame: frame, Title: "viewer", Color: "red"}
}

func TestHub_PresentBroadcasts(t *testing.T) {
	hub, url := startHub(t)
	a := dial(t, url)
	b := dial(t, url)
	waitClients(t, hub, 2)

	if err := hub.Present(context.Background(), testView(7)); err != nil {
		t.Fatalf("Present failed: %v", err)
	}

	for _, conn := range []*websocket.Conn{a, b} {
		msg := readFrame(t, conn)
		if msg.Seq != 7 || msg.Color != "red" || msg.Title != "viewer" {
			t.Errorf("Unexpected message %+v", msg)
		}
		if msg.Image != base64.StdEncoding.EncodeToString([]byte{7}) {
			t.Errorf("Unexpected image payload %q", msg.Image)
		}
	}
}

func TestHub_LateClientGetsCurrentFrame(t *testing.T) {
	hub, url := startHub(t)
	if err := hub.Present(context.Background(), testView(3)); err != nil {
		t.Fatalf("Present failed: %v", err)
	}

	conn := dial(t, url)
	if msg := readFrame(t, conn); msg.Seq != 3 {
		t.Errorf("Expected current frame 3, got %d", msg.Seq)
	}
}

func TestHub_Unregister(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)
	waitClients(t, hub, 1)

	conn.Close()
	waitClients(t, hub, 0)
}

func TestHub_Keys(t *testing.T) {
	hub := NewHubService(fakeEncode, logger.NewWriterLogger(io.Discard))

	if !hub.PushKey(model.KeyNext) {
		t.Fatal("First key should be accepted")
	}
	if hub.PushKey(model.KeyQuit) {
		t.Error("Second key should be dropped while the first is pending")
	}

	key, err := hub.WaitKey(context.Background())
	if err != nil || key != model.KeyNext {
		t.Errorf("WaitKey() = %s, %v", key, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := hub.WaitKey(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline error, got %v", err)
	}
}

func TestHub_PresentAfterStop(t *testing.T) {
	hub := NewHubService(fakeEncode, logger.NewWriterLogger(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	if err := hub.Present(context.Background(), testView(1)); err != nil {
		t.Errorf("Present on a stopped hub should be a no-op, got %v", err)
	}
}

func TestHub_EncodeError(t *testing.T) {
	boom := errors.New("encode failed")
	hub := NewHubService(func(*model.Frame) ([]byte, error) { return nil, boom }, logger.NewWriterLogger(io.Discard))

	if err := hub.Present(context.Background(), testView(1)); !errors.Is(err, boom) {
		t.Errorf("Expected encode error, got %v", err)
	}
}
