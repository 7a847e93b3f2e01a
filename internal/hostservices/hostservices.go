// Package hostservices implements the external HostServices collaborator
// named in spec.md §1 and expanded in SPEC_FULL.md §4.F.2: the
// filesystem/process/clipboard/HTTP surface behind built-ins like
// ReadFile/WriteFile/RunProcess/WebGet/WebPost/WebSocketConnect.
//
// internal/builtins calls through the HostServices interface rather than
// touching os/os.exec/net.http directly, the same indirection
// internal/hostio gives Write/ReadLine — an embedder can swap in a
// sandboxed or mocked implementation without internal/builtins changing.
package hostservices

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/gorilla/websocket"
)

// HostServices is the process/filesystem/network surface a Cantus
// evaluator calls outward through.
type HostServices interface {
	ReadFile(path string) (string, error)
	WriteFile(path, contents string) error
	StartProcess(name string, args []string) (stdout string, exitCode int, err error)
	ClipboardGet() (string, error)
	ClipboardSet(text string) error
	WebGet(url string) (body string, status int, err error)
	WebPost(url, contentType, body string) (respBody string, status int, err error)
	WebSocketConnect(url string) (Socket, error)
}

// Socket is a minimal duplex message channel, returned by
// WebSocketConnect for scripts that want to send/receive without
// managing the underlying connection's framing themselves.
type Socket interface {
	Send(text string) error
	Receive() (string, error)
	Close() error
}

// osHostServices is the default, OS-backed implementation the evaluator
// uses when an embedder supplies none.
type osHostServices struct {
	httpClient *http.Client
}

// Default returns the OS-backed HostServices (spec.md §6: "the default
// implementation talks to the real filesystem/process/clipboard/HTTP").
func Default() HostServices {
	return &osHostServices{httpClient: &http.Client{Timeout: 30 * time.Second}}
}

func (h *osHostServices) ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *osHostServices) WriteFile(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0o644)
}

func (h *osHostServices) StartProcess(name string, args []string) (string, int, error) {
	cmd := exec.Command(name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	exitCode := 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
		err = nil
	}
	return out.String(), exitCode, err
}

// ClipboardGet/ClipboardSet have no portable stdlib backing; the default
// implementation reports an empty clipboard rather than shelling out to a
// platform-specific utility (xclip/pbcopy/clip.exe), matching spec.md's
// own stance that clipboard access is host-provided, not guaranteed.
func (h *osHostServices) ClipboardGet() (string, error) { return "", nil }
func (h *osHostServices) ClipboardSet(text string) error { return nil }

func (h *osHostServices) WebGet(url string) (string, int, error) {
	resp, err := h.httpClient.Get(url)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, err
	}
	return string(b), resp.StatusCode, nil
}

func (h *osHostServices) WebPost(url, contentType, body string) (string, int, error) {
	resp, err := h.httpClient.Post(url, contentType, bytes.NewBufferString(body))
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, err
	}
	return string(b), resp.StatusCode, nil
}

func (h *osHostServices) WebSocketConnect(url string) (Socket, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &wsSocket{conn: conn}, nil
}

type wsSocket struct {
	conn *websocket.Conn
}

func (s *wsSocket) Send(text string) error {
	return s.conn.WriteMessage(websocket.TextMessage, []byte(text))
}

func (s *wsSocket) Receive() (string, error) {
	_, msg, err := s.conn.ReadMessage()
	if err != nil {
		return "", err
	}
	return string(msg), nil
}

func (s *wsSocket) Close() error { return s.conn.Close() }
