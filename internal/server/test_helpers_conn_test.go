package server

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/drawpoker/internal/game"
	"github.com/lox/drawpoker/internal/randutil"
)

// fakePeer records replies instead of writing them to a socket.
type fakePeer struct {
	id     string
	sent   []string
	closed bool
}

func newFakePeer(id string) *fakePeer {
	return &fakePeer{id: id}
}

func (p *fakePeer) ID() string         { return p.id }
func (p *fakePeer) RemoteAddr() string { return "fake:" + p.id }

func (p *fakePeer) Send(msg string) error {
	if p.closed {
		return ErrConnectionClosed
	}
	p.sent = append(p.sent, msg)
	return nil
}

func (p *fakePeer) Close() error {
	p.closed = true
	return nil
}

// take returns and forgets everything sent so far.
func (p *fakePeer) take() []string {
	out := p.sent
	p.sent = nil
	return out
}

func (p *fakePeer) last() string {
	if len(p.sent) == 0 {
		return ""
	}
	return p.sent[len(p.sent)-1]
}

type recordingMonitor struct {
	starts   []GameStart
	outcomes []GameOutcome
}

func (m *recordingMonitor) OnGameStart(start GameStart)        { m.starts = append(m.starts, start) }
func (m *recordingMonitor) OnGameComplete(outcome GameOutcome) { m.outcomes = append(m.outcomes, outcome) }

// harness drives a Dispatcher directly, standing in for the event loop.
type harness struct {
	t       *testing.T
	d       *Dispatcher
	state   *State
	stats   *Stats
	monitor *recordingMonitor
}

func newHarness(t *testing.T, maxPlayers int) *harness {
	t.Helper()
	state := NewState(maxPlayers, game.DefaultRules(), randutil.New(42))
	stats := NewStats(quartz.NewMock(t))
	monitor := &recordingMonitor{}
	return &harness{
		t:       t,
		d:       NewDispatcher(state, testLogger(), NewMultiGameMonitor(stats, monitor), stats),
		state:   state,
		stats:   stats,
		monitor: monitor,
	}
}

func (h *harness) connect(id string) *fakePeer {
	p := newFakePeer(id)
	h.d.Connect(p)
	return p
}

// send dispatches line from p, failing the test if p would be dropped.
func (h *harness) send(p *fakePeer, line string) {
	h.t.Helper()
	require.NoError(h.t, h.d.Dispatch(p, line), "dispatch %q", line)
}

// login connects a peer and logs it in, returning the peer and player id.
func (h *harness) login(name string) (*fakePeer, int) {
	h.t.Helper()
	p := h.connect(name)
	h.send(p, "login "+name)
	player, ok := h.state.PlayerFor(p)
	require.True(h.t, ok)
	p.take()
	return p, player.ID
}

// startGame logs in names, has the first create a game and the rest join it.
// It returns the peers in join order and the game id.
func (h *harness) startGame(names ...string) ([]*fakePeer, int) {
	h.t.Helper()
	peers := make([]*fakePeer, len(names))
	for i, name := range names {
		peers[i], _ = h.login(name)
	}
	founder, _ := h.state.PlayerFor(peers[0])
	h.send(peers[0], "create "+strconv.Itoa(founder.ID))
	gameID := h.state.GameIDs()[len(h.state.GameIDs())-1]
	for _, p := range peers[1:] {
		player, _ := h.state.PlayerFor(p)
		h.send(p, "join "+strconv.Itoa(gameID)+" "+strconv.Itoa(player.ID))
	}
	for _, p := range peers {
		p.take()
	}
	return peers, gameID
}

// deal runs the dealing chain and drains every reply.
func (h *harness) deal(peers []*fakePeer, gameID int) {
	h.t.Helper()
	founder, _ := h.state.PlayerFor(peers[0])
	h.send(peers[0], "handCards "+strconv.Itoa(gameID)+" "+strconv.Itoa(founder.ID)+" request")
	for _, p := range peers {
		player, _ := h.state.PlayerFor(p)
		h.send(p, "handCards "+strconv.Itoa(gameID)+" "+strconv.Itoa(player.ID)+" accepted")
	}
}

func itoa(n int) string { return strconv.Itoa(n) }

// tcpClient is a raw line protocol client used by the integration tests.
type tcpClient struct {
	t    *testing.T
	conn net.Conn
	r    *bufio.Reader
}

func dialTCP(t *testing.T, addr string) *tcpClient {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return &tcpClient{t: t, conn: conn, r: bufio.NewReader(conn)}
}

func (c *tcpClient) write(s string) {
	c.t.Helper()
	_, err := c.conn.Write([]byte(s))
	require.NoError(c.t, err)
}

func (c *tcpClient) send(line string) {
	c.t.Helper()
	c.write(line + "\n")
}

func (c *tcpClient) expect(want string) {
	c.t.Helper()
	require.Equal(c.t, want, c.read())
}

func (c *tcpClient) read() string {
	c.t.Helper()
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	line, err := c.r.ReadString('\n')
	require.NoError(c.t, err)
	return strings.TrimSuffix(line, "\n")
}

// expectClosed waits for the server to hang up.
func (c *tcpClient) expectClosed() {
	c.t.Helper()
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, err := c.r.ReadString('\n')
	require.Error(c.t, err)
	var netErr net.Error
	if errors.As(err, &netErr) {
		require.False(c.t, netErr.Timeout(), "server did not close the connection")
	}
}

// startTestServer runs a server on a loopback listener for the life of the
// test and returns its TCP address.
func startTestServer(t *testing.T, maxPlayers int, opts ...Option) (*Server, string) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Server.MaxPlayers = maxPlayers
	cfg.Server.MaxMessageBytes = 64

	opts = append([]Option{WithRNG(randutil.New(7))}, opts...)
	s := NewServer(cfg, testLogger(), opts...)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{}, 2)
	go func() { _ = s.Run(ctx); done <- struct{}{} }()
	go func() { _ = s.ServeTCP(ctx, ln); done <- struct{}{} }()
	t.Cleanup(func() {
		cancel()
		<-done
		<-done
	})
	return s, ln.Addr().String()
}
