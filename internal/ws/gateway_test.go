package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"

	"github.com/matchpoint-gg/matchpoint/internal/registry"
	"github.com/matchpoint-gg/matchpoint/internal/testutil"
)

type GatewaySuite struct {
	suite.Suite
	gateway *Gateway
	server  *httptest.Server
	conns   []*websocket.Conn
}

func TestGatewaySuite(t *testing.T) {
	suite.Run(t, new(GatewaySuite))
}

func (s *GatewaySuite) SetupTest() {
	s.gateway = NewGateway(registry.New(), testutil.NopLogger())
	s.server = httptest.NewServer(http.HandlerFunc(s.gateway.ServeWS))
	s.conns = nil
}

func (s *GatewaySuite) TearDownTest() {
	for _, conn := range s.conns {
		_ = conn.Close()
	}
	s.server.Close()
}

// dial opens a connection and consumes the initial lobby snapshot
func (s *GatewaySuite) dial() *websocket.Conn {
	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	s.conns = append(s.conns, conn)

	event := s.readEvent(conn)
	s.Require().Equal(EventRoomList, event["type"])

	return conn
}

func (s *GatewaySuite) send(conn *websocket.Conn, env Envelope) {
	s.Require().NoError(conn.WriteJSON(env))
}

func (s *GatewaySuite) readEvent(conn *websocket.Conn) map[string]any {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_, data, err := conn.ReadMessage()
	s.Require().NoError(err)

	var event map[string]any
	s.Require().NoError(json.Unmarshal(data, &event))
	return event
}

func (s *GatewaySuite) readRoomList(conn *websocket.Conn) RoomListEvent {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_, data, err := conn.ReadMessage()
	s.Require().NoError(err)

	var event RoomListEvent
	s.Require().NoError(json.Unmarshal(data, &event))
	s.Require().Equal(EventRoomList, event.Type)
	return event
}

func (s *GatewaySuite) expectNoEvent(conn *websocket.Conn) {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond)))
	_, _, err := conn.ReadMessage()
	s.Require().Error(err)
	var netErr interface{ Timeout() bool }
	s.Require().ErrorAs(err, &netErr)
	s.True(netErr.Timeout())
}

func createEvent(roomID, playerID, playerName string) Envelope {
	return Envelope{Type: EventCreateRoom, RoomID: roomID, PlayerID: playerID, PlayerName: playerName}
}

func joinEvent(roomID, playerID, playerName string) Envelope {
	return Envelope{Type: EventJoinRoom, RoomID: roomID, PlayerID: playerID, PlayerName: playerName}
}

// Connection tests

func (s *GatewaySuite) TestConnectReceivesSnapshot() {
	conn := s.dial()

	// Snapshot arrives before any events from other clients
	s.send(conn, createEvent("room-1", "p1", "Alice"))
	list := s.readRoomList(conn)
	s.Require().Len(list.Rooms, 1)
	s.Equal("room-1", string(list.Rooms[0].ID))
}

func (s *GatewaySuite) TestLateConnectSeesExistingRooms() {
	creator := s.dial()
	s.send(creator, createEvent("room-1", "p1", "Alice"))
	s.readRoomList(creator)

	// Read the raw snapshot rather than using dial, which discards it
	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	s.conns = append(s.conns, conn)

	list := s.readRoomList(conn)
	s.Require().Len(list.Rooms, 1)
	s.Equal("room-1", string(list.Rooms[0].ID))
	s.Require().Len(list.Rooms[0].Players, 1)
	s.Equal("Alice", list.Rooms[0].Players[0].PlayerName)
}

// create_room tests

func (s *GatewaySuite) TestCreateRoomBroadcastsToAll() {
	creator := s.dial()
	watcher := s.dial()

	s.send(creator, createEvent("room-1", "p1", "Alice"))

	creatorList := s.readRoomList(creator)
	watcherList := s.readRoomList(watcher)
	s.Require().Len(creatorList.Rooms, 1)
	s.Require().Len(watcherList.Rooms, 1)
	s.Equal("room-1", string(watcherList.Rooms[0].ID))
}

func (s *GatewaySuite) TestCreateExistingRoomIsSilent() {
	creator := s.dial()
	s.send(creator, createEvent("room-1", "p1", "Alice"))
	s.readRoomList(creator)

	other := s.dial()
	s.send(other, createEvent("room-1", "p2", "Bob"))

	s.expectNoEvent(other)
	s.expectNoEvent(creator)
}

func (s *GatewaySuite) TestCreateRoomMissingFieldsDropped() {
	conn := s.dial()

	s.send(conn, Envelope{Type: EventCreateRoom, RoomID: "room-1"})

	s.expectNoEvent(conn)
}

// join_room tests

func (s *GatewaySuite) TestJoinRoomNotifiesRoomAndLobby() {
	creator := s.dial()
	s.send(creator, createEvent("room-1", "p1", "Alice"))
	s.readRoomList(creator)

	joiner := s.dial()
	s.send(joiner, joinEvent("room-1", "p2", "Bob"))

	// Both room members get player_joined, then everyone gets room_list
	creatorJoined := s.readEvent(creator)
	s.Equal(EventPlayerJoined, creatorJoined["type"])
	s.Equal("room-1", creatorJoined["roomId"])

	joinerJoined := s.readEvent(joiner)
	s.Equal(EventPlayerJoined, joinerJoined["type"])
	players := joinerJoined["players"].([]any)
	s.Len(players, 2)

	creatorList := s.readRoomList(creator)
	s.Require().Len(creatorList.Rooms, 1)
	s.Len(creatorList.Rooms[0].Players, 2)
	s.readRoomList(joiner)
}

func (s *GatewaySuite) TestJoinUnknownRoomRejectsSenderOnly() {
	watcher := s.dial()
	joiner := s.dial()

	s.send(joiner, joinEvent("nonexistent", "p2", "Bob"))

	event := s.readEvent(joiner)
	s.Equal(EventRoomNotFound, event["type"])
	s.Equal("nonexistent", event["roomId"])
	s.expectNoEvent(watcher)
}

func (s *GatewaySuite) TestJoinFullRoomRejectsSenderOnly() {
	creator := s.dial()
	s.send(creator, createEvent("room-1", "p1", "Alice"))
	s.readRoomList(creator)

	joiner := s.dial()
	s.send(joiner, joinEvent("room-1", "p2", "Bob"))
	s.readEvent(creator)    // player_joined
	s.readRoomList(creator) // room_list
	s.readEvent(joiner)
	s.readRoomList(joiner)

	third := s.dial()
	s.send(third, joinEvent("room-1", "p3", "Carol"))

	event := s.readEvent(third)
	s.Equal(EventRoomFull, event["type"])
	s.Equal("room-1", event["roomId"])
	s.expectNoEvent(creator)
	s.expectNoEvent(joiner)
}

// send_message tests

func (s *GatewaySuite) TestChatScopedToRoom() {
	creator := s.dial()
	s.send(creator, createEvent("room-1", "p1", "Alice"))
	s.readRoomList(creator)

	joiner := s.dial()
	s.send(joiner, joinEvent("room-1", "p2", "Bob"))
	s.readEvent(creator)
	s.readRoomList(creator)
	s.readEvent(joiner)
	s.readRoomList(joiner)

	outsider := s.dial()

	s.send(creator, Envelope{
		Type: EventSendMessage, RoomID: "room-1",
		PlayerID: "p1", PlayerName: "Alice", Message: "good luck",
	})

	// Sender and room partner both receive the message
	for _, conn := range []*websocket.Conn{creator, joiner} {
		event := s.readEvent(conn)
		s.Equal(EventReceiveMessage, event["type"])
		s.Equal("Alice", event["playerName"])
		s.Equal("good luck", event["message"])
	}
	s.expectNoEvent(outsider)
}

func (s *GatewaySuite) TestChatToUnknownRoomIsDropped() {
	conn := s.dial()

	s.send(conn, Envelope{
		Type: EventSendMessage, RoomID: "nonexistent",
		PlayerID: "p1", PlayerName: "Alice", Message: "anyone there",
	})

	s.expectNoEvent(conn)
}

// disconnect tests

func (s *GatewaySuite) TestDisconnectRemovesEmptiedRoom() {
	creator := s.dial()
	s.send(creator, createEvent("room-1", "p1", "Alice"))
	s.readRoomList(creator)

	watcher := s.dial()

	_ = creator.Close()

	list := s.readRoomList(watcher)
	s.Empty(list.Rooms)

	s.Eventually(func() bool {
		return s.gateway.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func (s *GatewaySuite) TestDisconnectWithoutRoomIsSilent() {
	idle := s.dial()
	watcher := s.dial()

	_ = idle.Close()

	s.Eventually(func() bool {
		return s.gateway.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)
	s.expectNoEvent(watcher)
}

// Malformed input tests

func (s *GatewaySuite) TestMalformedJSONDropped() {
	conn := s.dial()

	s.Require().NoError(conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	s.expectNoEvent(conn)
	s.Equal(1, s.gateway.ClientCount())
}

func (s *GatewaySuite) TestUnknownEventTypeDropped() {
	conn := s.dial()

	s.send(conn, Envelope{Type: "launch_missiles"})

	s.expectNoEvent(conn)
}
