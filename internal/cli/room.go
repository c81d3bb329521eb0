package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Real-time match room commands",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomJoinCmd())
	cmd.AddCommand(newRoomWatchCmd())

	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var playerID, playerName string

	cmd := &cobra.Command{
		Use:   "create <roomId>",
		Short: "Create a room and stay connected for chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoomSession(args[0], playerID, playerName, "create_room")
		},
	}

	cmd.Flags().StringVar(&playerID, "player-id", "", "Player id (required)")
	cmd.Flags().StringVar(&playerName, "player-name", "", "Player display name (required)")
	_ = cmd.MarkFlagRequired("player-id")
	_ = cmd.MarkFlagRequired("player-name")

	return cmd
}

func newRoomJoinCmd() *cobra.Command {
	var playerID, playerName string

	cmd := &cobra.Command{
		Use:   "join <roomId>",
		Short: "Join an existing room and stay connected for chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoomSession(args[0], playerID, playerName, "join_room")
		},
	}

	cmd.Flags().StringVar(&playerID, "player-id", "", "Player id (required)")
	cmd.Flags().StringVar(&playerName, "player-name", "", "Player display name (required)")
	_ = cmd.MarkFlagRequired("player-id")
	_ = cmd.MarkFlagRequired("player-name")

	return cmd
}

func newRoomWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch lobby room list updates without joining a room",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := dialGateway()
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close() }()

			fmt.Println("Connected. Press Ctrl+C to disconnect.")
			return readEvents(conn)
		},
	}
}

// envelope is the client-to-server wire format
type envelope struct {
	Type       string `json:"type"`
	RoomID     string `json:"roomId,omitempty"`
	PlayerID   string `json:"playerId,omitempty"`
	PlayerName string `json:"playerName,omitempty"`
	Message    string `json:"message,omitempty"`
}

func dialGateway() (*websocket.Conn, error) {
	u, err := url.Parse(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("connection failed: %w", err)
	}
	return conn, nil
}

func runRoomSession(roomID, playerID, playerName, joinEvent string) error {
	conn, err := dialGateway()
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	if err := conn.WriteJSON(envelope{
		Type:       joinEvent,
		RoomID:     roomID,
		PlayerID:   playerID,
		PlayerName: playerName,
	}); err != nil {
		return fmt.Errorf("failed to send %s: %w", joinEvent, err)
	}

	fmt.Printf("Connected to room %s. Type a message and press enter to chat.\n", roomID)

	// Read chat input from stdin
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			text := strings.TrimSpace(scanner.Text())
			if text == "" {
				continue
			}
			err := conn.WriteJSON(envelope{
				Type:       "send_message",
				RoomID:     roomID,
				PlayerID:   playerID,
				PlayerName: playerName,
				Message:    text,
			})
			if err != nil {
				return
			}
		}
	}()

	return readEvents(conn)
}

// readEvents prints incoming gateway events until interrupted or the
// connection drops
func readEvents(conn *websocket.Conn) error {
	// Handle interrupt by closing the connection, which unblocks ReadMessage
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-sigCh:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			// Interrupt closes the connection out from under the read
			fmt.Println("\nDisconnected")
			return nil
		}

		printGatewayEvent(data)
	}
}

func printGatewayEvent(data []byte) {
	if cfg.Output == "json" {
		fmt.Println(string(data))
		return
	}

	var evt struct {
		Type       string            `json:"type"`
		RoomID     string            `json:"roomId"`
		PlayerName string            `json:"playerName"`
		Message    string            `json:"message"`
		Rooms      []json.RawMessage `json:"rooms"`
		Players    []struct {
			PlayerName string `json:"playerName"`
		} `json:"players"`
	}
	if err := json.Unmarshal(data, &evt); err != nil {
		fmt.Println(string(data))
		return
	}

	timestamp := time.Now().Format("15:04:05")

	switch evt.Type {
	case "room_list":
		fmt.Printf("[%s] rooms open: %d\n", timestamp, len(evt.Rooms))
	case "player_joined":
		names := make([]string, len(evt.Players))
		for i, p := range evt.Players {
			names[i] = p.PlayerName
		}
		fmt.Printf("[%s] room %s players: %s\n", timestamp, evt.RoomID, strings.Join(names, ", "))
	case "receive_message":
		fmt.Printf("[%s] %s: %s\n", timestamp, evt.PlayerName, evt.Message)
	case "room_full":
		fmt.Printf("[%s] room %s is full\n", timestamp, evt.RoomID)
	case "room_not_found":
		fmt.Printf("[%s] room %s not found\n", timestamp, evt.RoomID)
	default:
		fmt.Println(string(data))
	}
}
